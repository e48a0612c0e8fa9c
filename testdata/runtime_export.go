package handler

const Runtime = "nodejs20.x"

const MaxDuration = 15
