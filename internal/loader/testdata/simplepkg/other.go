package simplepkg

func Handler() string {
	return "ok"
}
