package handler

const MaxDuration = 30

func Process() error {
	return nil
}
