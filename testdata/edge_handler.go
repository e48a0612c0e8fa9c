package handler

var Config = map[string]any{
	"regions": []string{"us-east-1", "eu-west-1"},
	"memory":  1024,
}

func Handle(name string) string {
	return "hello " + name
}
