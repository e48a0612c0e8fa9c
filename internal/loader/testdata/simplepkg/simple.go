package simplepkg

const MaxDuration = 30

var Config = map[string]any{
	"runtime": "edge",
	"regions": []string{"us-east-1"},
}
