package build

var (
	Version = "0.0.1"
	Date    = ""
)
