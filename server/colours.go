package server

// ANSI colours for the development route log.
const (
	resetColor = "\033[0m"
	gray       = "\033[90m"
	green      = "\033[32m"
	blue       = "\033[34m"
	yellow     = "\033[33m"
	red        = "\033[31m"
)

var methodColors = map[string]string{
	"GET":    green,
	"POST":   blue,
	"PUT":    yellow,
	"PATCH":  yellow,
	"DELETE": red,
}
