package setup

// Reporter receives human readable progress. *output.Renderer implements it.
type Reporter interface {
	Header(title string)
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
	Println(s string)
	Printf(format string, args ...any)
}
