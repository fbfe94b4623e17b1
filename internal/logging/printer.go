package logging

import "context"

// Printer adapts a Logger to printf-style sinks such as the goose migration
// logger. Printf goes to debug level; Fatalf goes to error level and does
// not exit.
type Printer struct {
	L Logger
}

func (p Printer) Printf(format string, v ...any) {
	p.L.Debug(context.Background(), sprintf(format, v...))
}

func (p Printer) Fatalf(format string, v ...any) {
	p.L.Error(context.Background(), sprintf(format, v...))
}
