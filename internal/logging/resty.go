package logging

import "fmt"

// HTTPLogger adapts the shared logger to the Errorf/Warnf/Debugf shape HTTP
// clients expect.
type HTTPLogger struct{}

func (HTTPLogger) Errorf(format string, v ...interface{}) {
	l := Logger()
	l.Error().Str("component", "http").Msg(fmt.Sprintf(format, v...))
}

func (HTTPLogger) Warnf(format string, v ...interface{}) {
	l := Logger()
	l.Warn().Str("component", "http").Msg(fmt.Sprintf(format, v...))
}

func (HTTPLogger) Debugf(format string, v ...interface{}) {
	l := Logger()
	l.Debug().Str("component", "http").Msg(fmt.Sprintf(format, v...))
}
