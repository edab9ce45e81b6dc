package adswrapper

import (
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// Logger receives human-readable progress messages, e.g. for an on-screen
// event log.
type Logger interface {
	Log(message string)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(message string)

func (f LoggerFunc) Log(message string) { f(message) }

func quietLogger() log.Logger {
	return log.NewFilter(log.DefaultLogger, log.FilterLevel(log.LevelWarn))
}

// log writes message to the sink, if any, and to the diagnostic logger.
func (w *Wrapper) log(message string) {
	if w.sink != nil {
		w.sink.Log(message)
	}
	w.diag.Info(strings.TrimRight(message, "\n"))
}
