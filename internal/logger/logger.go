package logger

import (
	"io"
	"log"
	"strings"
)

const (
	DebugLevel = iota
	InfoLevel
	WarningLevel
	ErrorLevel
	logLevelsCount // actually not a real log level, but simplifies some code
)

// Logger holds one standard logger per level.
// Levels below the configured one write to a null writer.
type Logger struct {
	loggers [logLevelsCount]*log.Logger
}

func logLevelPrefix(level int) string {
	switch level {
	case DebugLevel:
		return "[DBG] "
	case InfoLevel:
		return "[INF] "
	case WarningLevel:
		return "[WRN] "
	case ErrorLevel:
		return "[ERR] "
	default:
		return "[???] "
	}
}

// ParseLevel converts a level name (case insensitive) to a log level.
// Unknown names fall back to defaultLevel.
func ParseLevel(name string, defaultLevel int) int {
	switch strings.ToUpper(name) {
	case "DEBUG", "DBG":
		return DebugLevel
	case "INFO", "INF":
		return InfoLevel
	case "WARNING", "WARN", "WRN":
		return WarningLevel
	case "ERROR", "ERR":
		return ErrorLevel
	default:
		return defaultLevel
	}
}

func New(level int, writers ...io.Writer) *Logger {
	var w io.Writer
	switch len(writers) {
	case 0:
		w = &nullWritter{}
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	lgr := Logger{}
	for i := 0; i < logLevelsCount; i++ {
		if i >= level {
			lgr.loggers[i] = log.New(w, logLevelPrefix(i), log.Ldate|log.Ltime)
		} else {
			lgr.loggers[i] = log.New(&nullWritter{}, "", log.Ldate|log.Ltime)
		}
	}
	return &lgr
}

func (lgr *Logger) Debug() *log.Logger {
	return lgr.loggers[DebugLevel]
}

func (lgr *Logger) Info() *log.Logger {
	return lgr.loggers[InfoLevel]
}

func (lgr *Logger) Warning() *log.Logger {
	return lgr.loggers[WarningLevel]
}

func (lgr *Logger) Error() *log.Logger {
	return lgr.loggers[ErrorLevel]
}
