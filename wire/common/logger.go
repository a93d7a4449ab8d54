package common

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/lni/dragonboat/v4/logger"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// owireLogger implements the ILogger interface with custom formatting
type owireLogger struct {
	name   string
	level  logger.LogLevel
	logger *log.Logger
}

func (l *owireLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *owireLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.log("DEBUG", format, args...)
	}
}

func (l *owireLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.log("INFO", format, args...)
	}
}

func (l *owireLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.log("WARN", format, args...)
	}
}

func (l *owireLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.log("ERROR", format, args...)
	}
}

func (l *owireLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// log formats and writes a log message. If one of the arguments is an
// *Error the positions it passed are appended.
func (l *owireLogger) log(levelStr string, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	if trace := errorTrace(args); trace != "" {
		message += " (at " + trace + ")"
	}
	l.logger.Printf("%-5s | %-15s | %s", levelStr, l.name, message)
}

// errorTrace returns the marks of the first *Error among args
func errorTrace(args []interface{}) string {
	for _, arg := range args {
		err, ok := arg.(error)
		if !ok {
			continue
		}
		var e *Error
		if errors.As(err, &e) && len(e.Marks) > 0 {
			return e.Trace()
		}
	}
	return ""
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// CreateLogger implements the dragonboat logger.Factory signature
func CreateLogger(pkgName string) logger.ILogger {
	// log to stderr so command output on stdout stays machine readable
	return newLogger(pkgName, os.Stderr)
}

func newLogger(name string, w io.Writer) *owireLogger {
	return &owireLogger{
		name:   name,
		level:  logger.INFO,
		logger: log.New(w, "", log.Ldate|log.Ltime),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logger.DEBUG, nil
	case "info", "":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// loggerNames lists every named logger of the module
var loggerNames = []string{
	"openwire",
	"transport",
	"transport/tcp",
	"owctl",
}

// InitLoggers installs the custom factory and applies level to all loggers
func InitLoggers(level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	// Set as the global logger factory
	logger.SetLoggerFactory(CreateLogger)

	for _, name := range loggerNames {
		logger.GetLogger(name).SetLevel(lvl)
	}
	return nil
}
