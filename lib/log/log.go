package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// log modules
const (
	ModuleSAI    string = "[SAI]"
	ModuleDriver string = "[Driver]"
	ModuleSyncd  string = "[Syncd]"
	ModuleOvsdb  string = "[OVSDB]"
)

// DefaultLogFile default log file path
const DefaultLogFile = "/var/log/gosai.log"

// Logger is the shared logger, stderr only until Init is called
var Logger = newLogger(os.Stderr, logrus.InfoLevel)

var (
	logFile *os.File
	hooked  bool
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// stderrHook copies warnings and errors to stderr when logging to a file
type stderrHook struct{}

func (stderrHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel, logrus.WarnLevel}
}

func (stderrHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return err
	}
	_, err = os.Stderr.WriteString(line)
	return err
}

// Init open file for append and set level, an empty file keeps stderr
func Init(file string, level string) error {
	lvl := logrus.InfoLevel
	if level != "" {
		var err error
		lvl, err = logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	Logger.SetLevel(lvl)

	if file == "" {
		return nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	Logger.SetOutput(f)
	if !hooked {
		Logger.AddHook(stderrHook{})
		hooked = true
	}
	return nil
}

// SetOutput redirect the logger, used by tests
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// Fields of a structured entry
type Fields = logrus.Fields

// WithFields for structured entries
func WithFields(fields Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}

func trim(format string) string {
	return strings.TrimSuffix(format, "\n")
}

// Debug func
func Debug(format string, v ...interface{}) {
	Logger.Debugf(trim(format), v...)
}

// Info func
func Info(format string, v ...interface{}) {
	Logger.Infof(trim(format), v...)
}

// Warning func
func Warning(format string, v ...interface{}) {
	Logger.Warnf(trim(format), v...)
}

// Error func
func Error(format string, v ...interface{}) {
	Logger.Errorf(trim(format), v...)
}
