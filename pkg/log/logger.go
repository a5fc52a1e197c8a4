package log

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

var logger *logrus.Logger

// nolint:gochecknoinits
func init() {
	logger = &logrus.Logger{
		Out:   os.Stderr,
		Level: logrus.InfoLevel,
		Formatter: &easy.Formatter{
			TimestampFormat: "01-02 15:04:05.000",
			LogFormat:       "[%lvl%]   [%time%]   -   %msg%\r\n",
		},
	}
}

// SetLevel
// Set log level:
// DebugLevel = 0
// InfoLevel = 1
// WarnLevel = 2
// ErrorLevel = 3
func SetLevel(lvl int) {
	switch lvl {
	case 0:
		logger.Level = logrus.DebugLevel
	case 1:
		logger.Level = logrus.InfoLevel
	case 2:
		logger.Level = logrus.WarnLevel
	case 3:
		logger.Level = logrus.ErrorLevel
	default:
		logger.Level = logrus.InfoLevel
	}
}

func Debug(content interface{}) {
	logger.Debug(content)
}

func Debugf(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

func Info(content interface{}) {
	logger.Info(content)
}

func Infof(format string, args ...interface{}) {
	logger.Info(fmt.Sprintf(format, args...))
}

func Warn(content interface{}) {
	logger.Warn(content)
}

func Warnf(format string, args ...interface{}) {
	logger.Warn(fmt.Sprintf(format, args...))
}

func Error(content interface{}) {
	logger.Error(content)
}

func Errorf(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}

func Fatal(content interface{}) {
	logger.Fatal(content)
}

func Fatalf(format string, args ...interface{}) {
	logger.Fatal(fmt.Sprintf(format, args...))
}
