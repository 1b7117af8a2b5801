package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/gymstats/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxFileSizeMB = 50

type LoggerSetupParams struct {
	// LogFileName enables the rotating log file, empty means console only.
	LogFileName string
	// LogToStdout keeps the console output when a log file is used.
	LogToStdout bool
	// Console defaults to os.Stdout. The stdio MCP server passes os.Stderr,
	// its stdout carries the protocol.
	Console       io.Writer
	MaxFileSizeMB int

	LogLevel      string
	LogFormatJSON bool
	Environment   string
	// ServiceName is added to every entry as the "service" field.
	ServiceName string

	SentryEnabled bool
	SentryDSN     string
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))
	logrus.SetOutput(output(params))

	if params.ServiceName != "" {
		logrus.AddHook(&fieldsHook{fields: logrus.Fields{"service": params.ServiceName}})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	logrus.Debugf("logging set up, level [%s], file [%s]", logrus.GetLevel(), params.LogFileName)
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.ServiceName,
	})
	if err != nil {
		logrus.Errorf("sentry.Init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry set up successfully")
}

// output picks the console, the rotating log file, or both.
func output(params LoggerSetupParams) io.Writer {
	console := params.Console
	if console == nil {
		console = os.Stdout
	}
	if params.LogFileName == "" {
		return console
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}
	maxSize := params.MaxFileSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxFileSizeMB
	}

	// rotated files are kept, there is no MaxBackups / MaxAge
	fileLogger := &lumberjack.Logger{
		Filename:  fileName,
		MaxSize:   maxSize,
		LocalTime: false, // false -> use UTC
		Compress:  true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(console, fileLogger)
	}
	return fileLogger
}

// GetLevel parses a level name, unknown names give info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "info":
		return logrus.InfoLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

type fieldsHook struct {
	fields logrus.Fields
}

func (h *fieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}
