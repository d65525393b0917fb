package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const logDir = "logs"

// NewLogger builds the JSON logger for one server process. Entries go to
// logs/<serverType>.log through an async buffered writer and are echoed to
// stdout. The returned closer flushes the file.
func NewLogger(serverType string) (*logrus.Logger, func(), error) {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))

	logFile := filepath.Clean(filepath.Join(logDir, serverType+".log"))
	if !strings.HasPrefix(logFile, logDir+string(filepath.Separator)) {
		return nil, nil, fmt.Errorf("invalid log file path %q: must be in %s directory", logFile, logDir)
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize async log writer: %w", err)
	}
	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook(os.Stdout))

	return logger, asyncWriter.Close, nil
}

func levelFromEnv(value string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(value))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
