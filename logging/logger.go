package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// eventFormatter renders one event per line with a unique event ID so
// entries can be referenced from audit trails.
type eventFormatter struct {
	SystemName string
}

func (f *eventFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	fmt.Fprintf(b, "time=%s source=%s level=%s event_id=%s msg=%q",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		f.SystemName,
		entry.Level.String(),
		uuid.New().String(),
		entry.Message,
	)

	for k, v := range entry.Data {
		fmt.Fprintf(b, " %s=%v", k, v)
	}

	if entry.HasCaller() {
		fmt.Fprintf(b, " caller=%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger routes the process log to a rotating file and mirrors it
// to stderr. Safe to call exactly once at startup.
func InitLogger(logDir string) {
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, 0o700); err != nil {
			logrus.Fatalf("failed to create log directory: %v", err)
		}
	}

	logFile := &lumberjack.Logger{
		Filename:   logDir + "/backend.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	Logger.SetOutput(io.MultiWriter(os.Stderr, logFile))
	Logger.SetFormatter(&eventFormatter{SystemName: "taskflow-backend"})
	Logger.SetLevel(logrus.InfoLevel)
}
