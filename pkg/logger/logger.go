package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger.
var Log *logrus.Logger

// Init sets up the global logger from LOG_LEVEL and LOG_FORMAT.
// Call it once at startup, before anything logs.
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")

	Configure(logLevel, logFormat)
	Log.SetOutput(os.Stdout)
}

// Configure applies a level and format. Unknown levels fall back to info;
// "json" selects the JSON formatter, anything else the coloured text one.
func Configure(logLevel, logFormat string) {
	if Log == nil {
		Log = logrus.New()
		Log.SetOutput(os.Stdout)
	}

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(logFormat) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}
}
