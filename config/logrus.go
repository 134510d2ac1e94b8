package config

import (
	"net/http"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var logrusInstance *logrus.Logger

func GetLogrusInstance() *logrus.Logger {
	if logrusInstance == nil {
		logrusInstance = logrus.New()
		logrusInstance.SetOutput(os.Stdout)
		if strings.EqualFold(os.Getenv("LOG_FORMAT"), "text") {
			logrusInstance.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		} else {
			logrusInstance.SetFormatter(&logrus.JSONFormatter{})
		}
	}
	return logrusInstance
}

func applyLogLevel() {
	lvl, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	GetLogrusInstance().SetLevel(lvl)
}

func statusColor(statusCode int) *color.Color {
	switch {
	case statusCode >= fiber.StatusBadRequest:
		return color.New(color.FgRed)
	case statusCode == fiber.StatusAccepted || statusCode >= fiber.StatusMultipleChoices:
		return color.New(color.FgYellow)
	case statusCode >= fiber.StatusOK:
		return color.New(color.FgGreen)
	default:
		return color.New(color.Reset)
	}
}

// PrintLogInfo records the outcome of a handler call.
func PrintLogInfo(email *string, statusCode int, functionName string) {
	user := "Unknown"
	if email != nil && *email != "" {
		user = *email
	}

	status := statusColor(statusCode).Sprintf("[%d] %s", statusCode, http.StatusText(statusCode))
	entry := GetLogrusInstance().WithFields(logrus.Fields{
		"user":     user,
		"function": functionName,
		"status":   statusCode,
	})
	if statusCode >= fiber.StatusInternalServerError {
		entry.Error(status)
		return
	}
	entry.Info(status)
}

// gormWriter routes gorm's slow query and error lines to logrus at warn level.
type gormWriter struct {
	log *logrus.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warnf(format, args...)
}
