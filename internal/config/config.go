package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var location *time.Location

// Init sets up the process-wide logger and the reporting timezone. It must
// run before any handler is mounted.
func Init() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	logrus.SetOutput(os.Stdout)

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logrus.SetLevel(lvl)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	tz := os.Getenv("REPORTING_TZ")
	if tz == "" {
		tz = "Europe/Berlin"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		logrus.WithError(err).Warnf("Unknown REPORTING_TZ %q, falling back to UTC", tz)
		loc = time.UTC
	}
	location = loc
}

// Location is the timezone all calendar windows and "today" comparisons use.
func Location() *time.Location {
	if location == nil {
		return time.UTC
	}
	return location
}

// Now returns the current time in the reporting timezone.
func Now() time.Time {
	return time.Now().In(Location())
}
