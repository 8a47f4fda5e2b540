// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for watchlist and screening
// activity.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogWatchlistReload logs a watchlist reload attempt.
func (al *AuditLogger) LogWatchlistReload(source string, stocks int, duration time.Duration, trigger string, success bool) {
	entry := al.WithFields(logrus.Fields{
		"source":   source,
		"stocks":   stocks,
		"duration": duration.String(),
		"trigger":  trigger,
		"success":  success,
	})
	if success {
		entry.Info("Watchlist reload recorded")
	} else {
		entry.Warn("Watchlist reload failed")
	}
}

// LogScreenRequest logs a screen pass served over HTTP.
func (al *AuditLogger) LogScreenRequest(requestID, filterKey, sortField string, ascending bool, matched int) {
	al.WithFields(logrus.Fields{
		"request_id": requestID,
		"filter":     filterKey,
		"sort":       sortField,
		"ascending":  ascending,
		"matched":    matched,
	}).Info("Screen request recorded")
}

// LogSearchQuery logs a search box query and its hit count.
func (al *AuditLogger) LogSearchQuery(requestID, query string, hits int) {
	al.WithFields(logrus.Fields{
		"request_id": requestID,
		"query":      query,
		"hits":       hits,
	}).Info("Search query recorded")
}
