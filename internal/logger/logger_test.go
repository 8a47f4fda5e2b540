package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerParsesLevel(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("chatty")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestAuditLoggerWatchlistReload(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogWatchlistReload("scwatchlist.csv", 142, 350*time.Millisecond, "cron", true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "audit", logEntry["component"])
	assert.Equal(t, "scwatchlist.csv", logEntry["source"])
	assert.Equal(t, float64(142), logEntry["stocks"])
	assert.Equal(t, "cron", logEntry["trigger"])
	assert.Equal(t, true, logEntry["success"])
	assert.Equal(t, "info", logEntry["level"])
}

func TestAuditLoggerWatchlistReloadFailure(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogWatchlistReload("https://example.com/watchlist.csv", 0, time.Second, "manual", false)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, false, logEntry["success"])
	assert.Equal(t, "warning", logEntry["level"])
}

func TestAuditLoggerScreenRequest(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogScreenRequest("req_123", "industry=Banks|quality=true", "roe", false, 17)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "req_123", logEntry["request_id"])
	assert.Equal(t, "roe", logEntry["sort"])
	assert.Equal(t, float64(17), logEntry["matched"])
}

func TestAuditLoggerSearchQuery(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogSearchQuery("req_456", "hdfc", 3)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "hdfc", logEntry["query"])
	assert.Equal(t, float64(3), logEntry["hits"])
}

func TestAuditLoggerJSONFormat(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogScreenRequest("req_789", "", "market_cap", false, 142)

	// Verify output is valid JSON
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	assert.NoError(t, err)
	assert.NotEmpty(t, logEntry)
}

func BenchmarkAuditLoggerScreenRequest(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	auditLogger := NewAuditLogger(log)

	for i := 0; i < b.N; i++ {
		auditLogger.LogScreenRequest("req_123", "industry=Banks", "roe", false, 17)
	}
}
