package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

var _ gormlogger.Interface = (*GormLogger)(nil)

func newObservedGormLogger(level zapcore.Level, gormLevel gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(level)
	return NewGormLogger(zap.New(core), gormLevel, opts...), recorded
}

func selectQuery(rows int64) func() (string, int64) {
	return func() (string, int64) {
		return "SELECT * FROM categories", rows
	}
}

func TestNewGormLogger_Defaults(t *testing.T) {
	gl, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
}

func TestNewGormLogger_Options(t *testing.T) {
	gl, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
}

func TestGormLogger_LogModeClones(t *testing.T) {
	gl, _ := newObservedGormLogger(zapcore.InfoLevel, gormlogger.Info)

	clone, ok := gl.LogMode(gormlogger.Warn).(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
	assert.Equal(t, gormlogger.Info, gl.logLevel)
}

func TestGormLogger_LevelGates(t *testing.T) {
	tests := []struct {
		name   string
		level  gormlogger.LogLevel
		log    func(gl *GormLogger)
		logged bool
	}{
		{
			name:   "info at info level",
			level:  gormlogger.Info,
			log:    func(gl *GormLogger) { gl.Info(context.Background(), "connected to %s", "postgres") },
			logged: true,
		},
		{
			name:   "info suppressed when silent",
			level:  gormlogger.Silent,
			log:    func(gl *GormLogger) { gl.Info(context.Background(), "connected") },
			logged: false,
		},
		{
			name:   "warn at warn level",
			level:  gormlogger.Warn,
			log:    func(gl *GormLogger) { gl.Warn(context.Background(), "pool exhausted after %d", 42) },
			logged: true,
		},
		{
			name:   "error at error level",
			level:  gormlogger.Error,
			log:    func(gl *GormLogger) { gl.Error(context.Background(), "connection lost") },
			logged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gl, recorded := newObservedGormLogger(zapcore.DebugLevel, tt.level)
			tt.log(gl)

			if tt.logged {
				assert.Equal(t, 1, recorded.Len())
			} else {
				assert.Equal(t, 0, recorded.Len())
			}
		})
	}
}

func TestGormLogger_TraceError(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error)

	gl.Trace(context.Background(), time.Now(), selectQuery(0), errors.New("relation does not exist"))

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SQL Error")
	assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
}

func TestGormLogger_TraceRecordNotFoundSuppressed(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.ErrorLevel, gormlogger.Error,
		WithIgnoreRecordNotFoundError(true))

	gl.Trace(context.Background(), time.Now(), selectQuery(0), gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceSlowQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.WarnLevel, gormlogger.Warn,
		WithSlowThreshold(time.Nanosecond))

	begin := time.Now().Add(-time.Second)
	gl.Trace(context.Background(), begin, selectQuery(10), nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SLOW SQL")
	assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
}

func TestGormLogger_TraceQueryAtDebug(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)

	gl.Trace(context.Background(), time.Now(), selectQuery(5), nil)

	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "SQL Query")
	assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
}

func TestGormLogger_TraceSilent(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), selectQuery(5), nil)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_TraceCarriesRequestID(t *testing.T) {
	gl, recorded := newObservedGormLogger(zapcore.DebugLevel, gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	gl.Trace(ctx, time.Now(), selectQuery(5), nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	found := false
	for _, field := range logs[0].Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "req-42", field.String)
		}
	}
	assert.True(t, found, "request_id should be in log fields")
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, MapGormLogLevel(tt.level))
		})
	}
}
