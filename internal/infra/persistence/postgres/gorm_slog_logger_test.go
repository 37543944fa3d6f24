package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"authn/config"
	deliverycontext "authn/internal/delivery/context"
	"authn/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/utils/tests"
)

func newBufferedLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestGormSlogLogger_LevelFollowsDebugFlag(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, logger.Warn, newGormSlogLogger(nil, cfg).(*queryLogger).level)

	cfg.Env.Debug = true
	assert.Equal(t, logger.Info, newGormSlogLogger(nil, cfg).(*queryLogger).level)
}

func TestGormSlogLogger_TraceError(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(newBufferedLogger(&buf), nil)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "INSERT INTO users", 0
	}, errors.New("duplicate key"))

	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "INSERT INTO users")
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(newBufferedLogger(&buf), nil)

	l.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM users", 0
	}, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SilentMode(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(newBufferedLogger(&buf), nil).LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT 1", 1
	}, errors.New("boom"))
	l.Error(context.Background(), "ignored %d", 1)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SlowQuery(t *testing.T) {
	var buf bytes.Buffer
	l := newGormSlogLogger(newBufferedLogger(&buf), nil)

	l.Trace(context.Background(), time.Now().Add(-time.Second), func() (string, int64) {
		return "SELECT * FROM users WHERE email = 'ana@x.com'", 1
	}, nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_InsertOmitsBoundValues(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = true

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun: true,
		Logger: newGormSlogLogger(newBufferedLogger(&buf), cfg),
	})
	require.NoError(t, err)

	user := &model.UserModel{
		Name:         "Ana",
		Email:        "ana@x.com",
		PasswordHash: "$2a$10$SECRETHASHVALUE",
	}
	require.NoError(t, db.Create(user).Error)

	out := buf.String()
	assert.Contains(t, out, "GORM query")
	assert.Contains(t, out, "INSERT INTO")
	assert.NotContains(t, out, "SECRETHASHVALUE")
	assert.NotContains(t, out, "ana@x.com")
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	requestLogger := newBufferedLogger(&scoped).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithLogger(context.Background(), requestLogger)

	l := newGormSlogLogger(newBufferedLogger(&base), nil)
	l.Trace(ctx, time.Now(), func() (string, int64) {
		return "INSERT INTO users", 0
	}, errors.New("duplicate key"))

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), "request_id=req-42")
	assert.Contains(t, scoped.String(), "GORM query failed")
}
