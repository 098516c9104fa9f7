package logsvc

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

func newObservedLogger() (*RollbarLogger, *observer.ObservedLogs) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	conf := &core.Config{Env: "TEST", Build: "test"}
	return NewRollbarLogger(zap.New(obsCore).Sugar(), conf), logs
}

func TestRollbarLogger_levels(t *testing.T) {
	logger, logs := newObservedLogger()

	logger.Debug("debug msg")
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error("error msg")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	want := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Level)
	}
	assert.Equal(t, "error msg", entries[3].Message)
}

func TestRollbarLogger_fields(t *testing.T) {
	logger, logs := newObservedLogger()

	stu := grading.NewStudent(42, "Doe", "Jane")
	logger.Error(
		"error occurred while writing grades",
		errors.New("disk full"),
		stu,
		map[string]interface{}{"path": "Grades.dat"},
		7,
	)

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "disk full", ctx["error"])
	assert.Equal(t, int64(42), ctx["student_id"])
	assert.Equal(t, "Doe, Jane", ctx["student"])
	assert.Equal(t, "Grades.dat", ctx["path"])
	assert.Equal(t, int64(7), ctx["arg3"])
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger, _ := newObservedLogger()

	err := errors.New("lol")
	args := logger.prepare("msg", []interface{}{err, grading.NewStudent(1, "Doe", "Jane")})
	require.Len(t, args, 3)
	assert.Equal(t, "msg", args[0])
	assert.Equal(t, err, args[1])
	assert.Equal(t, map[string]interface{}{"student_id": 1, "student": "Doe, Jane"}, args[2])
}

func TestNewZap(t *testing.T) {
	for _, debug := range []bool{true, false} {
		l, err := NewZap(&core.Config{AppName: "Gradebook", Debug: debug})
		require.NoError(t, err)
		assert.Equal(t, debug, l.Desugar().Core().Enabled(zapcore.DebugLevel))
	}
}
