package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.verbose)

			logger.Debug("debug message")
			logger.Info("analysis complete", "overall", 82)

			output := buf.String()
			assert.Contains(t, output, "msg=\"analysis complete\"")
			assert.Contains(t, output, "overall=82")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug message")))
		})
	}
}

func TestColoredLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewColoredLogger(&buf, false).With("request_id", "req-1")

	logger.Info("request", "path", "/analyze", "status", 200)
	logger.Debug("hidden")

	output := buf.String()
	assert.Contains(t, output, "INFO")
	assert.Contains(t, output, "[req-1]")
	assert.Contains(t, output, "request")
	assert.Contains(t, output, `"/analyze"`)
	assert.Contains(t, output, "=200")
	assert.NotContains(t, output, "hidden")
}

func TestColoredLogger_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := NewColoredLogger(&buf, false).
		With("request_id", "req-2").
		WithGroup("batch").
		With("dir", "jobs").
		WithGroup("")

	logger.Info("job done", "file", "a.txt", slog.Group("score", "overall", 71, "grade", "C"))

	output := buf.String()
	assert.Contains(t, output, "[req-2]")
	assert.Contains(t, output, yellow+"batch.dir"+reset+`="jobs"`)
	assert.Contains(t, output, yellow+"batch.file"+reset+`="a.txt"`)
	assert.Contains(t, output, yellow+"batch.score.overall"+reset+"=71")
	assert.Contains(t, output, yellow+"batch.score.grade"+reset+`="C"`)
	assert.NotContains(t, output, yellow+"file"+reset)
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
	assert.Equal(t, "", RequestID(context.Background()))
}
