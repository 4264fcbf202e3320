package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestHandler_RenamesKeysAndAddsContext(t *testing.T) {
	t.Parallel()

	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "email-handler", nil, nil))
	ctx := SetCorrelationID(context.Background(), "cid-123")

	// Act
	logger.InfoContext(ctx, "email sent", "type", "welcome")

	// Assert
	line := decodeLine(t, &buf)
	assert.Equal(t, "INFO", line["severity"])
	assert.Contains(t, line, "ts")
	assert.Equal(t, "cid-123", line["_cID"])
	assert.Equal(t, "email-handler", line["service"])
	assert.Equal(t, "welcome", line["type"])
}

func TestHandler_MasksConfiguredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "", nil, []string{" Password ", "resetLink"}))

	logger.Info("request",
		"password", "hunter2",
		"body", `{"type":"password-reset","data":{"resetLink":"https://x/reset?t=1","name":"Ada"}}`,
		slog.Group("smtp", slog.String("password", "s3cret"), slog.String("host", "mail.local")),
		"headers", map[string]string{"Password": "p"},
	)

	line := decodeLine(t, &buf)
	assert.Equal(t, masked, line["password"])
	assert.NotContains(t, line, "service")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(line["body"].(string)), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, masked, data["resetLink"])
	assert.Equal(t, "Ada", data["name"])

	smtp := line["smtp"].(map[string]any)
	assert.Equal(t, masked, smtp["password"])
	assert.Equal(t, "mail.local", smtp["host"])

	headers := line["headers"].(map[string]any)
	assert.Equal(t, masked, headers["Password"])
}

func TestHandler_WithAttrsMasks(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "", nil, []string{"password"})).With("password", "x")

	logger.Info("with")

	assert.Equal(t, masked, decodeLine(t, &buf)["password"])
}

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(context.Background(), "abc")))
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	inst, err := New(context.Background(), &Config{ServiceName: "email-handler"})
	require.NoError(t, err)

	_, span := inst.Tracer("test").Start(context.Background(), "op")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, inst.Shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, sampleRatio(-1), 0.0001)
	assert.InDelta(t, 1.0, sampleRatio(3), 0.0001)
	assert.InDelta(t, 0.25, sampleRatio(0.25), 0.0001)
}
