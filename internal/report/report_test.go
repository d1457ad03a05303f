package report

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureLogs(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	Failure(context.Background(), logger, "chat_purge", errors.New("db gone"), slog.Uint64("mission_id", 3))

	out := buf.String()
	assert.Contains(t, out, "op=chat_purge")
	assert.Contains(t, out, `error="db gone"`)
	assert.Contains(t, out, "mission_id=3")
}

func TestFailureNil(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	Failure(context.Background(), logger, "noop", nil)
	assert.Empty(t, buf.String())
}

func TestInitEmptyDsn(t *testing.T) {
	require.NoError(t, Init("", "test", ""))
}
