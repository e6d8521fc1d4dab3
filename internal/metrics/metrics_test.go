package metrics

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")
	sink, err := NewSQLiteSink(path, slog.Default())
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	sink.RecordSuccess(ctx, "mojeek", 10, 350*time.Millisecond)
	sink.RecordSuccess(ctx, "stract", 12, 1200*time.Millisecond)
	sink.RecordError(ctx, "bing", errors.New("didn't receive status code 2xx (429 Too Many Requests)"))

	var successes int
	require.NoError(t, sink.db.QueryRow("SELECT COUNT(*) FROM success").Scan(&successes))
	assert.Equal(t, 2, successes)

	var engine, message string
	require.NoError(t, sink.db.QueryRow("SELECT engine, error FROM error").Scan(&engine, &message))
	assert.Equal(t, "bing", engine)
	assert.Contains(t, message, "429")

	var elapsed float64
	require.NoError(t, sink.db.QueryRow("SELECT time FROM success WHERE engine = ?", "mojeek").Scan(&elapsed))
	assert.InDelta(t, 0.35, elapsed, 1e-9)
}

func TestSQLiteSinkReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.db")

	sink, err := NewSQLiteSink(path, slog.Default())
	require.NoError(t, err)
	sink.RecordSuccess(context.Background(), "mojeek", 5, time.Second)
	require.NoError(t, sink.Close())

	// Schema creation is idempotent and data survives reopening.
	sink, err = NewSQLiteSink(path, slog.Default())
	require.NoError(t, err)
	defer sink.Close()

	var count int
	require.NoError(t, sink.db.QueryRow("SELECT COUNT(*) FROM success").Scan(&count))
	assert.Equal(t, 1, count)
}
