package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/circulars"
	"github.com/fwojciec/circulars/mock"
	circslog "github.com/fwojciec/circulars/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingIndexParser_ParseIndex(t *testing.T) {
	t.Parallel()

	t.Run("logs row and header counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.IndexParser{
			ParseIndexFn: func(html string) (*circulars.IndexResult, error) {
				return &circulars.IndexResult{
					Headers:   []string{"A", "B"},
					Circulars: []*circulars.SummaryRecord{{}, {}, {}},
				}, nil
			},
		}

		result, err := circslog.NewLoggingIndexParser(inner, debugLogger(&buf)).ParseIndex("<html></html>")

		require.NoError(t, err)
		assert.Len(t, result.Circulars, 3)
		output := buf.String()
		assert.Contains(t, output, "parse index")
		assert.Contains(t, output, "rows=3")
		assert.Contains(t, output, "headers=2")
	})

	t.Run("logs error when table is missing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.IndexParser{
			ParseIndexFn: func(html string) (*circulars.IndexResult, error) {
				return nil, circulars.Errorf(circulars.ENOTFOUND, "Table not found")
			},
		}

		_, err := circslog.NewLoggingIndexParser(inner, debugLogger(&buf)).ParseIndex("")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "rows=0")
		assert.Contains(t, buf.String(), `err="Table not found"`)
	})

	t.Run("is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.IndexParser{
			ParseIndexFn: func(html string) (*circulars.IndexResult, error) {
				return &circulars.IndexResult{}, nil
			},
		}

		_, err := circslog.NewLoggingIndexParser(inner, logger).ParseIndex("")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("failure is visible at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.IndexParser{
			ParseIndexFn: func(html string) (*circulars.IndexResult, error) {
				return nil, circulars.Errorf(circulars.ENOTFOUND, "Table not found")
			},
		}

		_, err := circslog.NewLoggingIndexParser(inner, logger).ParseIndex("")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "parse index")
	})
}

func TestLoggingDetailParser_ParseDetail(t *testing.T) {
	t.Parallel()

	t.Run("logs circular number and counts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DetailParser{
			ParseDetailFn: func(html string) (*circulars.DetailRecord, error) {
				return &circulars.DetailRecord{
					CircularNumber:  "RBI/2024-25/01",
					ContentSections: []circulars.Section{{Title: "A"}},
					Tables:          []*circulars.EmbeddedTable{{}, {}},
				}, nil
			},
		}

		rec, err := circslog.NewLoggingDetailParser(inner, debugLogger(&buf)).ParseDetail("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "RBI/2024-25/01", rec.CircularNumber)
		output := buf.String()
		assert.Contains(t, output, "parse detail")
		assert.Contains(t, output, "circular=RBI/2024-25/01")
		assert.Contains(t, output, "sections=1")
		assert.Contains(t, output, "tables=2")
	})
}
