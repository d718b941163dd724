package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/circulars"
	"github.com/fwojciec/circulars/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkArchive_SaveDetail measures archiving during a scrape: a first run
// inserts every circular, a resumed run with --refresh replaces them.
func BenchmarkArchive_SaveDetail(b *testing.B) {
	b.Run("insert", func(b *testing.B) {
		svc := benchArchive(b)
		ctx := context.Background()

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := svc.SaveDetail(ctx, benchDetail(i)); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("replace", func(b *testing.B) {
		svc := benchArchive(b)
		ctx := context.Background()
		require.NoError(b, svc.SaveDetail(ctx, benchDetail(0)))

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := svc.SaveDetail(ctx, benchDetail(0)); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkArchive_FindDetail measures the lookup made before every fetch
// on an archive holding a year of circulars.
func BenchmarkArchive_FindDetail(b *testing.B) {
	const archived = 1000

	svc := benchArchive(b)
	ctx := context.Background()
	for i := range archived {
		require.NoError(b, svc.SaveDetail(ctx, benchDetail(i)))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		link := benchDetail(i % archived).Link
		if _, err := svc.FindDetail(ctx, link); err != nil {
			b.Fatal(err)
		}
	}
}

func benchArchive(b *testing.B) *sqlite.ArchiveService {
	b.Helper()
	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	b.Cleanup(func() { db.Close() })
	return sqlite.NewArchiveService(db)
}

func benchDetail(i int) *circulars.ArchivedDetail {
	return &circulars.ArchivedDetail{
		Link: fmt.Sprintf("https://example.org/scripts/Notification.aspx?Id=%d", i),
		Result: circulars.NewDetailResult(&circulars.DetailRecord{
			Title:          fmt.Sprintf("Circular %d", i),
			CircularNumber: fmt.Sprintf("RBI/2024-25/%d", i),
			ContentSections: []circulars.Section{
				{Title: "Introduction", Content: "Lorem ipsum dolor sit amet, consectetur adipiscing elit."},
			},
			Tables: []*circulars.EmbeddedTable{},
		}, nil),
	}
}
