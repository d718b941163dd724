package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/circulars"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ circulars.DetailArchive = (*ArchiveService)(nil)

// ArchiveService implements circulars.DetailArchive using SQLite.
// Each detail page locator has at most one row; saving again replaces it.
type ArchiveService struct {
	db *DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(db *DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64(content))
	return hex.EncodeToString(b)
}

const detailColumns = "id, link, result, content_hash, fetched_at"

// SaveDetail inserts or replaces the archived result for detail.Link.
// A replaced row keeps its ID.
func (s *ArchiveService) SaveDetail(ctx context.Context, detail *circulars.ArchivedDetail) error {
	if err := detail.Validate(); err != nil {
		return err
	}

	result, err := json.Marshal(detail.Result)
	if err != nil {
		return circulars.Errorf(circulars.EINVALID, "encode detail result: %v", err)
	}

	var number, title string
	failed := 1
	if detail.Result.OK() {
		number, title = detail.Result.Circular.CircularNumber, detail.Result.Circular.Title
		failed = 0
	}

	detail.ContentHash = hashContent(result)
	detail.FetchedAt = time.Now().UTC().Truncate(time.Second)

	return s.db.QueryRowContext(ctx, `
		INSERT INTO details (id, link, circular_number, title, failed, result, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			circular_number = excluded.circular_number,
			title = excluded.title,
			failed = excluded.failed,
			result = excluded.result,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), detail.Link, number, title, failed, string(result),
		detail.ContentHash, detail.FetchedAt.Format(time.RFC3339)).Scan(&detail.ID)
}

// FindDetail retrieves the archived result for a link.
func (s *ArchiveService) FindDetail(ctx context.Context, link string) (*circulars.ArchivedDetail, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+detailColumns+" FROM details WHERE link = ?", link)

	detail, err := scanDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, circulars.Errorf(circulars.ENOTFOUND, "detail not archived: %s", link)
	}
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// FindDetails retrieves archived results matching the filter, most recently
// fetched first. Ties are broken by link so listings are stable.
func (s *ArchiveService) FindDetails(ctx context.Context, filter circulars.ArchiveFilter) ([]*circulars.ArchivedDetail, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + detailColumns + " FROM details WHERE 1=1")
	if filter.FailedOnly {
		query.WriteString(" AND failed = 1")
	}
	query.WriteString(" ORDER BY fetched_at DESC, link ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []*circulars.ArchivedDetail{}
	for rows.Next() {
		detail, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, rows.Err()
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDetail(row scanner) (*circulars.ArchivedDetail, error) {
	var detail circulars.ArchivedDetail
	var result, fetchedAt string

	if err := row.Scan(&detail.ID, &detail.Link, &result, &detail.ContentHash, &fetchedAt); err != nil {
		return nil, err
	}

	detail.Result = &circulars.DetailResult{}
	if err := json.Unmarshal([]byte(result), detail.Result); err != nil {
		return nil, circulars.Errorf(circulars.EINTERNAL, "decode archived result for %s: %v", detail.Link, err)
	}

	var err error
	detail.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &detail, nil
}
