package blogshell

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	// Drivers for the supported dialects.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// isoLayout is the layout used for every date a Store returns.
const isoLayout = "2006-01-02T15:04:05.000Z"

// dbLayout is the layout used for every date a Store writes.
const dbLayout = "2006-01-02 15:04:05"

var postColumns = []string{
	"id", "organization_id", "slug", "status", "title", "content", "excerpt",
	"url", "metadata", "created_at", "updated_at", "published_at",
}

// Store reads and writes post records in a SQL database.
type Store struct {
	db     *sql.DB
	driver string
}

// OpenStore opens a database with driver and dsn. For SQLite the parent
// directory is created and the schema is ensured; other databases are
// expected to already have a posts table.
func OpenStore(driver, dsn string, maxConns int) (*Store, error) {
	switch driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("blogshell: unsupported database driver %q", driver)
	}
	if driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if maxConns <= 0 {
		maxConns = 10
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	s := &Store{db: db, driver: driver}
	if driver == DriverSQLite {
		if err := s.initSQLite(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) initSQLite() error {
	// WAL lets readers proceed while the importer writes.
	if _, err := s.db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return err
	}
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id TEXT PRIMARY KEY,
    organization_id TEXT NOT NULL,
    slug TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft',
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    excerpt TEXT,
    url TEXT,
    metadata TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    published_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_posts_org_slug ON posts (organization_id, slug);
CREATE INDEX IF NOT EXISTS idx_posts_org_status ON posts (organization_id, status, published_at);
`)
	return err
}

// rebind rewrites ? placeholders as $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var selectPosts = "SELECT " + strings.Join(postColumns, ", ") + " FROM posts"

// FetchPublishedPosts returns up to limit published records for tenantID,
// newest first. A limit below one is raised to one.
func (s *Store) FetchPublishedPosts(ctx context.Context, tenantID string, limit int) ([]PostRecord, error) {
	limit = max(limit, 1)
	rows, err := s.db.QueryContext(ctx, s.rebind(selectPosts+
		` WHERE organization_id = ? AND status = 'published' ORDER BY published_at DESC, updated_at DESC LIMIT ?`),
		tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PostRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// FetchPostBySlug returns the newest published record with slug, or
// ErrNotFound.
func (s *Store) FetchPostBySlug(ctx context.Context, tenantID, slug string) (PostRecord, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectPosts+
		` WHERE organization_id = ? AND slug = ? AND status = 'published' ORDER BY published_at DESC, updated_at DESC LIMIT 1`),
		tenantID, slug)
	return scanRecord(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (PostRecord, error) {
	var (
		rec                    PostRecord
		status                 string
		excerpt, url, metadata sql.NullString
		created, updated, pub  any
	)
	if err := row.Scan(&rec.ID, &rec.OrganizationID, &rec.Slug, &status, &rec.Title, &rec.Content,
		&excerpt, &url, &metadata, &created, &updated, &pub); err != nil {
		return PostRecord{}, err
	}
	rec.Status = PostStatus(status)
	rec.Excerpt = excerpt.String
	rec.URL = url.String
	rec.Metadata = ParseMetadata(metadata.String)
	rec.CreatedAt = isoTime(created)
	rec.UpdatedAt = isoTime(updated)
	rec.PublishedAt = isoTime(pub)
	return rec, nil
}

// isoTime normalizes a scanned date column to an ISO-8601 string. Values
// that cannot be parsed are returned unchanged.
func isoTime(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.UTC().Format(isoLayout)
	case []byte:
		s = string(t)
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	if parsed, ok := parseDate(s); ok {
		return parsed.UTC().Format(isoLayout)
	}
	return s
}

// dbTime converts an ISO-8601 string to the layout written to the database.
// Empty strings become NULL.
func dbTime(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if t, ok := parseDate(s); ok {
		return t.UTC().Format(dbLayout)
	}
	return s
}

func (s *Store) upsertQuery() string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(postColumns)), ", ")
	q := "INSERT INTO posts (" + strings.Join(postColumns, ", ") + ") VALUES (" + placeholders + ") "
	var sets []string
	for _, col := range postColumns[1:] {
		if s.driver == DriverMySQL {
			sets = append(sets, col+" = VALUES("+col+")")
		} else {
			sets = append(sets, col+" = excluded."+col)
		}
	}
	if s.driver == DriverMySQL {
		q += "ON DUPLICATE KEY UPDATE "
	} else {
		q += "ON CONFLICT (id) DO UPDATE SET "
	}
	return s.rebind(q + strings.Join(sets, ", "))
}

// SavePost inserts or updates rec by id and returns the stored id. An empty
// id is replaced with a new UUID and empty timestamps default to now.
func (s *Store) SavePost(ctx context.Context, rec PostRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Status == "" {
		rec.Status = StatusDraft
	}
	now := time.Now().UTC().Format(isoLayout)
	if rec.CreatedAt == "" {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt == "" {
		rec.UpdatedAt = now
	}

	var metadata any
	if len(rec.Metadata) > 0 {
		b, err := json.Marshal(rec.Metadata)
		if err != nil {
			return "", fmt.Errorf("blogshell: encode metadata: %w", err)
		}
		metadata = string(b)
	}

	_, err := s.db.ExecContext(ctx, s.upsertQuery(),
		rec.ID, rec.OrganizationID, rec.Slug, string(rec.Status), rec.Title, rec.Content,
		nullString(rec.Excerpt), nullString(rec.URL), metadata,
		dbTime(rec.CreatedAt), dbTime(rec.UpdatedAt), dbTime(rec.PublishedAt))
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// DeletePost removes the tenant's post with slug.
func (s *Store) DeletePost(ctx context.Context, tenantID, slug string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM posts WHERE organization_id = ? AND slug = ?`), tenantID, slug)
	return err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
