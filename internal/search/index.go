// Package search keeps a SQLite FTS5 full-text index of the content
// collections and answers ranked queries against it.
//
// The index lives in its own database (in memory by default) because the
// snapshot repository replaces a single JSON document on every save. The
// index is updated incrementally from content checksums instead.
package search

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Document is one indexed content entry.
type Document struct {
	Ref        string // "<collection>:<id>", e.g. "destinations:raja-ampat-01"
	Collection string // destinations, experiences, testimonials, gallery
	Title      string
	Content    string
}

// Result is a ranked match.
type Result struct {
	Ref        string  `json:"ref"`
	Collection string  `json:"collection"`
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Rank       float64 `json:"rank"`
}

const indexSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS documents USING fts5(
	ref UNINDEXED,
	collection UNINDEXED,
	title,
	content,
	tokenize='porter unicode61'
);

CREATE TABLE IF NOT EXISTS doc_meta (
	ref TEXT PRIMARY KEY,
	checksum TEXT NOT NULL,
	indexed_at TEXT NOT NULL
);
`

const (
	defaultLimit = 10
	maxLimit     = 50
)

// Index wraps an SQLite database holding the FTS5 table.
type Index struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewIndex opens (or creates) an index at dbPath. An empty path keeps the
// index in memory; it is rebuilt from the store on startup anyway.
func NewIndex(dbPath string) (*Index, error) {
	dsn := ":memory:"
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create search index dir: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	// One connection: an in-memory database is private to its connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(indexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init search schema: %w", err)
	}
	return &Index{db: db}, nil
}

// Put indexes doc unless the stored checksum matches. Reports whether the
// document was (re)indexed.
func (x *Index) Put(doc Document) (bool, error) {
	sum := checksum(doc)

	x.mu.Lock()
	defer x.mu.Unlock()

	var existing string
	err := x.db.QueryRow(`SELECT checksum FROM doc_meta WHERE ref = ?`, doc.Ref).Scan(&existing)
	if err == nil && existing == sum {
		return false, nil
	}

	tx, err := x.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents WHERE ref = ?`, doc.Ref); err != nil {
		return false, fmt.Errorf("delete old doc: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO documents (ref, collection, title, content) VALUES (?, ?, ?, ?)`,
		doc.Ref, doc.Collection, doc.Title, doc.Content,
	); err != nil {
		return false, fmt.Errorf("insert doc: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO doc_meta (ref, checksum, indexed_at) VALUES (?, ?, ?)
		 ON CONFLICT(ref) DO UPDATE SET checksum = excluded.checksum, indexed_at = excluded.indexed_at`,
		doc.Ref, sum, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return false, fmt.Errorf("upsert doc_meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes a document and its metadata.
func (x *Index) Remove(ref string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	tx, err := x.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents WHERE ref = ?`, ref); err != nil {
		return fmt.Errorf("delete from fts: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM doc_meta WHERE ref = ?`, ref); err != nil {
		return fmt.Errorf("delete from meta: %w", err)
	}
	return tx.Commit()
}

// Refs returns every indexed reference.
func (x *Index) Refs() ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.db.Query(`SELECT ref FROM doc_meta`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// Query runs a full-text search. collection narrows the results when set.
// limit is clamped to [1, 50]; zero means 10. A query with no usable terms
// returns no results.
func (x *Index) Query(query, collection string, limit int) ([]Result, error) {
	switch {
	case limit <= 0:
		limit = defaultLimit
	case limit > maxLimit:
		limit = maxLimit
	}
	fts := sanitizeQuery(query)
	if fts == "" {
		return []Result{}, nil
	}

	x.mu.RLock()
	defer x.mu.RUnlock()

	rows, err := x.db.Query(`
		SELECT ref, collection, title, snippet(documents, 3, '[', ']', '...', 16), rank
		FROM documents
		WHERE documents MATCH ?
		AND (? = '' OR collection = ?)
		ORDER BY rank
		LIMIT ?
	`, fts, collection, collection, limit)
	if err != nil {
		return nil, fmt.Errorf("fts query: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Ref, &r.Collection, &r.Title, &r.Snippet, &r.Rank); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		_, r.ID, _ = strings.Cut(r.Ref, ":")
		results = append(results, r)
	}
	return results, rows.Err()
}

// Close closes the database.
func (x *Index) Close() error {
	return x.db.Close()
}

// sanitizeQuery turns free text into a safe FTS5 query: special characters
// and bare operators are dropped and the remaining terms are ANDed.
func sanitizeQuery(q string) string {
	replacer := strings.NewReplacer(
		"\"", " ",
		"'", " ",
		"(", " ",
		")", " ",
		"*", " ",
		":", " ",
		"^", " ",
		"{", " ",
		"}", " ",
		"-", " ",
		"+", " ",
	)
	var terms []string
	for _, w := range strings.Fields(replacer.Replace(q)) {
		switch w {
		case "AND", "OR", "NOT", "NEAR":
			continue
		}
		terms = append(terms, `"`+w+`"`)
	}
	return strings.Join(terms, " ")
}

func checksum(doc Document) string {
	h := sha256.Sum256([]byte(doc.Collection + "\x00" + doc.Title + "\x00" + doc.Content))
	return hex.EncodeToString(h[:])
}
