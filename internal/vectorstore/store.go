package vectorstore

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"playd/pkg/types"
)

// Chunk is a document fragment with its embedding, ready for storage.
type Chunk struct {
	Seq     int
	Content string
	Vector  []float32
}

// Hit is a retrieval result ordered by similarity.
type Hit struct {
	DocumentID string
	Seq        int
	Content    string
	Score      float64
}

// Store is a SQLite-backed vector index. SQLite holds the chunks and their
// embedding blobs; similarity is computed in process.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS chunks (
	doc_id    TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
	seq       INTEGER NOT NULL,
	content   TEXT NOT NULL,
	embedding BLOB NOT NULL,
	PRIMARY KEY (doc_id, seq)
);
`

// Open opens (or creates) the index at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("index path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open index db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping index db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AddDocument replaces all chunks for docID in a single transaction, so a
// re-index never leaves mixed chunk generations behind.
func (s *Store) AddDocument(ctx context.Context, docID, source string, chunks []Chunk) error {
	if docID == "" {
		return fmt.Errorf("doc id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("clear chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (id, source, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET source = excluded.source`,
		docID, source, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	for _, c := range chunks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chunks (doc_id, seq, content, embedding) VALUES (?, ?, ?, ?)`,
			docID, c.Seq, c.Content, encodeVector(c.Vector)); err != nil {
			return fmt.Errorf("insert chunk %d: %w", c.Seq, err)
		}
	}
	return tx.Commit()
}

// Search returns the k most similar chunks by cosine similarity.
func (s *Store) Search(ctx context.Context, vec []float32, k int) ([]Hit, error) {
	if len(vec) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}
	if k <= 0 {
		k = 1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT doc_id, seq, content, embedding FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("scan chunks: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		var blob []byte
		if err := rows.Scan(&h.DocumentID, &h.Seq, &h.Content, &blob); err != nil {
			return nil, err
		}
		stored := decodeVector(blob)
		if len(stored) != len(vec) {
			return nil, fmt.Errorf("embedding dimension mismatch: index has %d, query has %d", len(stored), len(vec))
		}
		h.Score = cosine(vec, stored)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Stats reports index size for /status.
func (s *Store) Stats(ctx context.Context) (types.IndexStats, error) {
	var st types.IndexStats
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&st.Documents); err != nil {
		return st, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&st.Chunks); err != nil {
		return st, err
	}
	return st, nil
}

// encodeVector packs a float32 slice into a little-endian blob.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(blob []byte) []float32 {
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[i*4:]))
	}
	return vec
}

// cosine computes cosine similarity; zero-norm inputs score 0.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
