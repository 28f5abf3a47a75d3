package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Index maintains a sqlite table of thread metadata and message text so
// `sessions list` and `sessions search` stay fast without loading every
// snapshot into memory.
type Index struct {
	db *sql.DB
}

// MessageMatch is a search hit inside an indexed thread.
type MessageMatch struct {
	ThreadID     string
	ThreadName   string
	MessageIndex int
	Role         string
	Preview      string
	Timestamp    time.Time
}

// OpenIndex opens (or creates) the index database under dataDir.
func OpenIndex(dataDir string) (*Index, error) {
	dbPath := filepath.Join(dataDir, "index.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return idx, nil
}

func (idx *Index) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS threads (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		provider TEXT,
		model TEXT,
		message_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS messages (
		thread_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (thread_id, idx)
	);
	CREATE INDEX IF NOT EXISTS idx_threads_updated ON threads(updated_at);
	`

	_, err := idx.db.Exec(schema)
	return err
}

// Rebuild replaces the index contents from the snapshot store. Snapshots
// are the source of truth; the index is always disposable.
func (idx *Index) Rebuild(store *ThreadStorage) error {
	metas, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list threads: %w", err)
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM messages`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM threads`); err != nil {
		return err
	}

	for _, meta := range metas {
		thread, err := store.Load(meta.ID)
		if err != nil {
			continue // skip unreadable snapshots
		}

		if _, err := tx.Exec(
			`INSERT INTO threads (id, name, provider, model, message_count, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			thread.ID, thread.Name, thread.Provider, thread.Model,
			len(thread.Messages), thread.CreatedAt, thread.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to index thread %s: %w", thread.ID, err)
		}

		for i, msg := range thread.Messages {
			if _, err := tx.Exec(
				`INSERT INTO messages (thread_id, idx, role, content, created_at)
				 VALUES (?, ?, ?, ?, ?)`,
				thread.ID, i, msg.Role, msg.Content, msg.Timestamp,
			); err != nil {
				return fmt.Errorf("failed to index message: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Search finds messages containing query (case-insensitive), newest
// thread first. System messages are excluded; they are lab scaffolding,
// not conversation.
func (idx *Index) Search(query string) ([]MessageMatch, error) {
	if query == "" {
		return []MessageMatch{}, nil
	}

	rows, err := idx.db.Query(
		`SELECT m.thread_id, t.name, m.idx, m.role, m.content, m.created_at
		 FROM messages m JOIN threads t ON t.id = m.thread_id
		 WHERE m.role != 'system' AND m.content LIKE ? COLLATE NOCASE
		 ORDER BY t.updated_at DESC, m.idx ASC`,
		"%"+query+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	var matches []MessageMatch
	for rows.Next() {
		var m MessageMatch
		var content string
		if err := rows.Scan(&m.ThreadID, &m.ThreadName, &m.MessageIndex, &m.Role, &content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		m.Preview = preview(content)
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// Close releases the database handle.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func preview(content string) string {
	content = strings.ReplaceAll(content, "\n", " ")
	if len(content) > 100 {
		return content[:100] + "..."
	}
	return content
}
