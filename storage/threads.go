// Package storage persists conversation threads so a lab can resume a
// conversation with full prior context in a later run.
//
// Snapshots are JSON files, one per thread, under <data_dir>/threads. The
// format is owned by this package; providers only ever see the replayed
// messages, never the files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"agentlab/model"

	"github.com/google/uuid"
)

// Thread is a serializable conversation accumulated across turns.
type Thread struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Provider  string          `json:"provider"`
	Model     string          `json:"model"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Messages  []ThreadMessage `json:"messages"`
}

// ThreadMessage is the persisted form of a conversation turn.
type ThreadMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ThreadMetadata is a lightweight Thread for listings.
type ThreadMetadata struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// Append records a turn on the thread.
func (t *Thread) Append(role, content string) {
	t.Messages = append(t.Messages, ThreadMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// ModelMessages converts the persisted transcript back into the form a
// ChatClient accepts, restoring full prior context.
func (t *Thread) ModelMessages() []model.Message {
	messages := make([]model.Message, len(t.Messages))
	for i, msg := range t.Messages {
		messages[i] = model.Message{
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		}
	}
	return messages
}

// ThreadStorage handles thread persistence on disk.
type ThreadStorage struct {
	threadsDir string
}

// NewThreadStorage creates the threads directory under dataDir if needed.
func NewThreadStorage(dataDir string) (*ThreadStorage, error) {
	threadsDir := filepath.Join(dataDir, "threads")

	// 0700: transcripts are user-private
	if err := os.MkdirAll(threadsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create threads directory: %w", err)
	}

	return &ThreadStorage{threadsDir: threadsDir}, nil
}

// Save writes the thread snapshot, assigning an ID on first save.
func (s *ThreadStorage) Save(thread *Thread) error {
	if thread.ID == "" {
		thread.ID = uuid.New().String()
	}

	thread.UpdatedAt = time.Now()
	if thread.CreatedAt.IsZero() {
		thread.CreatedAt = thread.UpdatedAt
	}
	if thread.Name == "" {
		thread.Name = GenerateThreadName(firstUserContent(thread))
	}

	data, err := json.MarshalIndent(thread, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal thread: %w", err)
	}

	path := filepath.Join(s.threadsDir, thread.ID+".json")
	// 0600: snapshots contain conversation history
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write thread file: %w", err)
	}

	return nil
}

// Load reads a thread snapshot by ID.
func (s *ThreadStorage) Load(id string) (*Thread, error) {
	data, err := os.ReadFile(filepath.Join(s.threadsDir, id+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read thread file: %w", err)
	}

	var thread Thread
	if err := json.Unmarshal(data, &thread); err != nil {
		return nil, fmt.Errorf("failed to unmarshal thread: %w", err)
	}

	return &thread, nil
}

// List returns metadata for all threads, newest first.
func (s *ThreadStorage) List() ([]ThreadMetadata, error) {
	entries, err := os.ReadDir(s.threadsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read threads directory: %w", err)
	}

	var threads []ThreadMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.threadsDir, entry.Name()))
		if err != nil {
			continue // skip unreadable files
		}

		var thread Thread
		if err := json.Unmarshal(data, &thread); err != nil {
			continue // skip corrupted files
		}

		threads = append(threads, ThreadMetadata{
			ID:           thread.ID,
			Name:         thread.Name,
			Provider:     thread.Provider,
			Model:        thread.Model,
			CreatedAt:    thread.CreatedAt,
			UpdatedAt:    thread.UpdatedAt,
			MessageCount: len(thread.Messages),
		})
	}

	sort.Slice(threads, func(i, j int) bool {
		return threads[i].UpdatedAt.After(threads[j].UpdatedAt)
	})

	return threads, nil
}

// Delete removes a thread snapshot.
func (s *ThreadStorage) Delete(id string) error {
	if err := os.Remove(filepath.Join(s.threadsDir, id+".json")); err != nil {
		return fmt.Errorf("failed to delete thread file: %w", err)
	}
	return nil
}

// SaveCurrentThreadID records the last active thread for `resume`.
func (s *ThreadStorage) SaveCurrentThreadID(id string) error {
	path := filepath.Join(filepath.Dir(s.threadsDir), "current_thread.id")
	return os.WriteFile(path, []byte(id), 0600)
}

// LoadCurrentThreadID returns the last active thread ID.
func (s *ThreadStorage) LoadCurrentThreadID() (string, error) {
	path := filepath.Join(filepath.Dir(s.threadsDir), "current_thread.id")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// ExportToJSON writes an indented copy of the thread to exportPath.
func (s *ThreadStorage) ExportToJSON(id string, exportPath string) error {
	thread, err := s.Load(id)
	if err != nil {
		return fmt.Errorf("failed to load thread: %w", err)
	}

	data, err := json.MarshalIndent(thread, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal thread: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(exportPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// GenerateThreadName derives a display name from the first user message.
func GenerateThreadName(firstMessage string) string {
	if firstMessage == "" {
		return fmt.Sprintf("Thread %s", time.Now().Format("Jan 2, 3:04 PM"))
	}

	name := firstMessage
	if len(name) > 30 {
		name = name[:30] + "..."
	}

	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Sprintf("Thread %s", time.Now().Format("Jan 2, 3:04 PM"))
	}
	return name
}

func firstUserContent(thread *Thread) string {
	for _, msg := range thread.Messages {
		if msg.Role == "user" {
			return msg.Content
		}
	}
	return ""
}
