// Package audit provides an append-only audit log of entity lifecycle operations.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DirName is the directory under the config root holding occfg state.
const DirName = ".occfg"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp time.Time              `json:"ts"`
	Operation string                 `json:"op"`   // create, update, delete, disable
	Kind      string                 `json:"kind"` // agent, command
	Name      string                 `json:"name"`
	Scope     string                 `json:"scope,omitempty"`
	Changes   map[string]interface{} `json:"changes,omitempty"` // field: target store, or "deleted"
	Paths     []string               `json:"paths,omitempty"`   // files written or removed
}

// Logger handles writing to the audit log.
type Logger struct {
	path    string
	enabled bool
	mu      sync.Mutex
}

// New creates a new audit logger for the given config root.
// If enabled is false, the logger will be a no-op.
func New(root string, enabled bool) *Logger {
	if !enabled {
		return &Logger{enabled: false}
	}

	return &Logger{
		path:    Path(root),
		enabled: true,
	}
}

// Path returns the audit log location under root.
func Path(root string) string {
	return filepath.Join(root, DirName, "audit.log")
}

// Log writes an entry to the audit log.
func (l *Logger) Log(entry Entry) error {
	if l == nil || !l.enabled {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create audit directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}

// LogCreate logs an entity creation.
func (l *Logger) LogCreate(kind, name, scope string, paths []string) error {
	return l.Log(Entry{
		Operation: "create",
		Kind:      kind,
		Name:      name,
		Scope:     scope,
		Paths:     paths,
	})
}

// LogUpdate logs an entity update.
func (l *Logger) LogUpdate(kind, name string, changes map[string]interface{}, paths []string) error {
	return l.Log(Entry{
		Operation: "update",
		Kind:      kind,
		Name:      name,
		Changes:   changes,
		Paths:     paths,
	})
}

// LogDelete logs an entity deletion. Operation is "disable" when the entity
// was tombstoned rather than removed.
func (l *Logger) LogDelete(kind, name string, disabled bool, paths []string) error {
	op := "delete"
	if disabled {
		op = "disable"
	}
	return l.Log(Entry{
		Operation: op,
		Kind:      kind,
		Name:      name,
		Paths:     paths,
	})
}

// Read reads all entries from the audit log.
func (l *Logger) Read() ([]Entry, error) {
	if l == nil || !l.enabled {
		return nil, nil
	}

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue // Skip malformed entries
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}

	return entries, nil
}

// Filter selects entries. Zero fields match everything.
type Filter struct {
	Since time.Time
	Kind  string
	Name  string
}

// Match reports whether entry passes the filter.
func (f Filter) Match(entry Entry) bool {
	if !f.Since.IsZero() && entry.Timestamp.Before(f.Since) {
		return false
	}
	if f.Kind != "" && entry.Kind != f.Kind {
		return false
	}
	if f.Name != "" && entry.Name != f.Name {
		return false
	}
	return true
}

// Query reads entries passing filter.
func (l *Logger) Query(filter Filter) ([]Entry, error) {
	all, err := l.Read()
	if err != nil {
		return nil, err
	}

	var filtered []Entry
	for _, entry := range all {
		if filter.Match(entry) {
			filtered = append(filtered, entry)
		}
	}

	return filtered, nil
}

// Enabled returns true if the audit logger is enabled.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}
