// Package datastore is a small JSON-file key/value store: everything lives in
// memory, a background loop flushes changed data to disk, and writes are
// atomic (temp file + rename) with a bounded set of timestamped backups.
package datastore

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds tuning knobs for a DataStore.
type Config struct {
	FilePath         string
	AutoSaveInterval time.Duration
	BackupCount      int
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig(filePath string) *Config {
	return &Config{
		FilePath:         filePath,
		AutoSaveInterval: 10 * time.Second,
		BackupCount:      3,
	}
}

type DataStore struct {
	mu     sync.RWMutex
	data   map[string]any
	config *Config

	// saveMu serializes the snapshot/backup/write/verify sequence and guards
	// lastChecksum; mu alone only protects the in-memory map.
	saveMu       sync.Mutex
	lastChecksum string

	done   chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// New opens (or creates) a store at filePath with default configuration.
func New(filePath string) (*DataStore, error) {
	return NewWithConfig(DefaultConfig(filePath))
}

// NewWithConfig opens (or creates) a store with the given configuration.
func NewWithConfig(config *Config) (*DataStore, error) {
	if config == nil || config.FilePath == "" {
		return nil, fmt.Errorf("datastore: file path is required")
	}

	ds := &DataStore{
		data:   make(map[string]any),
		config: config,
		done:   make(chan struct{}),
	}

	if _, err := os.Stat(config.FilePath); err == nil {
		if err := ds.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load datastore: %w", err)
		}
	}

	ds.wg.Add(1)
	go ds.autoSave()

	return ds, nil
}

// Add stores a key/value pair.
func (ds *DataStore) Add(key string, value any) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.closed {
		return
	}
	ds.data[key] = value
}

// Get retrieves a value by key.
func (ds *DataStore) Get(key string) (any, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	value, exists := ds.data[key]
	return value, exists
}

// Delete removes a key.
func (ds *DataStore) Delete(key string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.data, key)
}

// Keys returns all stored keys, sorted.
func (ds *DataStore) Keys() []string {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	keys := make([]string, 0, len(ds.data))
	for k := range ds.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SaveToFile forces an immediate flush to disk.
func (ds *DataStore) SaveToFile() error {
	ds.mu.RLock()
	closed := ds.closed
	ds.mu.RUnlock()
	if closed {
		return fmt.Errorf("datastore is closed")
	}
	return ds.saveToFile()
}

// Close stops the autosave loop and performs a final flush.
func (ds *DataStore) Close() error {
	ds.mu.Lock()
	if ds.closed {
		ds.mu.Unlock()
		return nil
	}
	ds.closed = true
	ds.mu.Unlock()

	close(ds.done)
	ds.wg.Wait()

	return ds.saveToFile()
}

func (ds *DataStore) saveToFile() error {
	ds.saveMu.Lock()
	defer ds.saveMu.Unlock()

	ds.mu.RLock()
	data, err := json.MarshalIndent(ds.data, "", "  ")
	ds.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	sum := checksum(data)
	if sum == ds.lastChecksum {
		return nil
	}

	if ds.config.BackupCount > 0 {
		if err := ds.createBackup(); err != nil {
			log.Warn().Err(err).Msg("Failed to create datastore backup")
		}
	}

	if err := ds.writeFileAtomic(data); err != nil {
		return err
	}

	// Read back and compare; a short write here would corrupt guild settings.
	written, err := os.ReadFile(ds.config.FilePath)
	if err != nil {
		return fmt.Errorf("failed to verify written file: %w", err)
	}
	if sum != checksum(written) {
		return fmt.Errorf("file checksum mismatch after write")
	}

	ds.lastChecksum = sum
	return nil
}

func (ds *DataStore) loadFromFile() error {
	data, err := os.ReadFile(ds.config.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var loaded map[string]any
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	ds.data = loaded
	ds.lastChecksum = checksum(data)
	return nil
}

func (ds *DataStore) writeFileAtomic(data []byte) error {
	tmp := ds.config.FilePath + ".tmp"

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	f.Close()

	if err := os.Rename(tmp, ds.config.FilePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (ds *DataStore) createBackup() error {
	if _, err := os.Stat(ds.config.FilePath); os.IsNotExist(err) {
		return nil
	}

	backup := fmt.Sprintf("%s.backup.%s", ds.config.FilePath, time.Now().Format("20060102_150405"))

	src, err := os.Open(ds.config.FilePath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(backup)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	ds.cleanupOldBackups()
	return nil
}

func (ds *DataStore) cleanupOldBackups() {
	matches, err := filepath.Glob(ds.config.FilePath + ".backup.*")
	if err != nil || len(matches) <= ds.config.BackupCount {
		return
	}

	// Backup names embed a sortable timestamp; lexical order is age order.
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-ds.config.BackupCount] {
		os.Remove(path)
	}
}

func (ds *DataStore) autoSave() {
	defer ds.wg.Done()

	ticker := time.NewTicker(ds.config.AutoSaveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ds.done:
			return
		case <-ticker.C:
			if err := ds.saveToFile(); err != nil {
				log.Error().Err(err).Msg("Datastore auto-save failed")
			}
		}
	}
}

func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
