// Package tasktable implements durable storage for task instances.
package tasktable

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/taskspec/internal/core/domain"
	"go.trai.ch/taskspec/internal/core/ports"
	"go.trai.ch/zerr"
)

// fileRecord is one instance as persisted in the JSON file.
type fileRecord struct {
	Task   string `json:"task"`
	Record []byte `json:"record"`
}

// FileStore implements ports.TaskTable using a flat JSON file.
type FileStore struct {
	path    string
	mu      sync.RWMutex
	records map[string]fileRecord
}

var _ ports.TaskTable = (*FileStore)(nil)

// NewFileStore creates a task table backed by the file at the given path.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    filepath.Clean(path),
		records: make(map[string]fileRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read task table"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal task table"), "path", s.path)
	}

	return nil
}

// saveLocked writes the table to disk. The caller must hold the write lock.
func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal task table")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for task table")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return zerr.Wrap(err, "failed to write task table")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.Wrap(err, "failed to replace task table")
	}
	return nil
}

// Put stores a copy of the instance.
func (s *FileStore) Put(_ context.Context, instance *domain.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := instance.ID().String()
	prev, had := s.records[key]
	s.records[key] = fileRecord{
		Task:   instance.Spec().TaskID().String(),
		Record: instance.Clone().Bytes(),
	}
	if err := s.saveLocked(); err != nil {
		s.restoreLocked(key, prev, had)
		return err
	}
	return nil
}

// Get returns a private copy of the stored instance, or nil if absent.
func (s *FileStore) Get(_ context.Context, id domain.InstanceID) (*domain.Instance, error) {
	s.mu.RLock()
	rec, ok := s.records[id.String()]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	// json.Unmarshal gave each record its own slice; copy so callers never alias it.
	return domain.ParseInstance(slices.Clone(rec.Record))
}

// ApplyUpdate writes the update's state and node into the stored record.
func (s *FileStore) ApplyUpdate(_ context.Context, id domain.InstanceID, update domain.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := id.String()
	rec, ok := s.records[key]
	if !ok {
		return zerr.With(domain.ErrInstanceNotFound, "instance_id", key)
	}

	in, err := domain.ParseInstance(slices.Clone(rec.Record))
	if err != nil {
		return zerr.With(err, "instance_id", key)
	}
	in.Apply(update)
	prev := rec
	rec.Record = in.Bytes()
	s.records[key] = rec

	if err := s.saveLocked(); err != nil {
		s.restoreLocked(key, prev, true)
		return err
	}
	return nil
}

// restoreLocked puts back the entry that was replaced before a failed save,
// keeping memory in line with the file.
func (s *FileStore) restoreLocked(key string, prev fileRecord, had bool) {
	if had {
		s.records[key] = prev
		return
	}
	delete(s.records, key)
}

// FindByTask returns the ids of all instances of the task, sorted.
func (s *FileStore) FindByTask(_ context.Context, id domain.TaskID) ([]domain.InstanceID, error) {
	want := id.String()

	s.mu.RLock()
	keys := make([]string, 0)
	for key, rec := range s.records {
		if rec.Task == want {
			keys = append(keys, key)
		}
	}
	s.mu.RUnlock()

	slices.Sort(keys)
	ids := make([]domain.InstanceID, 0, len(keys))
	for _, key := range keys {
		iid, err := domain.ParseID[domain.InstanceID](key)
		if err != nil {
			return nil, zerr.With(err, "path", s.path)
		}
		ids = append(ids, iid)
	}
	return ids, nil
}
