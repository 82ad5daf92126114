package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type fileSnapshot struct {
	Version   int                `json:"version"`
	Templates map[string]*Record `json:"templates"`
}

// FileStore keeps every record in one JSON document, rewritten on each
// change.
type FileStore struct {
	mu   sync.RWMutex
	file *os.File
	snap *fileSnapshot
	now  func() time.Time
}

var _ Store = (*FileStore)(nil)

// OpenFile opens or creates the JSON store at path.
func OpenFile(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	s := &FileStore{file: f, now: time.Now}
	if err := s.load(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return s, nil
}

func (s *FileStore) Close() error { return s.file.Close() }

func (s *FileStore) load() error {
	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if info.Size() == 0 {
		s.snap = &fileSnapshot{Version: 1, Templates: map[string]*Record{}}
		return s.flushLocked()
	}
	var snap fileSnapshot
	if err := json.NewDecoder(s.file).Decode(&snap); err != nil {
		return fmt.Errorf("storage: decode %s: %w", s.file.Name(), err)
	}
	if snap.Templates == nil {
		snap.Templates = map[string]*Record{}
	}
	s.snap = &snap
	return nil
}

func (s *FileStore) flushLocked() error {
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	enc := json.NewEncoder(s.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snap); err != nil {
		return err
	}
	// truncate in case new content is shorter
	pos, _ := s.file.Seek(0, io.SeekCurrent)
	if err := s.file.Truncate(pos); err != nil {
		return err
	}
	return s.file.Sync()
}

func (s *FileStore) withWrite(ctx context.Context, fn func(*fileSnapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(s.snap); err != nil {
		return err
	}
	return s.flushLocked()
}

func (s *FileStore) withRead(fn func(*fileSnapshot)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.snap)
}

func (s *FileStore) Save(ctx context.Context, rec Record) (Record, error) {
	var saved Record
	err := s.withWrite(ctx, func(snap *fileSnapshot) error {
		out, err := prepare(rec, snap.Templates[rec.ID], s.now().UTC())
		if err != nil {
			return err
		}
		out.Template = out.Template.Clone()
		snap.Templates[out.ID] = &out
		saved = out
		return nil
	})
	return saved, err
}

func (s *FileStore) Load(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	var (
		out Record
		ok  bool
	)
	s.withRead(func(snap *fileSnapshot) {
		if rec, exists := snap.Templates[id]; exists {
			out = *rec
			out.Template = rec.Template.Clone()
			ok = true
		}
	})
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return out, nil
}

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Summary
	s.withRead(func(snap *fileSnapshot) {
		out = make([]Summary, 0, len(snap.Templates))
		for _, rec := range snap.Templates {
			out = append(out, summarize(*rec))
		}
	})
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	return s.withWrite(ctx, func(snap *fileSnapshot) error {
		if _, ok := snap.Templates[id]; !ok {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		delete(snap.Templates, id)
		return nil
	})
}
