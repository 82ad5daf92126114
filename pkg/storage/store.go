package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-checkedit/pkg/model"
)

var (
	// ErrNotFound is returned when no template has the requested id.
	ErrNotFound = errors.New("storage: template not found")
	// ErrInvalidRecord is returned for records that cannot be saved.
	ErrInvalidRecord = errors.New("storage: invalid record")
)

// Record is a stored template.
type Record struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Template model.TemplateConfig `json:"template"`
	Created  time.Time            `json:"created"`
	Updated  time.Time            `json:"updated"`
}

// Summary is the listing view of a Record.
type Summary struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

// Store persists records. Save assigns an id when the record has none and
// keeps Created when overwriting.
type Store interface {
	Save(ctx context.Context, rec Record) (Record, error)
	Load(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a fresh record id.
func NewID() string { return uuid.NewString() }

// prepare fills id, name and timestamps. prev is the stored record being
// replaced, if any.
func prepare(rec Record, prev *Record, now time.Time) (Record, error) {
	if rec.ID == "" {
		rec.ID = NewID()
	}
	if rec.Name == "" {
		rec.Name = rec.Template.Name
	}
	if rec.Name == "" {
		return Record{}, fmt.Errorf("%w: name is required", ErrInvalidRecord)
	}
	now = now.Truncate(time.Millisecond)
	rec.Created = now
	if prev != nil {
		rec.Created = prev.Created
	}
	rec.Updated = now
	return rec, nil
}

func summarize(rec Record) Summary {
	return Summary{ID: rec.ID, Name: rec.Name, Created: rec.Created}
}

// sortSummaries orders newest first, then by id.
func sortSummaries(list []Summary) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Created.Equal(list[j].Created) {
			return list[i].Created.After(list[j].Created)
		}
		return list[i].ID < list[j].ID
	})
}
