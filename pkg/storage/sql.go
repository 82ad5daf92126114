package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TemplateTypeCustom marks templates created by users.
const TemplateTypeCustom = "custom"

// templateRow is the persisted shape of a Record. The layout itself is kept
// as JSON text so the schema does not need a JSON column type.
type templateRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"not null;size:150"`
	Type      string    `gorm:"not null;size:50;default:custom"`
	Data      string    `gorm:"type:longtext"`
	UserID    string    `gorm:"size:64;index"`
	IsPublic  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (templateRow) TableName() string { return "check_templates" }

// SQLStore keeps records in a relational table through gorm.
type SQLStore struct {
	db     *gorm.DB
	userID string
	now    func() time.Time
}

var _ Store = (*SQLStore)(nil)

// SQLOption customises a SQLStore.
type SQLOption func(*SQLStore)

// WithUserID scopes every query to one owner.
func WithUserID(id string) SQLOption {
	return func(s *SQLStore) {
		s.userID = id
	}
}

// Dialector picks the gorm driver for a driver name: "sqlite" or "mysql".
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return sqlite.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("storage: unknown sql driver %q", driver)
}

// OpenSQL connects, migrates the templates table and returns the store.
func OpenSQL(driver, dsn string, opts ...SQLOption) (*SQLStore, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	return NewSQL(db, opts...)
}

// NewSQL wraps an existing connection and migrates the templates table.
func NewSQL(db *gorm.DB, opts ...SQLOption) (*SQLStore, error) {
	if err := db.AutoMigrate(&templateRow{}); err != nil {
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	s := &SQLStore{db: db, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) scoped(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&templateRow{})
	if s.userID != "" {
		q = q.Where("user_id = ?", s.userID)
	}
	return q
}

func (s *SQLStore) find(ctx context.Context, id string) (*templateRow, error) {
	var row templateRow
	err := s.scoped(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: load %q: %w", id, err)
	}
	return &row, nil
}

func (s *SQLStore) Save(ctx context.Context, rec Record) (Record, error) {
	var saved Record
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		scoped := &SQLStore{db: tx, userID: s.userID, now: s.now}
		existing, err := scoped.find(ctx, rec.ID)
		if err != nil {
			return err
		}
		var prev *Record
		if existing != nil {
			p, err := existing.record()
			if err != nil {
				return err
			}
			prev = &p
		}
		out, err := prepare(rec, prev, s.now().UTC())
		if err != nil {
			return err
		}
		data, err := json.Marshal(out.Template)
		if err != nil {
			return fmt.Errorf("storage: encode template: %w", err)
		}
		row := templateRow{
			ID:        out.ID,
			Name:      out.Name,
			Type:      TemplateTypeCustom,
			Data:      string(data),
			UserID:    s.userID,
			CreatedAt: out.Created,
			UpdatedAt: out.Updated,
		}
		write := tx.Create
		if existing != nil {
			write = tx.Save
		}
		if err := write(&row).Error; err != nil {
			return fmt.Errorf("storage: save %q: %w", out.ID, err)
		}
		saved = out
		return nil
	})
	return saved, err
}

func (s *SQLStore) Load(ctx context.Context, id string) (Record, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if row == nil {
		return Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return row.record()
}

func (s *SQLStore) List(ctx context.Context) ([]Summary, error) {
	var rows []templateRow
	if err := s.scoped(ctx).Select("id", "name", "created_at").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, Summary{ID: row.ID, Name: row.Name, Created: row.CreatedAt.UTC()})
	}
	sortSummaries(out)
	return out, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res := s.scoped(ctx).Where("id = ?", id).Delete(&templateRow{})
	if res.Error != nil {
		return fmt.Errorf("storage: delete %q: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}

func (r templateRow) record() (Record, error) {
	rec := Record{ID: r.ID, Name: r.Name, Created: r.CreatedAt.UTC(), Updated: r.UpdatedAt.UTC()}
	if err := json.Unmarshal([]byte(r.Data), &rec.Template); err != nil {
		return Record{}, fmt.Errorf("storage: decode %q: %w", r.ID, err)
	}
	return rec, nil
}
