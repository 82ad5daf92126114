package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-checkedit/pkg/canvas"
)

// DefaultMaxBatch caps the rows accepted by Batch.
const DefaultMaxBatch = 50

var (
	// ErrEmptyBatch is returned when there are no rows to print.
	ErrEmptyBatch = errors.New("export: batch has no rows")
	// ErrBatchTooLarge is returned when the rows exceed the batch limit.
	ErrBatchTooLarge = errors.New("export: batch too large")
)

// BatchOptions tunes Batch.
type BatchOptions struct {
	MaxRows int
	Layout  PageLayout
	Logger  logrus.FieldLogger
	// Progress, when set, is called after each page.
	Progress func(done, total int)
}

// BatchResult is the outcome of a batch run.
type BatchResult struct {
	PDF   []byte
	Pages int
}

// Batch fills the loaded layout once per row and collects every rendering
// into one PDF, a check per page. Fields a row does not mention keep the
// text they had, except dates, which default to today.
func Batch(ctx context.Context, c *canvas.Controller, rows []map[string]any, opts BatchOptions) (BatchResult, error) {
	if c == nil {
		return BatchResult{}, fmt.Errorf("export: controller is required")
	}
	if len(rows) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	max := opts.MaxRows
	if max <= 0 {
		max = DefaultMaxBatch
	}
	if len(rows) > max {
		return BatchResult{}, fmt.Errorf("%w: %d rows, limit %d", ErrBatchTooLarge, len(rows), max)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	doc := NewDocument(opts.Layout)
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return BatchResult{}, err
		}
		written, err := c.PopulateRow(row)
		if err != nil {
			return BatchResult{}, fmt.Errorf("export: row %d: %w", i+1, err)
		}
		img, err := c.ExportAsImage(ctx, "png")
		if err != nil {
			return BatchResult{}, fmt.Errorf("export: row %d: %w", i+1, err)
		}
		if err := doc.AddPage(img); err != nil {
			return BatchResult{}, err
		}
		logger.WithFields(logrus.Fields{"row": i + 1, "fields": len(written)}).Debug("batch page rendered")
		if opts.Progress != nil {
			opts.Progress(i+1, len(rows))
		}
	}

	data, err := doc.Bytes()
	if err != nil {
		return BatchResult{}, err
	}
	logger.WithField("pages", doc.Pages()).Info("batch complete")
	return BatchResult{PDF: data, Pages: doc.Pages()}, nil
}
