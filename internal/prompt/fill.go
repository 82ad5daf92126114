package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-checkedit/pkg/canvas"
	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/model"
	"github.com/goliatone/go-checkedit/pkg/templates"
)

var (
	errNotAmount = errors.New("enter a number such as 1,000.00")
	errNotDate   = errors.New("enter a date such as 2024-01-31")
)

// ChooseTemplate asks for one of the catalog's templates and returns its id.
func ChooseTemplate(ctx context.Context, d Driver, catalog *templates.Catalog) (string, error) {
	list := catalog.List()
	if len(list) == 0 {
		return "", templates.ErrNotFound
	}
	options := make([]string, len(list))
	for i, s := range list {
		options[i] = s.Name
		if s.NameLocal != "" {
			options[i] += " / " + s.NameLocal
		}
	}
	idx, err := d.Select(ctx, SelectConfig{Message: "Template", Options: options})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(list) {
		return "", fmt.Errorf("prompt: template choice %d out of range", idx)
	}
	return list[idx].ID, nil
}

// FillFields asks for the text of every field in order. Amount-in-words
// fields are skipped when an amount-in-figures field exists, since they are
// derived from it. Empty answers keep the current text.
func FillFields(ctx context.Context, d Driver, c *canvas.Controller) error {
	fields := c.Fields()
	derived := hasType(fields, model.FieldAmountNumber)
	for _, f := range fields {
		if derived && f.Type == model.FieldAmountText {
			continue
		}
		current, _ := c.Field(f.ID)
		answer, err := d.Input(ctx, InputConfig{
			Message:   label(f),
			Default:   current.Text,
			Help:      f.Placeholder,
			Validator: validatorFor(f.Type),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" || answer == current.Text {
			continue
		}
		if err := c.SetProperty(f.ID, "text", answer); err != nil {
			return fmt.Errorf("prompt: %s: %w", f.ID, err)
		}
	}
	return nil
}

func hasType(fields []model.FieldSnapshot, ft model.FieldType) bool {
	for _, f := range fields {
		if f.Type == ft {
			return true
		}
	}
	return false
}

func label(f model.FieldSnapshot) string {
	if f.ID == string(f.Type) {
		return f.ID
	}
	return fmt.Sprintf("%s (%s)", f.ID, f.Type)
}

func validatorFor(ft model.FieldType) func(string) error {
	switch ft {
	case model.FieldAmountNumber:
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			if _, ok := locale.ParseAmount(s); !ok {
				return errNotAmount
			}
			return nil
		}
	case model.FieldDate:
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			if _, ok := locale.ParseDate(s); !ok {
				return errNotDate
			}
			return nil
		}
	}
	return nil
}
