package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const maxDescriptionLen = 200

type (
	// Expense is a single recorded spend.
	Expense struct {
		ID          int64     `json:"id"`
		Description string    `json:"description"`
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Date        time.Time `json:"date"`
	}

	// Budget is the spending ceiling for one calendar month.
	Budget struct {
		Month  Month `json:"month"`
		Amount Money `json:"amount"`
	}

	// ExpensePatch carries the fields of an update. Nil fields are left untouched.
	ExpensePatch struct {
		Description *string
		Amount      *Money
		Category    *Category
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNoData             = errors.New("no data")
)

// ValidateDescription trims raw and checks it is usable as an expense description.
func ValidateDescription(raw string) (string, error) {
	desc := strings.TrimSpace(raw)
	if desc == "" {
		return "", ErrEmptyDescription
	}
	if len(desc) > maxDescriptionLen {
		return "", ErrDescriptionTooLong
	}
	return desc, nil
}

func (e Expense) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("invalid expense id %d", e.ID)
	}
	if _, err := ValidateDescription(e.Description); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCategory, e.Category)
	}
	if e.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

func (b Budget) Validate() error {
	if !b.Month.Valid() {
		return ErrInvalidMonth
	}
	return b.Amount.Validate()
}

// IsEmpty reports whether the patch changes nothing.
func (p ExpensePatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Category == nil
}

// Apply returns e with the supplied fields overwritten. ID and Date are never touched.
func (p ExpensePatch) Apply(e Expense) Expense {
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Amount != nil {
		e.Amount = *p.Amount
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	return e
}
