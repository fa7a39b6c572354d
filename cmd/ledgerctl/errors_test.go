package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerctl/internal/core"
	applog "ledgerctl/internal/log"
	"ledgerctl/internal/storage"
)

func TestErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", fmt.Errorf("update: %w", core.ErrNotFound), applog.ErrorTypeNotFound},
		{"conflict", core.ErrAlreadyExists, applog.ErrorTypeConflict},
		{"read", fmt.Errorf("%w expense.json: %w", storage.ErrRead, errors.New("permission denied")), applog.ErrorTypeStorage},
		{"write", fmt.Errorf("%w: encode: %w", storage.ErrWrite, errors.New("disk full")), applog.ErrorTypeStorage},
		{"amount", fmt.Errorf("%w \"abc\"", core.ErrInvalidAmount), applog.ErrorTypeValidation},
		{"category", core.ErrInvalidCategory, applog.ErrorTypeValidation},
		{"other", errors.New("boom"), applog.ErrorTypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorType(tt.err))
		})
	}
}
