package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsInvalidEntityError(t *testing.T) {
	validation := domain.NewValidationError("title", "is required", domain.ErrTaskTitleEmpty)

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrInvalidEntity",
			err:      ErrInvalidEntity,
			expected: true,
		},
		{
			name:     "wrapped ErrInvalidEntity",
			err:      fmt.Errorf("failed to do something: %w", ErrInvalidEntity),
			expected: true,
		},
		{
			name:     "store error with kind",
			err:      NewStoreError("task", "create", "invalid task", ErrInvalidEntity, validation),
			expected: true,
		},
		{
			name:     "store error without kind",
			err:      NewStoreError("task", "create", "boom", nil, errors.New("x")),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvalidEntityError(tt.err); got != tt.expected {
				t.Errorf("IsInvalidEntityError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreErrorUnwrapsToCause(t *testing.T) {
	validation := domain.NewValidationError("title", "is required", domain.ErrTaskTitleEmpty)
	err := NewStoreError("task", "create", "invalid task", ErrInvalidEntity, validation)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)

	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)

	assert.Equal(t,
		"create operation on task failed: invalid task: validation failed: title is required",
		err.Error())
	assert.Equal(t,
		"delete operation on task failed: gone",
		NewStoreError("task", "delete", "gone", nil, nil).Error())
}
