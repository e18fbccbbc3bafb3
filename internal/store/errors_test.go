package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/verbos-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsNotFoundError(store.ErrNotFound))
	assert.True(t, store.IsNotFoundError(store.ErrVerbNotFound))
	assert.True(t, store.IsNotFoundError(fmt.Errorf("wrapped: %w", store.ErrVerbNotFound)))
	assert.False(t, store.IsNotFoundError(store.ErrVerbExists))
	assert.False(t, store.IsNotFoundError(nil))
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsDuplicateError(store.ErrVerbExists))
	assert.True(t, store.IsDuplicateError(fmt.Errorf("wrapped: %w", store.ErrDuplicate)))
	assert.False(t, store.IsDuplicateError(store.ErrVerbNotFound))
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	t.Run("without wrapped error", func(t *testing.T) {
		t.Parallel()
		err := store.NewStoreError("verb", "create", "boom", nil)
		assert.Equal(t, "create operation on verb failed: boom", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		t.Parallel()
		err := store.NewStoreError("verb", "update", "hablar", store.ErrVerbNotFound)
		assert.Equal(t, "update operation on verb failed: hablar: entity not found: verb", err.Error())
		assert.ErrorIs(t, err, store.ErrVerbNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)

		var storeErr *store.StoreError
		assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &storeErr))
		assert.Equal(t, "update", storeErr.Operation)
	})
}
