package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tiles-api/internal/domain"
)

func TestStorageError_IsErrStorageYCausa(t *testing.T) {
	err := domain.NewStorageError("commit transaction", context.DeadlineExceeded)

	assert.True(t, errors.Is(err, domain.ErrStorage))
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "la causa debe seguir siendo accesible")
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "commit transaction: context deadline exceeded", err.Error())

	var se *domain.StorageError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "commit transaction", se.Op)
}

func TestNewStorageError_Nil(t *testing.T) {
	assert.NoError(t, domain.NewStorageError("op", nil))
}
