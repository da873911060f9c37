package apperrors

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("catalog", "schema mismatch")
	assert.Equal(t, "validation failed: catalog: schema mismatch", err.Error())

	err = NewValidationError("catalog", "schema mismatch", "a", "b")
	assert.Equal(t, "validation failed: catalog: schema mismatch (2 issues)", err.Error())
}

func TestCatalogError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCatalogError("https://example.com/plugins.json", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("remove", "World Forge", fs.ErrPermission)

	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, "remove World Forge: permission denied", err.Error())

	var opErr *OperationError
	assert.ErrorAs(t, error(err), &opErr)
	assert.Equal(t, "remove", opErr.Operation)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("plugin_dir", "not a directory", nil)
	assert.Equal(t, "configuration error (plugin_dir): not a directory", err.Error())

	cause := errors.New("boom")
	err = NewConfigurationError("plugin_dir", "cannot create", cause)
	assert.ErrorIs(t, err, cause)
}
