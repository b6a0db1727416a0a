package curio_test

import (
	"errors"
	"testing"

	"github.com/ayumu-h/curio"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := curio.Errorf(curio.ENOTFOUND, "cabinet %q not found", "manga")

	assert.Equal(t, curio.ENOTFOUND, curio.ErrorCode(err))
	assert.Equal(t, "cabinet \"manga\" not found", curio.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, curio.ErrorCode(nil))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, curio.EINTERNAL, curio.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, curio.ErrorMessage(nil))
}
