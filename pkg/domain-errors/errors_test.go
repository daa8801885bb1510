package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAndHasCode(t *testing.T) {
	inner := New(CodeLoginRequired, "user is not authenticated")
	outer := Wrap(inner, CodeInternal, "complete authentication")

	t.Run("Is checks the outermost code", func(t *testing.T) {
		assert.True(t, Is(outer, CodeInternal))
		assert.False(t, Is(outer, CodeLoginRequired))
	})

	t.Run("HasCode walks the chain", func(t *testing.T) {
		assert.True(t, HasCode(outer, CodeLoginRequired))
		assert.True(t, HasCode(fmt.Errorf("ctx: %w", outer), CodeInternal))
		assert.False(t, HasCode(outer, CodeConsentRequired))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		plain := errors.New("boom")
		assert.False(t, Is(plain, CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(plain))
	})
}

func TestWrapMessage(t *testing.T) {
	err := Wrap(errors.New("dial tcp"), CodeInternal, "load client")
	assert.Equal(t, "load client: dial tcp", err.Error())
	assert.ErrorContains(t, errors.Unwrap(err), "dial tcp")
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeInvalidRequest))
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(CodeInvalidClient))
	assert.Equal(t, http.StatusTooManyRequests, ToHTTPStatus(CodeRateLimited))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInternal))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(Code("unknown")))
}
