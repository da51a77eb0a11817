package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Forbidden("nope"), http.StatusForbidden},
		{Invalid("bad page"), http.StatusBadRequest},
		{Unavailable("upstream down", errors.New("dial tcp")), http.StatusBadGateway},
		{errors.New("driver: bad connection"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestCodeOfSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("listing blocks: %w", NotFound("Block not found"))
	assert.Equal(t, CodeNotFound, CodeOf(err))

	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "page must be >= 1", Invalid("page must be >= %d", 1).Error())

	wrapped := Unavailable("stats fetch failed", errors.New("timeout"))
	assert.Contains(t, wrapped.Error(), "stats fetch failed")
	assert.Contains(t, wrapped.Error(), "timeout")
	assert.EqualError(t, errors.Unwrap(wrapped), "timeout")
}
