package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := MissingEnrichment("villager", "bob")
	assert.True(t, Is(err, ErrMissingEnrichment))
	assert.False(t, Is(err, ErrWrite))
}

func TestError_WrappingPreservesCode(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Configuration("create index catalog-1").WithCause(cause)

	assert.True(t, Is(err, ErrConfiguration))
	assert.ErrorContains(t, err, "create index catalog-1")
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, cause, Unwrap(err))
}

func TestError_IsThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("populate villagers: %w", MissingEnrichment("villager", "rosie"))
	assert.True(t, Is(err, ErrMissingEnrichment))

	var domainErr *Error
	require.True(t, As(err, &domainErr))
	assert.Equal(t, CodeMissingEnrichment, domainErr.Code)
}

func TestMissingEnrichment_CarriesKindAndID(t *testing.T) {
	err := MissingEnrichment("item", "mug")

	details, ok := err.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "item", details["kind"])
	assert.Equal(t, "mug", details["id"])
	assert.ErrorContains(t, err, "item")
	assert.ErrorContains(t, err, "mug")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("nope").HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, Validation("bad").HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Write("boom").HTTPStatus())
}
