package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_TabSnapshot(t *testing.T) {
	doc := `[
		{"id": 1, "windowId": 1, "title": "GitHub", "url": "https://github.com", "active": true},
		{"id": "2", "title": "Docs"}
	]`

	assert.NoError(t, Validate(TabSnapshot, []byte(doc)))
}

func TestValidate_TabSnapshot_MissingID(t *testing.T) {
	err := Validate(TabSnapshot, []byte(`[{"title": "no id"}]`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidate_TabSnapshot_WrongType(t *testing.T) {
	err := Validate(TabSnapshot, []byte(`[{"id": 1, "active": "yes"}]`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Error(), "active")
}

func TestValidate_RankingResponse(t *testing.T) {
	assert.NoError(t, Validate(RankingResponse, []byte(`[]`)))
	assert.NoError(t, Validate(RankingResponse, []byte(`[{"index": 0, "confidence": 90, "reason": "title"}]`)))

	// Non-object entries are tolerated here and dropped later
	assert.NoError(t, Validate(RankingResponse, []byte(`[5, "x"]`)))
}

func TestValidate_RankingResponse_NotArray(t *testing.T) {
	err := Validate(RankingResponse, []byte(`{"results": []}`))

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(RankingResponse, []byte(`[{"index": }`))

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`[]`))

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "unknown schema")
}
