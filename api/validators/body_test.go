package validators

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

type samplePayload struct {
	Name     string  `json:"name" validate:"required"`
	Quantity int     `json:"quantity" validate:"min=0"`
	Note     *string `json:"note"`
}

func decodeRequest(t *testing.T, body string, dest any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return DecodeJSONBody(req, dest)
}

func TestDecodeJSONBody(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":"Ledger Paper","quantity":3}`, &payload)
	require.NoError(t, err)
	assert.Equal(t, "Ledger Paper", payload.Name)
	assert.Equal(t, 3, payload.Quantity)
	assert.Nil(t, payload.Note)
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":`, &payload)
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"name":"x","warehouse":"central"}`, &payload)
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestDecodeJSONBodyFieldMessages(t *testing.T) {
	var payload samplePayload
	err := decodeRequest(t, `{"quantity":-1}`, &payload)
	require.Error(t, err)

	coded := pkgerrors.As(err)
	require.NotNil(t, coded)

	details, ok := coded.Details().(map[string]string)
	require.True(t, ok, "details should be a field message map")
	assert.Equal(t, "is required", details["name"])
	assert.Contains(t, details["quantity"], "must be at least")
}
