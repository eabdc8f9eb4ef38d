package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestResource(t *testing.T) {
	rec := httptest.NewRecorder()
	Resource(rec, http.StatusCreated, "Patient created successfully", "patient", map[string]string{"name": "P"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "Patient created successfully", body["message"])
	assert.Equal(t, map[string]interface{}{"name": "P"}, body["patient"])
}

func TestList(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, "reports", []string{"a", "b"})

	body := decode(t, rec)
	assert.EqualValues(t, 2, body["result"])
	assert.Len(t, body["reports"], 2)

	rec = httptest.NewRecorder()
	List[string](rec, "rays", nil)
	body = decode(t, rec)
	assert.EqualValues(t, 0, body["result"])
	assert.Equal(t, []interface{}{}, body["rays"])
}

func TestErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Conflict(rec, "", map[string]string{"phone": "phone already exists"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Conflict", body["message"])
	assert.Equal(t, map[string]interface{}{"phone": "phone already exists"}, body["errors"])

	rec = httptest.NewRecorder()
	NotFound(rec, "")
	body = decode(t, rec)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, body, "errors")
}
