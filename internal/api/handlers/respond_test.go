package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	var p payload
	require.NoError(t, DecodeJSON(req, &p))
	assert.Equal(t, "ok", p.Name)

	// Неизвестные поля запрещены
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","extra":1}`))
	assert.Error(t, DecodeJSON(req, &payload{}))

	// Мусор после объекта запрещён
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}{"name":"dup"}`))
	assert.Error(t, DecodeJSON(req, &payload{}))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondNotFound(rec, "бронирование не найдено")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "бронирование не найдено", body.Message)
}

func TestRespondJSONNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}
