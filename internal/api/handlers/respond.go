// Package handlers общие помощники HTTP слоя
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const maxBodyBytes = 1 << 20 // 1 MB

// ErrorResponse единый формат тела ошибки
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса с ограничением размера и запретом
// неизвестных полей
func DecodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	// Запрещаем мусор после JSON объекта
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	// Ошибку записи уже некому возвращать - соединение закрыто клиентом
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет стандартизированный ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest пишет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound пишет 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondUnauthorized пишет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden пишет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondConflict пишет 409 Conflict
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError пишет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "internal server error")
}
