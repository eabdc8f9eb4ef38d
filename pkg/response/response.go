package response

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every 4xx and 5xx answer.
type ErrorResponse struct {
	Message string      `json:"message"`
	Errors  interface{} `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Message writes {"message": message}.
func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]interface{}{"message": message})
}

// Resource writes {"message": message, key: value}.
func Resource(w http.ResponseWriter, statusCode int, message, key string, value interface{}) {
	JSON(w, statusCode, map[string]interface{}{
		"message": message,
		key:       value,
	})
}

// List writes {"result": len(items), key: items}.
func List[T any](w http.ResponseWriter, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"result": len(items),
		key:      items,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, errors interface{}) {
	JSON(w, statusCode, ErrorResponse{
		Message: message,
		Errors:  errors,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	Error(w, http.StatusBadRequest, "Validation failed", errors)
}

func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Bad request"
	}
	Error(w, http.StatusBadRequest, message, nil)
}

func Conflict(w http.ResponseWriter, message string, errors interface{}) {
	if message == "" {
		message = "Conflict"
	}
	Error(w, http.StatusConflict, message, errors)
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func TooManyRequests(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Too many requests"
	}
	Error(w, http.StatusTooManyRequests, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, nil)
}
