// internal/pkg/httpx/respond.go
package httpx

import (
	"encoding/json"
	"net/http"
)

// errorBody 是统一的错误响应信封。
type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// WriteJSON 以给定状态码写出 JSON 响应体。
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError 写出统一信封的错误响应。
// code 是机器可读的错误码（NOT_FOUND / CONFLICT / VALIDATION_ERROR ...）。
func WriteError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Message = message
	body.Error.Code = code
	WriteJSON(w, status, body)
}
