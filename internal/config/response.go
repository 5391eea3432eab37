package config

import (
	"encoding/json"
	"net/http"
)

// Result is the uniform envelope every mutation endpoint responds with.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func Success(w http.ResponseWriter, status int, data interface{}) {
	JSON(w, status, Result{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	JSON(w, status, Result{Success: true, Message: message, Data: data})
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Result{Success: false, Error: message})
}
