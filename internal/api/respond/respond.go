// Package respond writes JSON:API-shaped envelopes: {"data": ...} for
// success, {"errors":[{"title": ...}]} for failures.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Resource is a typed JSON:API resource object.
type Resource struct {
	Type          string      `json:"type"`
	ID            string      `json:"id,omitempty"`
	Attributes    interface{} `json:"attributes"`
	Relationships interface{} `json:"relationships,omitempty"`
}

type errorObject struct {
	Title string `json:"title"`
}

type errorDoc struct {
	Errors []errorObject `json:"errors"`
}

// WriteData writes a {"data": ...} document with the given status code.
func WriteData(w http.ResponseWriter, statusCode int, data interface{}) {
	writeDoc(w, statusCode, map[string]interface{}{"data": data})
}

// WriteDataMeta writes a {"data": ..., "meta": ...} document.
func WriteDataMeta(w http.ResponseWriter, statusCode int, data, meta interface{}) {
	writeDoc(w, statusCode, map[string]interface{}{"data": data, "meta": meta})
}

// WriteError writes an errors document with a single title.
func WriteError(w http.ResponseWriter, statusCode int, title string) {
	writeDoc(w, statusCode, errorDoc{Errors: []errorObject{{Title: title}}})
}

// WriteBadRequest writes a 400 Bad Request response
func WriteBadRequest(w http.ResponseWriter, title string) {
	WriteError(w, http.StatusBadRequest, title)
}

// WriteUnauthorized writes a 401 Unauthorized response
func WriteUnauthorized(w http.ResponseWriter, title string) {
	WriteError(w, http.StatusUnauthorized, title)
}

// WriteNotFound writes a 404 Not Found response
func WriteNotFound(w http.ResponseWriter, title string) {
	WriteError(w, http.StatusNotFound, title)
}

// WriteInternalError writes a 500 Internal Server Error response
func WriteInternalError(w http.ResponseWriter, title string) {
	WriteError(w, http.StatusInternalServerError, title)
}

func writeDoc(w http.ResponseWriter, statusCode int, doc interface{}) {
	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
