package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(summary string, err error) {
	s.WriteEvent("error", errorBody{Error: summary, Details: err.Error()}) //nolint:errcheck
}

// CompleteEvent is the final event of a stream. PDF is base64 encoded by
// encoding/json.
type CompleteEvent struct {
	RequestID       string `json:"request_id"`
	Filename        string `json:"filename"`
	Pages           int    `json:"pages"`
	UsedPlaceholder bool   `json:"used_placeholder"`
	PDF             []byte `json:"pdf"`
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(event CompleteEvent) {
	s.WriteEvent("complete", event) //nolint:errcheck
}
