package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
//
// Each frame is written as one JSON object. Input lines are either a plain
// command ("back") or an object such as {"event":"login","payload":{"role":"admin"}}.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Output(ctx context.Context, frame Frame) error {
	return h.Encoder.Encode(frame)
}

type jsonCommand struct {
	Event   string         `json:"event"`
	Payload map[string]any `json:"payload"`
}

// Input reads one line and normalizes it to the text command syntax.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || strings.TrimSpace(text) == "") {
		return "", err
	}
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "{") {
		return SanitizeInput(text)
	}

	var cmd jsonCommand
	if err := json.Unmarshal([]byte(text), &cmd); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	keys := make([]string, 0, len(cmd.Payload))
	for k := range cmd.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{cmd.Event}
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, cmd.Payload[k]))
	}
	return SanitizeInput(strings.Join(parts, " "))
}

func (h *JSONHandler) SystemOutput(ctx context.Context, msg string) error {
	return h.Encoder.Encode(map[string]string{"system": msg})
}
