package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

// TextHandler implements the interactive text interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	Prompt   string

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithPrompt replaces the default "> " prompt.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		Prompt: "> ",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// initPump starts the reader goroutine, so Input can give up on ctx while a read is pending.
func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			return
		}
	}
}

// Output writes the view as markdown, through the renderer when one is set.
func (h *TextHandler) Output(ctx context.Context, frame Frame) error {
	output := FormatMarkdown(frame)
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimSpace(output))
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, h.Prompt)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}

// FormatMarkdown renders a frame as a short markdown document.
func FormatMarkdown(frame Frame) string {
	var b strings.Builder
	view := frame.View

	fmt.Fprintf(&b, "## %s\n\n", view.Screen)
	if view.Params.Language != "" {
		fmt.Fprintf(&b, "- language: `%s`\n", view.Params.Language)
	}
	if view.Params.IssueID != "" {
		fmt.Fprintf(&b, "- issue: `%s`\n", view.Params.IssueID)
	}
	if frame.State.IsLoggedIn {
		fmt.Fprintf(&b, "- signed in as `%s`\n", frame.State.UserRole)
	}
	if n := len(frame.State.NavigationHistory); n > 0 {
		fmt.Fprintf(&b, "- back: `%s` (%d)\n", frame.State.NavigationHistory[n-1], n)
	}

	b.WriteString("\n**Events:** ")
	b.WriteString(formatEvents(view.Events))
	b.WriteString("\n")
	return b.String()
}

func formatEvents(events []resolver.EventName) string {
	quoted := make([]string, len(events))
	for i, e := range events {
		quoted[i] = "`" + string(e) + "`"
	}
	return strings.Join(quoted, ", ")
}
