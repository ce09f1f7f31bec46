package runner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nagarniyantran/civicnav/pkg/resolver"
)

var (
	// ErrEmptyCommand is returned by ParseCommand for blank lines.
	ErrEmptyCommand = errors.New("empty command")
	// ErrInvalidCommand marks input that could not be parsed. The loop reports it and keeps going.
	ErrInvalidCommand = errors.New("invalid command")
)

// Built-in commands handled by the loop.
const (
	CommandHelp  = "help"
	CommandState = "state"
	CommandExit  = "exit"
	CommandQuit  = "quit"
)

// Command is one parsed input line.
type Command struct {
	Name string
	Args map[string]any
}

// ParseCommand splits "name key=value ..." into a Command.
// Values are sanitized as identifiers.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}

	cmd := Command{Name: strings.ToLower(fields[0]), Args: map[string]any{}}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			return Command{}, fmt.Errorf("%w: malformed argument %q, want key=value", ErrInvalidCommand, field)
		}
		clean, err := SanitizeIdentifier(value)
		if err != nil {
			return Command{}, fmt.Errorf("%w: argument %s: %v", ErrInvalidCommand, key, err)
		}
		cmd.Args[strings.ToLower(key)] = clean
	}
	return cmd, nil
}

// Builtin reports whether the command is handled by the loop rather than the view.
func (c Command) Builtin() bool {
	switch c.Name {
	case CommandHelp, CommandState, CommandExit, CommandQuit:
		return true
	}
	return false
}

// Event returns the command as a view event and its decoded payload.
func (c Command) Event() (resolver.EventName, resolver.Payload, error) {
	p, err := resolver.DecodePayload(c.Args)
	if err != nil {
		return "", resolver.Payload{}, err
	}
	return resolver.EventName(c.Name), p, nil
}
