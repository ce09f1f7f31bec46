package runner

import (
	"errors"
	"testing"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/nagarniyantran/civicnav/pkg/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("Navigate SCREEN=report issue_id=NM2024009")
	require.NoError(t, err)
	assert.Equal(t, "navigate", cmd.Name)
	assert.False(t, cmd.Builtin())

	event, payload, err := cmd.Event()
	require.NoError(t, err)
	assert.Equal(t, resolver.EventNavigate, event)
	assert.Equal(t, resolver.Payload{Screen: domain.ScreenReport, IssueID: "NM2024009"}, payload)
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand("   ")
	assert.True(t, errors.Is(err, ErrEmptyCommand))

	_, err = ParseCommand("login admin")
	assert.ErrorIs(t, err, ErrInvalidCommand)

	_, err = ParseCommand("login =admin")
	assert.ErrorIs(t, err, ErrInvalidCommand)
}

func TestCommand_Builtin(t *testing.T) {
	for _, name := range []string{"help", "state", "exit", "QUIT"} {
		cmd, err := ParseCommand(name)
		require.NoError(t, err)
		assert.True(t, cmd.Builtin(), name)
	}
}
