package chat_test

import (
	"testing"

	"fjacquet/spendlens/cmd/chat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCommand_Metadata(t *testing.T) {
	assert.Equal(t, "chat [message...]", chat.Cmd.Use)
	assert.Contains(t, chat.Cmd.Short, "plain language")
	assert.Contains(t, chat.Cmd.Long, "Examples")
	assert.NotNil(t, chat.Cmd.RunE)
}

func TestChatCommand_Flags(t *testing.T) {
	ledger := chat.Cmd.Flags().Lookup("ledger")
	require.NotNil(t, ledger)
	assert.Equal(t, "l", ledger.Shorthand)

	budget := chat.Cmd.Flags().Lookup("budget")
	require.NotNil(t, budget)
	assert.Equal(t, "b", budget.Shorthand)
	assert.Equal(t, "0", budget.DefValue)
}

func TestChatCommand_Args(t *testing.T) {
	assert.Error(t, chat.Cmd.Args(chat.Cmd, nil))
	assert.NoError(t, chat.Cmd.Args(chat.Cmd, []string{"spent", "200"}))
}
