package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/askbot"
	bt "github.com/fwojciec/askbot/bubbletea"
	"github.com/fwojciec/askbot/mock"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, d askbot.Dispatcher) bt.Model {
	t.Helper()
	return initModelWithSize(t, d, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, d askbot.Dispatcher, width, height int) bt.Model {
	t.Helper()
	m := bt.New(d, bt.NewChannel(""), askbot.DefaultTheme())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopDispatcher accepts every line.
func nopDispatcher() *mock.Dispatcher {
	return &mock.Dispatcher{
		DispatchFn: func(context.Context, askbot.Invocation) error { return nil },
	}
}

// ref builds a console message ref.
func ref(id string) askbot.MessageRef {
	return askbot.MessageRef{ChannelID: bt.DefaultChannelID, ID: id}
}
