package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dbot/internal/command"
	"github.com/cory-johannsen/dbot/internal/config"
)

type recordingDispatcher struct {
	messages []command.Message
}

func (r *recordingDispatcher) Dispatch(_ context.Context, msg command.Message) (command.Reply, bool) {
	r.messages = append(r.messages, msg)
	if msg.Text == "!!" {
		return command.Reply{}, false
	}
	return command.Reply{Text: "**" + strings.TrimPrefix(msg.Text, "!") + "**"}, true
}

func newTestSession(d Dispatcher, in io.Reader, out io.Writer, color bool) *Session {
	return NewSession(d,
		config.BotConfig{Name: "dbot", Prefix: "!"},
		config.ConsoleConfig{Prompt: "> ", Color: color, Author: "console", Channel: "terminal"},
		in, out, zap.NewNop())
}

func TestSession_DispatchesLines(t *testing.T) {
	d := &recordingDispatcher{}
	var out bytes.Buffer
	s := newTestSession(d, strings.NewReader("!roll 1d20\n\nroll 2d6\n"), &out, false)

	require.NoError(t, s.Run(context.Background()))

	require.Len(t, d.messages, 2)
	assert.Equal(t, command.Message{Author: "console", Channel: "terminal", Text: "!roll 1d20"}, d.messages[0])
	assert.Equal(t, "!roll 2d6", d.messages[1].Text, "prefix is optional at the console")
	assert.True(t, strings.HasPrefix(out.String(), "dbot ready. Type !help for commands, quit to leave.\n> "))
	assert.Contains(t, out.String(), "**roll 1d20**\n")
}

func TestSession_RendersColor(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&recordingDispatcher{}, strings.NewReader("fortune\n"), &out, true)
	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), Bold+"fortune"+Reset+"\n")
	assert.True(t, strings.HasPrefix(out.String(), Cyan+"dbot"+Reset+" ready."), out.String())
}

func TestSession_QuitStopsReading(t *testing.T) {
	d := &recordingDispatcher{}
	var out bytes.Buffer
	s := newTestSession(d, strings.NewReader("roll\nQUIT\nroll\n"), &out, false)
	require.NoError(t, s.Run(context.Background()))
	assert.Len(t, d.messages, 1)
}

func TestSession_NotACommand(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&recordingDispatcher{}, strings.NewReader("!!\n"), &out, false)
	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "Commands look like !roll 1d20\n")
}

func TestSession_ContextCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	s := newTestSession(&recordingDispatcher{}, pr, &out, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancel")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestSession_ReadError(t *testing.T) {
	var out bytes.Buffer
	s := newTestSession(&recordingDispatcher{}, failingReader{}, &out, false)
	err := s.Run(context.Background())
	assert.ErrorContains(t, err, "tty gone")
}
