package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/dbot/internal/command"
	"github.com/cory-johannsen/dbot/internal/config"
)

// Dispatcher routes chat messages to commands. *command.Dispatcher satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg command.Message) (command.Reply, bool)
}

// Session is one interactive console conversation with the bot.
type Session struct {
	dispatcher Dispatcher
	cfg        config.ConsoleConfig
	prefix     string
	name       string
	in         io.Reader
	out        io.Writer
	logger     *zap.Logger
}

// NewSession creates a Session reading commands from in and writing replies to out.
//
// Precondition: dispatcher, in, out and logger must be non-nil; prefix must be non-empty.
func NewSession(dispatcher Dispatcher, bot config.BotConfig, cfg config.ConsoleConfig, in io.Reader, out io.Writer, logger *zap.Logger) *Session {
	return &Session{
		dispatcher: dispatcher,
		cfg:        cfg,
		prefix:     bot.Prefix,
		name:       bot.Name,
		in:         in,
		out:        out,
		logger:     logger,
	}
}

// Run reads lines until EOF, "quit"/"exit", or ctx is cancelled. Lines
// without the command prefix are treated as if they had it.
//
// Postcondition: Returns nil on EOF, quit or cancellation; otherwise the
// read or write error.
func (s *Session) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	name := s.name
	if s.cfg.Color {
		name = Colorize(Cyan, name)
	}
	if err := s.write(fmt.Sprintf("%s ready. Type %shelp for commands, quit to leave.\n", name, s.prefix)); err != nil {
		return err
	}
	s.logger.Info("console session started", zap.String("author", s.cfg.Author))

	for {
		if err := s.write(s.cfg.Prompt); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			s.logger.Info("console session cancelled")
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("reading console input: %w", err)
			}
			s.logger.Info("console session ended")
			return nil
		case line := <-lines:
			line = strings.TrimSpace(line)
			switch strings.ToLower(line) {
			case "":
				continue
			case "quit", "exit":
				s.logger.Info("console session ended")
				return nil
			}
			if err := s.handle(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, s.prefix) {
		line = s.prefix + line
	}
	reply, ok := s.dispatcher.Dispatch(ctx, command.Message{
		Author:  s.cfg.Author,
		Channel: s.cfg.Channel,
		Text:    line,
	})
	if !ok {
		return s.write(fmt.Sprintf("Commands look like %sroll 1d20\n", s.prefix))
	}
	return s.write(Render(reply.Text, s.cfg.Color) + "\n")
}

func (s *Session) write(text string) error {
	if _, err := io.WriteString(s.out, text); err != nil {
		return fmt.Errorf("writing console output: %w", err)
	}
	return nil
}
