package command

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Message is one incoming chat line.
type Message struct {
	Author  string
	Channel string
	Text    string
}

// Reply is the dispatcher's answer to a Message.
type Reply struct {
	// RequestID correlates the reply with its log lines.
	RequestID string
	// Command is the canonical name of the command that ran, empty when none did.
	Command string
	Text    string
}

// Cooldown limits how often one author may issue commands.
type Cooldown struct {
	// Interval is the average time between commands. Zero disables the cooldown.
	Interval time.Duration
	// Burst is the number of commands allowed back to back.
	Burst int
}

// Dispatcher routes prefixed chat lines to registered commands.
type Dispatcher struct {
	registry *Registry
	prefix   string
	cooldown Cooldown
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter // author → limiter
}

// NewDispatcher creates a Dispatcher.
//
// Precondition: registry and logger must be non-nil; prefix must be non-empty;
// cooldown.Burst >= 1 when cooldown.Interval > 0.
func NewDispatcher(registry *Registry, prefix string, cooldown Cooldown, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		prefix:   prefix,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Dispatch runs the command named by msg.Text.
//
// Postcondition: Returns ok == false when msg is not a command for this bot;
// otherwise Reply.Text is non-empty.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (Reply, bool) {
	parsed, ok := Parse(msg.Text, d.prefix)
	if !ok {
		return Reply{}, false
	}

	reply := Reply{RequestID: uuid.New().String()}
	log := d.logger.With(
		zap.String("request_id", reply.RequestID),
		zap.String("author", msg.Author),
		zap.String("channel", msg.Channel),
		zap.String("command", parsed.Command),
	)

	cmd, found := d.registry.Resolve(parsed.Command)
	if !found {
		log.Debug("unknown command")
		reply.Text = notFound(parsed.Command)
		return reply, true
	}
	reply.Command = cmd.Name

	if wait := d.reserve(msg.Author); wait > 0 {
		log.Info("command on cooldown", zap.Duration("retry_after", wait))
		reply.Text = cooldownText(wait)
		return reply, true
	}

	log.Info("command invoked", zap.String("args", parsed.RawArgs))
	start := d.now()
	text, err := cmd.Run(ctx, Request{Message: msg, Name: parsed.Command, Args: parsed.RawArgs})
	if err != nil {
		log.Error("command failed", zap.Error(err))
		reply.Text = "Something went wrong running " + d.prefix + cmd.Name + "."
		return reply, true
	}
	log.Debug("command completed", zap.Duration("elapsed", d.now().Sub(start)))
	reply.Text = text
	return reply, true
}

// reserve takes one token from author's limiter and returns zero, or returns
// how long the author must wait without taking a token.
func (d *Dispatcher) reserve(author string) time.Duration {
	if d.cooldown.Interval <= 0 {
		return 0
	}

	d.mu.Lock()
	lim, ok := d.limiters[author]
	if !ok {
		lim = rate.NewLimiter(rate.Every(d.cooldown.Interval), d.cooldown.Burst)
		d.limiters[author] = lim
	}
	d.mu.Unlock()

	now := d.now()
	r := lim.ReserveN(now, 1)
	if !r.OK() {
		return d.cooldown.Interval
	}
	wait := r.DelayFrom(now)
	if wait > 0 {
		r.CancelAt(now)
	}
	return wait
}

func cooldownText(wait time.Duration) string {
	secs := int(math.Ceil(wait.Seconds()))
	return fmt.Sprintf("This command is on cooldown. Please wait %ds", secs)
}
