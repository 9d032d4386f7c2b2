// Package notify delivers toast notifications (lesson completed, quiz scored,
// badge earned) to one or more output channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// DefaultDismissAfter is how long a toast stays visible.
const DefaultDismissAfter = 5 * time.Second

// Toast is a short notification shown after a gamification change.
type Toast struct {
	Title       string
	Description string
	XP          int // shown as "+N XP" when positive
}

// Channel is implemented by every toast sink.
type Channel interface {
	Show(ctx context.Context, t Toast) error
	Dismiss(ctx context.Context, t Toast) error
}

// GatewayConfig holds gateway options.
type GatewayConfig struct {
	// DismissAfter is the auto-dismiss delay (default 5s). Negative disables it.
	DismissAfter time.Duration
}

// Gateway fans toasts out to the registered channels.
type Gateway struct {
	channels     map[string]Channel
	dismissAfter time.Duration
	timers       map[*time.Timer]struct{}
	closed       bool
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

// NewGateway creates a gateway with no channels.
func NewGateway(cfg GatewayConfig) *Gateway {
	after := cfg.DismissAfter
	if after == 0 {
		after = DefaultDismissAfter
	}
	return &Gateway{
		channels:     make(map[string]Channel),
		dismissAfter: after,
		timers:       make(map[*time.Timer]struct{}),
	}
}

// Register adds a channel under name, replacing any previous one.
func (g *Gateway) Register(name string, ch Channel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.channels[name] = ch
	slog.Debug("notify channel registered", "channel", name)
}

// HasChannel reports whether name is registered.
func (g *Gateway) HasChannel(name string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.channels[name]
	return ok
}

// Send shows the toast on a single channel.
func (g *Gateway) Send(ctx context.Context, channel string, t Toast) error {
	g.mu.RLock()
	ch, ok := g.channels[channel]
	g.mu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown channel: %s", channel)
	}
	if err := ch.Show(ctx, t); err != nil {
		return fmt.Errorf("show on %s: %w", channel, err)
	}
	g.scheduleDismiss(channel, ch, t)
	return nil
}

// Notify shows the toast on every channel in name order. Failures are joined;
// one failing channel does not stop the others.
func (g *Gateway) Notify(ctx context.Context, t Toast) error {
	g.mu.RLock()
	names := make([]string, 0, len(g.channels))
	for name := range g.channels {
		names = append(names, name)
	}
	g.mu.RUnlock()
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if err := g.Send(ctx, name, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (g *Gateway) scheduleDismiss(name string, ch Channel, t Toast) {
	if g.dismissAfter < 0 {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}

	g.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(g.dismissAfter, func() {
		defer g.wg.Done()
		g.mu.Lock()
		delete(g.timers, timer)
		g.mu.Unlock()
		if err := ch.Dismiss(context.Background(), t); err != nil {
			slog.Warn("failed to dismiss toast", "channel", name, "error", err)
		}
	})
	g.timers[timer] = struct{}{}
}

// Pending returns the number of toasts still waiting to be dismissed.
func (g *Gateway) Pending() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.timers)
}

// Close cancels pending dismissals and waits for running ones to finish.
// Toasts sent after Close are shown but never dismissed.
func (g *Gateway) Close() error {
	g.mu.Lock()
	g.closed = true
	for timer := range g.timers {
		if timer.Stop() {
			g.wg.Done()
		}
		delete(g.timers, timer)
	}
	g.mu.Unlock()

	g.wg.Wait()
	return nil
}
