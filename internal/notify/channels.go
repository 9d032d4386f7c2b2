package notify

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ConsoleChannel prints toasts as single lines to a writer.
type ConsoleChannel struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsoleChannel writes to w.
func NewConsoleChannel(w io.Writer) *ConsoleChannel {
	return &ConsoleChannel{w: w}
}

func (c *ConsoleChannel) Show(_ context.Context, t Toast) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(c.w, Format(t))
	return err
}

// Dismiss is a no-op; printed lines stay in the scrollback.
func (c *ConsoleChannel) Dismiss(_ context.Context, _ Toast) error {
	return nil
}

// Format renders a toast as "* Title: Description (+N XP)".
func Format(t Toast) string {
	var b strings.Builder
	b.WriteString("* ")
	b.WriteString(t.Title)
	if t.Description != "" {
		b.WriteString(": ")
		b.WriteString(t.Description)
	}
	if t.XP > 0 {
		fmt.Fprintf(&b, " (+%d XP)", t.XP)
	}
	return b.String()
}

// MockChannel is a test double for Channel.
type MockChannel struct {
	Err error

	mu        sync.Mutex
	shown     []Toast
	dismissed []Toast
}

func (m *MockChannel) Show(_ context.Context, t Toast) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, t)
	return nil
}

func (m *MockChannel) Dismiss(_ context.Context, t Toast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed = append(m.dismissed, t)
	return nil
}

// Shown returns a copy of the toasts shown so far.
func (m *MockChannel) Shown() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.shown...)
}

// Dismissed returns a copy of the toasts dismissed so far.
func (m *MockChannel) Dismissed() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Toast(nil), m.dismissed...)
}
