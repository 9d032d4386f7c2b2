package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/suguru-ai/smartclass/internal/kvstore"
)

const defaultProgressKey = "userProgress"

// TrackerConfig holds dependencies for the tracker.
type TrackerConfig struct {
	Store kvstore.Store
	// Key is the store key holding the JSON record (default "userProgress").
	Key string
	// Location defines calendar days for streaks (default time.Local).
	Location *time.Location
	Subjects SubjectLessons
	Events   EventLogger
	// Now is the clock (default time.Now).
	Now func() time.Time
}

// Tracker is the application-state object for learner progress. Every
// operation loads the record, applies one rule and persists the whole record.
type Tracker struct {
	store    kvstore.Store
	key      string
	loc      *time.Location
	subjects SubjectLessons
	events   EventLogger
	now      func() time.Time
	mu       sync.Mutex
}

// NewTracker creates a tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	store := cfg.Store
	if store == nil {
		store = kvstore.NewMemoryStore()
	}
	key := cfg.Key
	if key == "" {
		key = defaultProgressKey
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	events := cfg.Events
	if events == nil {
		events = NopEventLogger{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		store:    store,
		key:      key,
		loc:      loc,
		subjects: cfg.Subjects,
		events:   events,
		now:      now,
	}
}

// Progress returns the current record. A missing record is created with
// defaults and saved, so the user id stays the same across reads.
func (t *Tracker) Progress(ctx context.Context) (Progress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, found, err := t.load(ctx)
	if err != nil {
		return Progress{}, err
	}
	if !found {
		if err := t.save(ctx, p); err != nil {
			return Progress{}, err
		}
	}
	return p.Clone(), nil
}

// AwardXP adds xp and records activity.
func (t *Tracker) AwardXP(ctx context.Context, amount int) (Progress, []Event, error) {
	return t.apply(ctx, func(p *Progress, now time.Time) []Event {
		return AwardXP(p, amount, now)
	})
}

// CompleteLesson records a lesson completion.
func (t *Tracker) CompleteLesson(ctx context.Context, lessonID string) (Progress, []Event, error) {
	return t.apply(ctx, func(p *Progress, now time.Time) []Event {
		return CompleteLesson(p, lessonID, now, t.subjects)
	})
}

// CompleteQuiz records a quiz result.
func (t *Tracker) CompleteQuiz(ctx context.Context, quizID string, score int) (Progress, []Event, error) {
	return t.apply(ctx, func(p *Progress, now time.Time) []Event {
		return CompleteQuiz(p, quizID, score, now)
	})
}

// AwardBadge grants a badge once.
func (t *Tracker) AwardBadge(ctx context.Context, badge BadgeDef) (Progress, []Event, error) {
	return t.apply(ctx, func(p *Progress, now time.Time) []Event {
		return AwardBadge(p, badge, now)
	})
}

// Reset deletes the stored record. The next read starts from defaults.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, found, err := t.load(ctx)
	if err != nil {
		return err
	}
	if err := t.store.Delete(ctx, t.key); err != nil {
		return fmt.Errorf("deleting progress: %w", err)
	}
	if !found {
		return nil
	}

	t.logEvents(ctx, []Event{{
		UserID:    p.UserID,
		Type:      EventProgressReset,
		CreatedAt: t.now(),
	}})
	slog.Info("progress reset", "user_id", p.UserID)
	return nil
}

func (t *Tracker) apply(ctx context.Context, rule func(*Progress, time.Time) []Event) (Progress, []Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, _, err := t.load(ctx)
	if err != nil {
		return Progress{}, nil, err
	}

	events := rule(p, t.now().In(t.loc))

	if err := t.save(ctx, p); err != nil {
		return Progress{}, nil, err
	}
	t.logEvents(ctx, events)

	return p.Clone(), events, nil
}

// load reads the record. A missing key or a malformed value falls back to
// defaults; only store failures are returned. found reports whether a value
// was stored.
func (t *Tracker) load(ctx context.Context) (p *Progress, found bool, err error) {
	data, err := t.store.Get(ctx, t.key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return NewProgress(), false, nil
		}
		return nil, false, fmt.Errorf("loading progress: %w", err)
	}

	var stored Progress
	if err := json.Unmarshal(data, &stored); err != nil {
		slog.Error("failed to parse stored progress, using defaults", "key", t.key, "error", err)
		return NewProgress(), true, nil
	}
	stored.normalize()
	return &stored, true, nil
}

func (t *Tracker) save(ctx context.Context, p *Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}
	if err := t.store.Set(ctx, t.key, data); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}
	return nil
}

func (t *Tracker) logEvents(ctx context.Context, events []Event) {
	for _, e := range events {
		if err := t.events.LogEvent(ctx, e); err != nil {
			slog.Warn("failed to log progress event", "type", e.Type, "error", err)
		}
	}
}
