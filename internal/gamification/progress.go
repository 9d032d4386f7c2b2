// Package gamification implements the learner progress record: XP, levels,
// daily streaks, badges and achievements.
package gamification

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Progress is the persisted learner record.
type Progress struct {
	UserID           string         `json:"userId"`
	XP               int            `json:"xp"`
	Level            int            `json:"level"`
	Streak           int            `json:"streak"`
	LastActivity     time.Time      `json:"lastActivity,omitzero"`
	CompletedLessons []string       `json:"completedLessons"`
	CompletedQuizzes []string       `json:"completedQuizzes"`
	Badges           []Badge        `json:"badges"`
	Achievements     []Achievement  `json:"achievements"`
	QuizScores       map[string]int `json:"quizScores,omitempty"`
}

// Badge is a one-time award.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	DateEarned  time.Time `json:"dateEarned"`
}

// Achievement is a progressive goal that pays XPReward once on completion.
type Achievement struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	XPReward      int        `json:"xpReward"`
	Progress      int        `json:"progress"`
	Total         int        `json:"total"`
	Completed     bool       `json:"completed"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty"`
}

// NewProgress returns a zeroed record with a fresh user id and every
// achievement at zero progress.
func NewProgress() *Progress {
	p := &Progress{
		UserID: uuid.NewString(),
		Level:  1,
	}
	p.normalize()
	return p
}

// HasCompletedLesson reports whether a lesson id is recorded.
func (p *Progress) HasCompletedLesson(id string) bool {
	return slices.Contains(p.CompletedLessons, id)
}

// HasCompletedQuiz reports whether a quiz id is recorded.
func (p *Progress) HasCompletedQuiz(id string) bool {
	return slices.Contains(p.CompletedQuizzes, id)
}

// HasBadge reports whether a badge id has been earned.
func (p *Progress) HasBadge(id string) bool {
	return slices.ContainsFunc(p.Badges, func(b Badge) bool { return b.ID == id })
}

// Achievement returns the achievement with the given id.
func (p *Progress) Achievement(id string) (Achievement, bool) {
	i := slices.IndexFunc(p.Achievements, func(a Achievement) bool { return a.ID == id })
	if i < 0 {
		return Achievement{}, false
	}
	return p.Achievements[i], true
}

// Clone returns a deep copy.
func (p *Progress) Clone() Progress {
	c := *p
	c.CompletedLessons = slices.Clone(p.CompletedLessons)
	c.CompletedQuizzes = slices.Clone(p.CompletedQuizzes)
	c.Badges = slices.Clone(p.Badges)
	c.Achievements = make([]Achievement, len(p.Achievements))
	for i, a := range p.Achievements {
		if a.DateCompleted != nil {
			d := *a.DateCompleted
			a.DateCompleted = &d
		}
		c.Achievements[i] = a
	}
	c.QuizScores = maps.Clone(p.QuizScores)
	return c
}

// normalize repairs records written by older versions or edited by hand: nil
// lists become empty, missing achievements are added, unknown ones are kept
// and the level is recomputed from xp.
func (p *Progress) normalize() {
	if p.UserID == "" {
		p.UserID = uuid.NewString()
	}
	if p.CompletedLessons == nil {
		p.CompletedLessons = []string{}
	}
	if p.CompletedQuizzes == nil {
		p.CompletedQuizzes = []string{}
	}
	if p.Badges == nil {
		p.Badges = []Badge{}
	}
	for _, def := range Achievements {
		if _, ok := p.Achievement(def.ID); !ok {
			p.Achievements = append(p.Achievements, Achievement{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				XPReward:    def.XPReward,
				Total:       def.Total,
			})
		}
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
	p.Level = CalculateLevel(p.XP)
}
