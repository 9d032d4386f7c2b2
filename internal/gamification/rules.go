package gamification

import (
	"slices"
	"time"
)

// SubjectLessons maps recorded lesson ids to subjects. It lets the rules
// award subject-wide badges and achievements without owning the content.
type SubjectLessons interface {
	SubjectOfLesson(lessonID string) (string, bool)
	SubjectLessons(subjectID string) []string
}

// AwardXP adds xp to the record and counts as daily activity. Non-positive
// amounts add nothing but still record the activity.
func AwardXP(p *Progress, amount int, now time.Time) []Event {
	m := begin(p, now, nil)
	m.addXP(amount, "award")
	m.recordActivity()
	m.updateAchievements()
	return m.finish()
}

// CompleteLesson records a lesson once. The first completion pays xp and may
// earn the first-lesson and subject-master badges; every call counts as
// activity. subjects may be nil, which disables subject-wide checks.
func CompleteLesson(p *Progress, lessonID string, now time.Time, subjects SubjectLessons) []Event {
	m := begin(p, now, subjects)

	if !p.HasCompletedLesson(lessonID) {
		p.CompletedLessons = append(p.CompletedLessons, lessonID)
		m.emit(EventLessonCompleted, map[string]any{"lesson_id": lessonID})
		m.addXP(xpPerLesson, "lesson")

		if len(p.CompletedLessons) == 1 {
			m.awardBadge(BadgeFirstLesson)
		}
		if m.subjectMastered(lessonID) {
			m.awardBadge(BadgeSubjectMaster)
		}
	}

	m.recordActivity()
	m.updateAchievements()
	return m.finish()
}

// CompleteQuiz records a quiz result. score is clamped to [0, 100]. The first
// completion of a quiz id pays floor(30*score/100) xp; later attempts only
// raise the best recorded score. A perfect score earns the perfect-quiz badge.
func CompleteQuiz(p *Progress, quizID string, score int, now time.Time) []Event {
	m := begin(p, now, nil)
	score = min(max(score, 0), perfectScore)

	if !p.HasCompletedQuiz(quizID) {
		p.CompletedQuizzes = append(p.CompletedQuizzes, quizID)
		m.emit(EventQuizCompleted, map[string]any{"quiz_id": quizID, "score": score})
		m.addXP(QuizXP(score), "quiz")

		if len(p.CompletedQuizzes) == 1 {
			m.awardBadge(BadgeFirstQuiz)
		}
	}

	if p.QuizScores == nil {
		p.QuizScores = make(map[string]int)
	}
	if best, ok := p.QuizScores[quizID]; !ok || score > best {
		p.QuizScores[quizID] = score
	}
	if score == perfectScore {
		m.awardBadge(BadgePerfectQuiz)
	}

	m.recordActivity()
	m.updateAchievements()
	return m.finish()
}

// QuizXP is the xp paid for a first quiz completion with score, clamped to [0, 100].
func QuizXP(score int) int {
	score = min(max(score, 0), perfectScore)
	return xpPerQuiz * score / perfectScore
}

// AwardBadge grants a badge once, paying its xp bonus. It does not count as
// activity.
func AwardBadge(p *Progress, badge BadgeDef, now time.Time) []Event {
	m := begin(p, now, nil)
	m.awardBadge(badge)
	m.updateAchievements()
	return m.finish()
}

// PerfectQuizzes counts quizzes whose best score is 100.
func (p *Progress) PerfectQuizzes() int {
	n := 0
	for _, s := range p.QuizScores {
		if s == perfectScore {
			n++
		}
	}
	return n
}

// mutation collects the events produced while applying one operation.
type mutation struct {
	p        *Progress
	now      time.Time
	subjects SubjectLessons
	level    int
	events   []Event
}

func begin(p *Progress, now time.Time, subjects SubjectLessons) *mutation {
	p.normalize()
	return &mutation{p: p, now: now, subjects: subjects, level: p.Level}
}

func (m *mutation) emit(t EventType, data map[string]any) {
	m.events = append(m.events, Event{
		UserID:    m.p.UserID,
		Type:      t,
		Data:      data,
		CreatedAt: m.now,
	})
}

func (m *mutation) addXP(amount int, reason string) {
	if amount <= 0 {
		return
	}
	m.p.XP += amount
	m.p.Level = CalculateLevel(m.p.XP)
	m.emit(EventXPAwarded, map[string]any{"amount": amount, "reason": reason, "total": m.p.XP})
}

func (m *mutation) awardBadge(def BadgeDef) {
	if m.p.HasBadge(def.ID) {
		return
	}
	m.p.Badges = append(m.p.Badges, Badge{
		ID:          def.ID,
		Name:        def.Name,
		Description: def.Description,
		Icon:        def.Icon,
		DateEarned:  m.now,
	})
	m.emit(EventBadgeEarned, map[string]any{"badge_id": def.ID, "name": def.Name})
	m.addXP(xpPerBadge, "badge")
}

// recordActivity applies the streak rule against the previous activity, in
// calendar days of now's location, then stamps the new activity.
func (m *mutation) recordActivity() {
	prev := m.p.LastActivity

	if prev.IsZero() || m.p.Streak == 0 {
		m.p.Streak = 1
	} else {
		switch days := calendarDays(prev, m.now); {
		case days == 1:
			m.p.Streak++
		case days > 1:
			m.p.Streak = 1
		}
	}
	m.p.LastActivity = m.now

	if m.p.Streak >= streakBadgeDays {
		m.awardBadge(BadgeStreak7)
	}
}

func (m *mutation) subjectMastered(lessonID string) bool {
	if m.subjects == nil {
		return false
	}
	subject, ok := m.subjects.SubjectOfLesson(lessonID)
	if !ok {
		return false
	}
	return m.allCompleted(m.subjects.SubjectLessons(subject))
}

func (m *mutation) allCompleted(lessons []string) bool {
	if len(lessons) == 0 {
		return false
	}
	for _, id := range lessons {
		if !slices.Contains(m.p.CompletedLessons, id) {
			return false
		}
	}
	return true
}

func (m *mutation) updateAchievements() {
	for i := range m.p.Achievements {
		a := &m.p.Achievements[i]
		if a.Completed {
			continue
		}

		switch a.ID {
		case AchievementFiveLessons:
			a.Progress = len(m.p.CompletedLessons)
		case AchievementTenQuizzes:
			a.Progress = len(m.p.CompletedQuizzes)
		case AchievementStreak30:
			a.Progress = m.p.Streak
		case AchievementFivePerfect:
			a.Progress = m.p.PerfectQuizzes()
		case AchievementAllMath:
			if m.subjects == nil {
				continue
			}
			a.Progress = 0
			if m.allCompleted(m.subjects.SubjectLessons(mathSubjectID)) {
				a.Progress = 1
			}
		default:
			continue
		}

		a.Progress = min(a.Progress, a.Total)
		if a.Progress < a.Total {
			continue
		}

		completedAt := m.now
		a.Completed = true
		a.DateCompleted = &completedAt
		m.emit(EventAchievementCompleted, map[string]any{"achievement_id": a.ID, "name": a.Name})
		m.addXP(a.XPReward, "achievement")
	}
}

func (m *mutation) finish() []Event {
	if m.p.Level > m.level {
		m.emit(EventLevelUp, map[string]any{"from": m.level, "to": m.p.Level})
	}
	return m.events
}

// calendarDays returns the number of calendar days from a to b, counted in
// b's location. It is negative when a falls on a later day than b.
func calendarDays(a, b time.Time) int {
	loc := b.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
