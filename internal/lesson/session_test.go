package lesson_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/suguru-ai/smartclass/internal/catalog"
	"github.com/suguru-ai/smartclass/internal/gamification"
	"github.com/suguru-ai/smartclass/internal/kvstore"
	"github.com/suguru-ai/smartclass/internal/lesson"
	"github.com/suguru-ai/smartclass/internal/notify"
)

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return c
}

type fixture struct {
	session *lesson.Session
	tracker *gamification.Tracker
	toasts  *notify.MockChannel
}

func newFixture(t *testing.T, path string) fixture {
	t.Helper()
	cat := loadCatalog(t)
	tracker := gamification.NewTracker(gamification.TrackerConfig{
		Store:    kvstore.NewMemoryStore(),
		Subjects: cat,
		Now:      func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	})
	toasts := &notify.MockChannel{}
	gw := notify.NewGateway(notify.GatewayConfig{DismissAfter: -1})
	gw.Register("mock", toasts)

	s, err := lesson.NewSession(lesson.SessionConfig{
		Catalog:  cat,
		Recorder: tracker,
		Notifier: gw,
		Location: catalog.ParsePath(path),
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return fixture{session: s, tracker: tracker, toasts: toasts}
}

// advanceTo calls Next until the session reaches want, answering quiz
// questions with answer.
func advanceTo(t *testing.T, s *lesson.Session, want lesson.State, answer func(q catalog.Question) string) {
	t.Helper()
	for i := 0; s.State() != want; i++ {
		if i > 100 {
			t.Fatalf("never reached %s, stuck at %s", want, s.State())
		}
		step := s.Current()
		if (step.State == lesson.StateMainQuiz || step.State == lesson.StateExamPractice) && step.Question != nil {
			if err := s.Answer(step.Index, answer(*step.Question)); err != nil {
				t.Fatalf("Answer() error = %v", err)
			}
		}
		if err := s.Next(context.Background()); err != nil {
			t.Fatalf("Next() in %s error = %v", step.State, err)
		}
	}
}

func correctAnswer(q catalog.Question) string { return q.CorrectAnswer }

func TestNewSession_RedirectsOtherFlows(t *testing.T) {
	cat := loadCatalog(t)
	tests := []struct {
		path string
		want lesson.Flow
	}{
		{"primary1/coding/code-basics/intro", lesson.FlowCoding},
		{"primary1/maps/maps-africa/countries", lesson.FlowMap},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := lesson.NewSession(lesson.SessionConfig{Catalog: cat, Location: catalog.ParsePath(tt.path)})
			var redirect *lesson.RedirectError
			if !errors.As(err, &redirect) {
				t.Fatalf("NewSession() error = %v, want RedirectError", err)
			}
			if redirect.Flow != tt.want {
				t.Errorf("Flow = %s, want %s", redirect.Flow, tt.want)
			}
		})
	}
}

func TestNewSession_NilCatalog(t *testing.T) {
	if _, err := lesson.NewSession(lesson.SessionConfig{}); err == nil {
		t.Error("NewSession() should error without a catalog")
	}
}

func TestFlowFor(t *testing.T) {
	tests := map[string]lesson.Flow{
		"coding":      lesson.FlowCoding,
		"maps":        lesson.FlowMap,
		"mathematics": lesson.FlowLesson,
		"":            lesson.FlowLesson,
	}
	for subject, want := range tests {
		if got := lesson.FlowFor(subject); got != want {
			t.Errorf("FlowFor(%q) = %s, want %s", subject, got, want)
		}
	}
}

func TestSession_IntroCard(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")
	step := f.session.Current()

	if step.State != lesson.StateIntro || step.Heading != "Introduction" {
		t.Errorf("step = %s/%q, want intro/Introduction", step.State, step.Heading)
	}
	if step.Total != 1 || step.Card == nil {
		t.Fatalf("intro should have exactly one card, got total %d", step.Total)
	}
	if !strings.HasPrefix(step.Card.Title, "Introduction to ") {
		t.Errorf("intro title = %q", step.Card.Title)
	}
	if !strings.Contains(step.Card.Body, "Counting") {
		t.Errorf("intro body should name the subtopic: %q", step.Card.Body)
	}
}

func TestSession_UnknownSubtopicPlaceholders(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/no-topic/no-subtopic")
	step := f.session.Current()
	if step.Card.Title != "Introduction to Topic" {
		t.Errorf("intro title = %q, want placeholder", step.Card.Title)
	}
	if !strings.Contains(step.Card.Body, "<strong>Subtopic</strong>") {
		t.Errorf("intro body should use the subtopic placeholder: %q", step.Card.Body)
	}

	advanceTo(t, f.session, lesson.StateContent, correctAnswer)
	if h := f.session.Heading(); h != "Learning Content" {
		t.Errorf("Heading() = %q, want Learning Content", h)
	}
	if f.session.Current().Total == 0 {
		t.Error("unknown subtopic should fall back to default cards")
	}
}

func TestSession_ThankYouCompletesLesson(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")
	advanceTo(t, f.session, lesson.StateThankYou, correctAnswer)

	if h := f.session.Heading(); h != "Thank You" {
		t.Errorf("Heading() = %q, want Thank You", h)
	}
	p, err := f.tracker.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if !p.HasCompletedLesson("math-numbers-counting") {
		t.Errorf("CompletedLessons = %v, want math-numbers-counting", p.CompletedLessons)
	}

	var found bool
	for _, toast := range f.toasts.Shown() {
		if toast.Title == "Lesson Completed!" {
			found = true
			if toast.XP != 20 || toast.Description != "You've completed Counting and Number Recognition" {
				t.Errorf("lesson toast = %+v", toast)
			}
		}
	}
	if !found {
		t.Errorf("no lesson toast in %+v", f.toasts.Shown())
	}
}

func TestSession_QuizRequiresAnswer(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")
	advanceTo(t, f.session, lesson.StateMainQuiz, correctAnswer)

	if f.session.CanAdvance() {
		t.Error("CanAdvance() should be false before answering")
	}
	if err := f.session.Next(context.Background()); !errors.Is(err, lesson.ErrUnanswered) {
		t.Errorf("Next() error = %v, want ErrUnanswered", err)
	}
	if err := f.session.Answer(0, "not an option"); err == nil {
		t.Error("Answer() should reject unknown options")
	}
	if err := f.session.Answer(99, "8"); err == nil {
		t.Error("Answer() should reject out-of-range questions")
	}
	if err := f.session.Answer(0, "8"); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if !f.session.CanAdvance() {
		t.Error("CanAdvance() should be true after answering")
	}
	if got := f.session.Current().Selected; got != "8" {
		t.Errorf("Selected = %q, want 8", got)
	}
}

func TestSession_AnswerOutsideQuiz(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")
	if err := f.session.Answer(0, "8"); !errors.Is(err, lesson.ErrNotQuiz) {
		t.Errorf("Answer() error = %v, want ErrNotQuiz", err)
	}
}

func TestSession_MainQuizScored(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")

	// Miss the first question only.
	first := true
	advanceTo(t, f.session, lesson.StateMainQuizReview, func(q catalog.Question) string {
		if first {
			first = false
			for _, o := range q.Options {
				if o != q.CorrectAnswer {
					return o
				}
			}
		}
		return q.CorrectAnswer
	})

	correct, total := f.session.Score()
	if total != 4 || correct != 3 {
		t.Fatalf("Score() = %d/%d, want 3/4", correct, total)
	}
	if got := f.session.MainQuizScore(); got != 75 {
		t.Errorf("MainQuizScore() = %d, want 75", got)
	}

	p, err := f.tracker.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if got := p.QuizScores["math-numbers-counting-quiz"]; got != 75 {
		t.Errorf("QuizScores = %v, want 75", p.QuizScores)
	}

	step := f.session.Current()
	if step.Correct == nil || *step.Correct {
		t.Errorf("first review question should be marked incorrect, got %v", step.Correct)
	}

	var quizToast *notify.Toast
	for _, toast := range f.toasts.Shown() {
		if toast.Title == "Quiz Completed!" {
			quizToast = &toast
		}
	}
	if quizToast == nil {
		t.Fatal("no quiz toast shown")
	}
	if quizToast.Description != "You scored 75% on this quiz" || quizToast.XP != 22 {
		t.Errorf("quiz toast = %+v", *quizToast)
	}
}

func TestSession_ExamNotRecorded(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")
	advanceTo(t, f.session, lesson.StateExamReview, correctAnswer)

	correct, total := f.session.Score()
	if total != 5 || correct != 5 {
		t.Errorf("exam Score() = %d/%d, want 5/5", correct, total)
	}
	p, err := f.tracker.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if len(p.CompletedQuizzes) != 1 {
		t.Errorf("CompletedQuizzes = %v, want only the main quiz", p.CompletedQuizzes)
	}
}

func TestSession_AnswersResetBetweenQuizzes(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")
	advanceTo(t, f.session, lesson.StateExamPractice, correctAnswer)
	if got := f.session.Current().Selected; got != "" {
		t.Errorf("exam starts with Selected = %q, want empty", got)
	}
}

func TestSession_Completion(t *testing.T) {
	f := newFixture(t, "primary1/mathematics/math-numbers/counting")
	advanceTo(t, f.session, lesson.StateCompletion, correctAnswer)

	if f.session.CanAdvance() {
		t.Error("CanAdvance() should be false at completion")
	}
	if err := f.session.Next(context.Background()); !errors.Is(err, lesson.ErrFinished) {
		t.Errorf("Next() error = %v, want ErrFinished", err)
	}

	p, err := f.tracker.Progress(context.Background())
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	// lesson 20 + first_lesson 25 + quiz 30 + first_quiz 25 + perfect_quiz 25 + topic 100
	if p.XP != 225 {
		t.Errorf("XP = %d, want 225", p.XP)
	}

	next, ok := f.session.NextTopic()
	if !ok {
		t.Fatal("NextTopic() should find the following mathematics topic")
	}
	if next.TopicID != "math-fractions" || next.SubtopicID != "intro-fractions" {
		t.Errorf("NextTopic() = %s", next)
	}
	if next.GradeID != "primary1" || next.SubjectID != "mathematics" {
		t.Errorf("NextTopic() should keep grade and subject, got %s", next)
	}

	var perfect bool
	for _, e := range f.session.Events() {
		if e.Type == gamification.EventBadgeEarned && e.Data["badge_id"] == gamification.BadgePerfectQuiz.ID {
			perfect = true
		}
	}
	if !perfect {
		t.Error("a perfect main quiz should earn the perfect-quiz badge")
	}
}

type failingRecorder struct{}

func (failingRecorder) AwardXP(context.Context, int) (gamification.Progress, []gamification.Event, error) {
	return gamification.Progress{}, nil, errors.New("store down")
}

func (failingRecorder) CompleteLesson(context.Context, string) (gamification.Progress, []gamification.Event, error) {
	return gamification.Progress{}, nil, errors.New("store down")
}

func (failingRecorder) CompleteQuiz(context.Context, string, int) (gamification.Progress, []gamification.Event, error) {
	return gamification.Progress{}, nil, errors.New("store down")
}

func TestSession_RecorderFailure(t *testing.T) {
	s, err := lesson.NewSession(lesson.SessionConfig{
		Catalog:  loadCatalog(t),
		Recorder: failingRecorder{},
		Location: catalog.ParsePath("primary1/mathematics/math-numbers/counting"),
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	var recordErr error
	for i := 0; i < 100 && s.State() != lesson.StateThankYou; i++ {
		recordErr = s.Next(context.Background())
	}
	if recordErr == nil {
		t.Error("Next() into thank-you should surface the recorder error")
	}
	if s.State() != lesson.StateThankYou {
		t.Errorf("State() = %s, want thank-you even when recording fails", s.State())
	}
}

func TestToastsFor(t *testing.T) {
	events := []gamification.Event{
		{Type: gamification.EventXPAwarded, Data: map[string]any{"amount": 20}},
		{Type: gamification.EventBadgeEarned, Data: map[string]any{"name": "First Step"}},
		{Type: gamification.EventAchievementCompleted, Data: map[string]any{"name": "Quiz Master"}},
		{Type: gamification.EventLevelUp, Data: map[string]any{"from": 1, "to": 2}},
	}
	toasts := lesson.ToastsFor(events)
	if len(toasts) != 3 {
		t.Fatalf("ToastsFor() = %d toasts, want 3", len(toasts))
	}
	if toasts[0].Description != "First Step" || toasts[2].Description != "You reached level 2" {
		t.Errorf("toasts = %+v", toasts)
	}
}
