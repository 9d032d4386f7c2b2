// Package lesson runs a single subtopic lesson: introduction, content cards,
// the main quiz with review, exam practice with review, and completion.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/suguru-ai/smartclass/internal/catalog"
	"github.com/suguru-ai/smartclass/internal/gamification"
	"github.com/suguru-ai/smartclass/internal/notify"
)

// State is a stage of the lesson.
type State string

const (
	StateIntro          State = "intro"
	StateContent        State = "content"
	StateThankYou       State = "thank-you"
	StateMainQuiz       State = "main-quiz"
	StateMainQuizReview State = "main-quiz-review"
	StateExamPractice   State = "exam-practice"
	StateExamReview     State = "exam-review"
	StateCompletion     State = "completion"
)

const (
	lessonXP     = 20
	completionXP = 100
)

var (
	// ErrUnanswered is returned by Next while the current quiz question has no answer.
	ErrUnanswered = errors.New("select an answer first")
	// ErrFinished is returned by Next once the lesson is complete.
	ErrFinished = errors.New("lesson finished")
	// ErrNotQuiz is returned by Answer outside main-quiz and exam-practice.
	ErrNotQuiz = errors.New("not answering a quiz")
)

// Recorder persists lesson and quiz results. *gamification.Tracker implements it.
type Recorder interface {
	AwardXP(ctx context.Context, amount int) (gamification.Progress, []gamification.Event, error)
	CompleteLesson(ctx context.Context, lessonID string) (gamification.Progress, []gamification.Event, error)
	CompleteQuiz(ctx context.Context, quizID string, score int) (gamification.Progress, []gamification.Event, error)
}

// Notifier shows toasts. *notify.Gateway implements it.
type Notifier interface {
	Notify(ctx context.Context, t notify.Toast) error
}

// SessionConfig holds dependencies for a lesson session.
type SessionConfig struct {
	Catalog  *catalog.Catalog
	Recorder Recorder
	Notifier Notifier
	Location catalog.Location
}

// Step is what the learner currently sees.
type Step struct {
	State    State
	Heading  string
	Index    int // zero-based card or question index
	Total    int
	Card     *catalog.Card     // intro, content and thank-you
	Question *catalog.Question // quiz and review states
	// Selected is the chosen option of the current question, if any.
	Selected string
	// Correct is set in the review states.
	Correct *bool
}

// Session is the lesson state machine for one subtopic. It is not safe for
// concurrent use.
type Session struct {
	catalog  *catalog.Catalog
	recorder Recorder
	notifier Notifier
	loc      catalog.Location

	topic    catalog.Topic
	subtopic catalog.Subtopic
	content  []catalog.Card
	mainQuiz []catalog.Question
	examQuiz []catalog.Question

	state     State
	index     int
	answers   map[int]string
	results   []bool
	mainScore int
	events    []gamification.Event
}

// NewSession starts a lesson at the introduction. Unknown topics and
// subtopics degrade to placeholder titles.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if flow := FlowFor(cfg.Location.SubjectID); flow != FlowLesson {
		return nil, &RedirectError{Flow: flow, Location: cfg.Location}
	}

	topic, _ := cfg.Catalog.Topic(cfg.Location.TopicID)
	subtopic, _ := cfg.Catalog.Subtopic(cfg.Location.TopicID, cfg.Location.SubtopicID)

	return &Session{
		catalog:  cfg.Catalog,
		recorder: cfg.Recorder,
		notifier: cfg.Notifier,
		loc:      cfg.Location,
		topic:    topic,
		subtopic: subtopic,
		content:  cfg.Catalog.ContentFor(cfg.Location.SubtopicID),
		mainQuiz: cfg.Catalog.QuizFor(cfg.Location.TopicID, catalog.QuizMain),
		examQuiz: cfg.Catalog.QuizFor(cfg.Location.TopicID, catalog.QuizExam),
		state:    StateIntro,
		answers:  make(map[int]string),
	}, nil
}

// State returns the current stage.
func (s *Session) State() State { return s.state }

// Location returns the lesson being run.
func (s *Session) Location() catalog.Location { return s.loc }

// TopicTitle returns the topic title or "Topic".
func (s *Session) TopicTitle() string {
	return s.catalog.TopicTitle(s.loc.TopicID)
}

// Heading is the title shown above the current card.
func (s *Session) Heading() string {
	switch s.state {
	case StateIntro:
		return "Introduction"
	case StateContent:
		if s.subtopic.Title != "" {
			return s.subtopic.Title
		}
		return "Learning Content"
	case StateThankYou:
		return "Thank You"
	case StateMainQuiz:
		return "Main Quiz"
	case StateMainQuizReview:
		return "Quiz Review"
	case StateExamPractice:
		return "Exam Practice"
	case StateExamReview:
		return "Exam Review"
	default:
		return "Learning Content"
	}
}

// Current describes the card or question at the current position.
func (s *Session) Current() Step {
	step := Step{State: s.state, Heading: s.Heading(), Index: s.index}

	switch s.state {
	case StateIntro, StateContent, StateThankYou:
		cards := s.cards()
		step.Total = len(cards)
		if s.index < len(cards) {
			step.Card = &cards[s.index]
		}
	case StateMainQuiz, StateMainQuizReview, StateExamPractice, StateExamReview:
		quiz := s.quiz()
		step.Total = len(quiz)
		if s.index < len(quiz) {
			step.Question = &quiz[s.index]
		}
		step.Selected = s.answers[s.index]
		if s.reviewing() && s.index < len(s.results) {
			correct := s.results[s.index]
			step.Correct = &correct
		}
	}
	return step
}

// Answer selects option for the question at index in the running quiz.
func (s *Session) Answer(index int, option string) error {
	if s.state != StateMainQuiz && s.state != StateExamPractice {
		return ErrNotQuiz
	}
	quiz := s.quiz()
	if index < 0 || index >= len(quiz) {
		return fmt.Errorf("question %d out of range [0,%d)", index, len(quiz))
	}
	if !slices.Contains(quiz[index].Options, option) {
		return fmt.Errorf("%q is not an option of question %d", option, index+1)
	}
	s.answers[index] = option
	return nil
}

// CanAdvance reports whether Next would move forward. Quiz questions must be
// answered first.
func (s *Session) CanAdvance() bool {
	switch s.state {
	case StateCompletion:
		return false
	case StateMainQuiz, StateExamPractice:
		_, ok := s.answers[s.index]
		return ok || len(s.quiz()) == 0
	default:
		return true
	}
}

// Next moves to the next card, or to the next stage after the last card.
// A recording failure is returned after the transition has happened.
func (s *Session) Next(ctx context.Context) error {
	if s.state == StateCompletion {
		return ErrFinished
	}
	if !s.CanAdvance() {
		return ErrUnanswered
	}

	if total := s.total(); s.index < total-1 {
		s.index++
		return nil
	}

	s.index = 0
	switch s.state {
	case StateIntro:
		s.state = StateContent
	case StateContent:
		s.state = StateThankYou
		return s.completeLesson(ctx)
	case StateThankYou:
		s.state = StateMainQuiz
		s.answers = make(map[int]string)
	case StateMainQuiz:
		s.evaluate(s.mainQuiz)
		s.state = StateMainQuizReview
		return s.completeQuiz(ctx)
	case StateMainQuizReview:
		s.state = StateExamPractice
		s.answers = make(map[int]string)
	case StateExamPractice:
		s.evaluate(s.examQuiz)
		s.state = StateExamReview
	case StateExamReview:
		s.state = StateCompletion
		return s.completeTopic(ctx)
	}
	return nil
}

// Score returns the correct count and question total of the last evaluated quiz.
func (s *Session) Score() (correct, total int) {
	for _, ok := range s.results {
		if ok {
			correct++
		}
	}
	return correct, len(s.results)
}

// MainQuizScore is the recorded main quiz percentage.
func (s *Session) MainQuizScore() int { return s.mainScore }

// Events returns the progress events produced so far.
func (s *Session) Events() []gamification.Event {
	return slices.Clone(s.events)
}

// NextTopic returns the location of the first subtopic of the following
// topic in the same subject.
func (s *Session) NextTopic() (catalog.Location, bool) {
	next, ok := s.catalog.NextTopic(s.loc.TopicID)
	if !ok {
		return catalog.Location{}, false
	}
	return catalog.Location{
		GradeID:    s.loc.GradeID,
		SubjectID:  s.loc.SubjectID,
		TopicID:    next.ID,
		SubtopicID: next.Subtopics[0].ID,
	}, true
}

func (s *Session) cards() []catalog.Card {
	switch s.state {
	case StateIntro:
		return []catalog.Card{s.introCard()}
	case StateContent:
		return s.content
	case StateThankYou:
		return []catalog.Card{s.thankYouCard()}
	}
	return nil
}

func (s *Session) quiz() []catalog.Question {
	switch s.state {
	case StateMainQuiz, StateMainQuizReview:
		return s.mainQuiz
	case StateExamPractice, StateExamReview:
		return s.examQuiz
	}
	return nil
}

func (s *Session) total() int {
	if q := s.quiz(); q != nil {
		return len(q)
	}
	return len(s.cards())
}

func (s *Session) reviewing() bool {
	return s.state == StateMainQuizReview || s.state == StateExamReview
}

func (s *Session) evaluate(quiz []catalog.Question) {
	s.results = make([]bool, len(quiz))
	for i, q := range quiz {
		s.results[i] = s.answers[i] == q.CorrectAnswer
	}
}

func (s *Session) completeLesson(ctx context.Context) error {
	lessonID := catalog.LessonID(s.loc.TopicID, s.loc.SubtopicID)
	if s.recorder != nil {
		_, events, err := s.recorder.CompleteLesson(ctx, lessonID)
		if err != nil {
			return fmt.Errorf("recording lesson %s: %w", lessonID, err)
		}
		s.events = append(s.events, events...)
		s.notifyEvents(ctx, events)
	}

	name := s.subtopic.Title
	if name == "" {
		name = "this lesson"
	}
	s.notify(ctx, notify.Toast{
		Title:       "Lesson Completed!",
		Description: "You've completed " + name,
		XP:          lessonXP,
	})
	return nil
}

func (s *Session) completeQuiz(ctx context.Context) error {
	correct, total := s.Score()
	if total > 0 {
		s.mainScore = int(math.Round(float64(correct) / float64(total) * 100))
	}

	quizID := catalog.QuizID(s.loc.TopicID, s.loc.SubtopicID)
	if s.recorder != nil {
		_, events, err := s.recorder.CompleteQuiz(ctx, quizID, s.mainScore)
		if err != nil {
			return fmt.Errorf("recording quiz %s: %w", quizID, err)
		}
		s.events = append(s.events, events...)
		s.notifyEvents(ctx, events)
	}

	s.notify(ctx, notify.Toast{
		Title:       "Quiz Completed!",
		Description: fmt.Sprintf("You scored %d%% on this quiz", s.mainScore),
		XP:          gamification.QuizXP(s.mainScore),
	})
	return nil
}

func (s *Session) completeTopic(ctx context.Context) error {
	if s.recorder != nil {
		_, events, err := s.recorder.AwardXP(ctx, completionXP)
		if err != nil {
			return fmt.Errorf("awarding topic xp: %w", err)
		}
		s.events = append(s.events, events...)
		s.notifyEvents(ctx, events)
	}

	s.notify(ctx, notify.Toast{
		Title:       "Congratulations!",
		Description: "You've completed " + s.TopicTitle(),
		XP:          completionXP,
	})
	return nil
}

func (s *Session) notifyEvents(ctx context.Context, events []gamification.Event) {
	for _, t := range ToastsFor(events) {
		s.notify(ctx, t)
	}
}

func (s *Session) notify(ctx context.Context, t notify.Toast) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, t); err != nil {
		slog.Warn("failed to show toast", "title", t.Title, "error", err)
	}
}
