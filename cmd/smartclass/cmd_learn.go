package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/suguru-ai/smartclass/internal/catalog"
	"github.com/suguru-ai/smartclass/internal/lesson"
)

func (a *app) cmdLearn(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: smartclass learn <grade>/<subject>/<topic>/<subtopic>")
	}
	loc := catalog.ParsePath(args[0])
	if loc.SubtopicID == "" {
		return fmt.Errorf("path must name a subtopic: grade/subject/topic/subtopic")
	}

	for {
		s, err := lesson.NewSession(lesson.SessionConfig{
			Catalog:  a.catalog,
			Recorder: a.tracker,
			Notifier: a.toasts,
			Location: loc,
		})
		var redirect *lesson.RedirectError
		if errors.As(err, &redirect) {
			return a.redirect(ctx, redirect)
		}
		if err != nil {
			return err
		}

		next, ok, err := a.runSession(ctx, s)
		if err != nil || !ok {
			return err
		}
		loc = next
	}
}

// redirect sends coding and maps locations to their own flows.
func (a *app) redirect(ctx context.Context, r *lesson.RedirectError) error {
	switch r.Flow {
	case lesson.FlowCoding:
		path := strings.Join([]string{r.Location.GradeID, r.Location.TopicID, r.Location.SubtopicID}, "/")
		return a.cmdCode(ctx, []string{path})
	case lesson.FlowMap:
		return a.cmdMap(nil)
	}
	return r
}

// runSession drives one lesson until completion or end of input. It returns
// the next lesson when the learner asks for it.
func (a *app) runSession(ctx context.Context, s *lesson.Session) (catalog.Location, bool, error) {
	fmt.Fprintf(a.out, "%s\n%s\n", s.TopicTitle(), strings.Repeat("=", len(s.TopicTitle())))

	for s.State() != lesson.StateCompletion {
		if err := ctx.Err(); err != nil {
			return catalog.Location{}, false, err
		}

		step := s.Current()
		a.showStep(step)

		switch step.State {
		case lesson.StateMainQuiz, lesson.StateExamPractice:
			if step.Question == nil {
				break
			}
			option, ok := a.chooseOption(*step.Question)
			if !ok {
				return catalog.Location{}, false, nil
			}
			if err := s.Answer(step.Index, option); err != nil {
				return catalog.Location{}, false, err
			}
		default:
			line, ok := a.prompt("\n[Enter] continue, q to quit: ")
			if !ok || strings.EqualFold(line, "q") {
				return catalog.Location{}, false, nil
			}
		}

		prev := s.State()
		if err := s.Next(ctx); err != nil {
			// Progress write failures are reported but the lesson continues.
			fmt.Fprintf(a.out, "warning: %v\n", err)
		}
		switch {
		case prev == lesson.StateMainQuiz && s.State() == lesson.StateMainQuizReview:
			correct, total := s.Score()
			fmt.Fprintf(a.out, "\nYou answered %d of %d correctly (%d%%).\n", correct, total, s.MainQuizScore())
		case prev == lesson.StateExamPractice && s.State() == lesson.StateExamReview:
			correct, total := s.Score()
			fmt.Fprintf(a.out, "\nExam practice: %d of %d correct.\n", correct, total)
		}
	}

	next, hasNext := s.NextTopic()
	if !hasNext {
		return catalog.Location{}, false, nil
	}
	line, ok := a.prompt(fmt.Sprintf("\nn: next topic (%s), [Enter] go home: ", a.catalog.TopicTitle(next.TopicID)))
	if !ok || !strings.EqualFold(line, "n") {
		return catalog.Location{}, false, nil
	}
	return next, true, nil
}

func (a *app) showStep(step lesson.Step) {
	fmt.Fprintf(a.out, "\n-- %s (%d/%d) --\n", step.Heading, step.Index+1, step.Total)

	if step.Card != nil {
		fmt.Fprintf(a.out, "%s\n\n%s\n", step.Card.Title, catalog.PlainText(step.Card.Body))
		if step.Card.Image != "" {
			fmt.Fprintf(a.out, "[image: %s]\n", step.Card.Image)
		}
		return
	}
	if step.Question == nil {
		return
	}

	q := step.Question
	fmt.Fprintf(a.out, "%s\n", q.Prompt)
	for i, o := range q.Options {
		marker := " "
		if step.Correct != nil {
			switch {
			case o == q.CorrectAnswer:
				marker = "✓"
			case o == step.Selected:
				marker = "✗"
			}
		}
		fmt.Fprintf(a.out, "  %s %d) %s\n", marker, i+1, o)
	}
	if step.Correct != nil {
		if *step.Correct {
			fmt.Fprintln(a.out, "Correct!")
		} else {
			fmt.Fprintf(a.out, "Your answer: %s\n", orNone(step.Selected))
		}
		fmt.Fprintf(a.out, "Explanation: %s\n", q.Explanation)
	}
}

// chooseOption reads an option number until a valid one is given.
func (a *app) chooseOption(q catalog.Question) (string, bool) {
	for {
		line, ok := a.prompt(fmt.Sprintf("Answer [1-%d]: ", len(q.Options)))
		if !ok || strings.EqualFold(line, "q") {
			return "", false
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(q.Options) {
			return q.Options[n-1], true
		}
		fmt.Fprintf(a.out, "Please enter a number between 1 and %d.\n", len(q.Options))
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func trimLine(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(s, "\r"))
}
