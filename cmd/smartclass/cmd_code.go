package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/suguru-ai/smartclass/internal/catalog"
	"github.com/suguru-ai/smartclass/internal/gamification"
	"github.com/suguru-ai/smartclass/internal/lesson"
	"github.com/suguru-ai/smartclass/internal/notify"
	"github.com/suguru-ai/smartclass/internal/pysim"
)

// cmdCode shows a Python lesson and simulates running code: the given file,
// or the lesson's starting code.
func (a *app) cmdCode(ctx context.Context, args []string) error {
	var (
		path, file, input string
		hasInput          bool
	)
	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "--input="):
			input, hasInput = strings.TrimPrefix(arg, "--input="), true
		case path == "":
			path = arg
		case file == "":
			file = arg
		default:
			return fmt.Errorf("unexpected argument: %s", arg)
		}
	}
	if path == "" {
		return fmt.Errorf("usage: smartclass code <grade>/<topic>/<lesson> [file] [--input=value]")
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	gradeID, topicID, lessonID := parts[0], parts[1], parts[2]

	lessons := a.catalog.PythonLessons()
	if len(lessons) == 0 {
		return fmt.Errorf("no python lessons available")
	}
	idx := a.catalog.PythonLessonIndex(lessonID)
	pl := lessons[idx]

	title := a.catalog.TopicTitle(topicID)
	if _, ok := a.catalog.Topic(topicID); !ok {
		title = "Python Basics"
	}
	fmt.Fprintf(a.out, "%s: %s\n%s\n\n", title, pl.Title, strings.Repeat("=", len(title)+len(pl.Title)+2))
	fmt.Fprintf(a.out, "%s\n", catalog.PlainText(pl.Instructions))
	if pl.Example != "" {
		fmt.Fprintf(a.out, "\nExample:\n%s\n", indent(pl.Example))
	}
	if pl.Challenge != "" {
		fmt.Fprintf(a.out, "\nChallenge:\n%s\n", pl.Challenge)
	}

	code := pl.StartingCode
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading code: %w", err)
		}
		code = string(data)
	}
	fmt.Fprintf(a.out, "\nCode:\n%s\n", indent(code))

	fmt.Fprintln(a.out, "\nOutput")
	fmt.Fprint(a.out, "Executing code...\n")
	res := pysim.Run(code, "")
	fmt.Fprint(a.out, res.Output)

	if err := a.completeCoding(ctx, topicID, pl.ID); err != nil {
		return err
	}

	if res.WaitingForInput {
		if !hasInput {
			line, ok := a.prompt("> ")
			if !ok {
				return nil
			}
			input = line
		} else {
			fmt.Fprintf(a.out, "> %s\n", input)
		}
		if input != "" {
			fmt.Fprint(a.out, pysim.Run(code, input).Output)
		}
	}

	if idx+1 < len(lessons) {
		fmt.Fprintf(a.out, "\nNext lesson: smartclass code %s/%s/%s\n", gradeID, topicID, lessons[idx+1].ID)
	}
	return nil
}

func (a *app) completeCoding(ctx context.Context, topicID, lessonID string) error {
	_, events, err := a.tracker.CompleteLesson(ctx, catalog.CodingLessonID(topicID, lessonID))
	if err != nil {
		return err
	}

	toast := notify.Toast{
		Title:       "Code Executed!",
		Description: "You've successfully run your Python code",
		XP:          xpGained(events),
	}
	toasts := append([]notify.Toast{toast}, lesson.ToastsFor(events)...)
	for _, t := range toasts {
		if err := a.toasts.Notify(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// xpGained sums the xp awarded by events.
func xpGained(events []gamification.Event) int {
	total := 0
	for _, e := range events {
		if e.Type != gamification.EventXPAwarded {
			continue
		}
		if n, ok := e.Data["amount"].(int); ok {
			total += n
		}
	}
	return total
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
