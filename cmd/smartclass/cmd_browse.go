package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/suguru-ai/smartclass/internal/catalog"
)

func (a *app) cmdGrades() error {
	fmt.Fprintln(a.out, "Grades")
	fmt.Fprintln(a.out, "======")
	for _, g := range a.catalog.Grades() {
		fmt.Fprintf(a.out, "%-10s %-16s %s\n", g.ID, g.Name, g.Description)
	}
	return nil
}

func (a *app) cmdSubjects(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: smartclass subjects <grade>")
	}
	loc := catalog.ParsePath(args[0])
	if _, ok := a.catalog.Grade(loc.GradeID); !ok {
		return fmt.Errorf("grade not found: %s", loc.GradeID)
	}

	title := a.catalog.GradeName(loc.GradeID) + " Subjects"
	fmt.Fprintln(a.out, title)
	fmt.Fprintln(a.out, strings.Repeat("=", len(title)))
	for _, s := range a.catalog.Subjects() {
		fmt.Fprintf(a.out, "%-16s %-16s %s\n", s.ID, s.Name, s.Description)
	}
	return nil
}

func (a *app) cmdTopics(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: smartclass topics <grade>/<subject>")
	}
	loc := catalog.ParsePath(args[0])
	if _, ok := a.catalog.Subject(loc.SubjectID); !ok {
		return fmt.Errorf("subject not found: %s", loc.SubjectID)
	}

	progress, err := a.tracker.Progress(ctx)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s: %s", a.catalog.GradeName(loc.GradeID), a.catalog.SubjectName(loc.SubjectID))
	fmt.Fprintln(a.out, title)
	fmt.Fprintln(a.out, strings.Repeat("=", len(title)))
	fmt.Fprintln(a.out, a.catalog.SubjectIntroduction(loc.SubjectID))

	topics := a.catalog.TopicsForSubject(loc.SubjectID)
	if len(topics) == 0 {
		fmt.Fprintln(a.out, "No topics yet.")
		return nil
	}
	for _, t := range topics {
		fmt.Fprintf(a.out, "\nLevel %d  %s (%s)\n", t.Level, t.Title, t.ID)
		if t.Description != "" {
			fmt.Fprintf(a.out, "  %s\n", t.Description)
		}
		for _, s := range t.Subtopics {
			lessonID := catalog.LessonID(t.ID, s.ID)
			if loc.SubjectID == catalog.SubjectCoding {
				lessonID = catalog.CodingLessonID(t.ID, s.ID)
			}
			mark := " "
			if s.Completed || progress.HasCompletedLesson(lessonID) {
				mark = "✓"
			}
			fmt.Fprintf(a.out, "  [%s] %-24s %s/%s/%s/%s\n", mark, s.Title, loc.GradeID, loc.SubjectID, t.ID, s.ID)
		}
	}
	return nil
}
