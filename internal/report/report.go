// Package report exports the learner progress record as an XLSX workbook.
package report

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/suguru-ai/smartclass/internal/gamification"
)

// Sheet names, in workbook order.
const (
	SheetSummary      = "Summary"
	SheetLessons      = "Lessons"
	SheetQuizzes      = "Quizzes"
	SheetBadges       = "Badges"
	SheetAchievements = "Achievements"
)

const dateLayout = "2006-01-02 15:04"

// Labels resolves display names for lesson ids. *catalog.Catalog implements it.
type Labels interface {
	SubjectOfLesson(lessonID string) (string, bool)
	SubjectName(subjectID string) string
}

// Options controls the export.
type Options struct {
	// Labels adds a subject column to the lessons sheet when set.
	Labels Labels
	// GeneratedAt is stamped on the summary sheet (default time.Now).
	GeneratedAt time.Time
}

// Build creates the workbook. The caller must Close it.
func Build(p gamification.Progress, opts Options) (*excelize.File, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetLessons, SheetQuizzes, SheetBadges, SheetAchievements} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	w := &writer{f: f, header: header}
	w.summary(p, opts.GeneratedAt)
	w.lessons(p, opts.Labels)
	w.quizzes(p)
	w.badges(p)
	w.achievements(p)
	if w.err != nil {
		f.Close()
		return nil, w.err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write streams the workbook to out.
func Write(out io.Writer, p gamification.Progress, opts Options) error {
	f, err := Build(p, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Save writes the workbook to path.
func Save(path string, p gamification.Progress, opts Options) error {
	f, err := Build(p, opts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// writer keeps the first error so sheet builders read straight through.
type writer struct {
	f      *excelize.File
	header int
	err    error
}

func (w *writer) row(sheet string, n int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("%s row %d: %w", sheet, n, err)
	}
}

func (w *writer) headerRow(sheet string, columns ...any) {
	w.row(sheet, 1, columns...)
	if w.err != nil {
		return
	}
	if err := w.f.SetRowStyle(sheet, 1, 1, w.header); err != nil {
		w.err = fmt.Errorf("%s header style: %w", sheet, err)
		return
	}
	last, err := excelize.ColumnNumberToName(len(columns))
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetColWidth(sheet, "A", last, 24); err != nil {
		w.err = fmt.Errorf("%s column width: %w", sheet, err)
	}
}

func (w *writer) summary(p gamification.Progress, generated time.Time) {
	lp := gamification.XPForNextLevel(p.XP)
	lastActivity := ""
	if !p.LastActivity.IsZero() {
		lastActivity = p.LastActivity.Format(dateLayout)
	}

	w.headerRow(SheetSummary, "Field", "Value")
	rows := [][]any{
		{"User ID", p.UserID},
		{"XP", p.XP},
		{"Level", p.Level},
		{"XP into level", fmt.Sprintf("%d / %d", lp.Current, lp.Next)},
		{"Level progress %", lp.Progress},
		{"Streak (days)", p.Streak},
		{"Last activity", lastActivity},
		{"Lessons completed", len(p.CompletedLessons)},
		{"Quizzes completed", len(p.CompletedQuizzes)},
		{"Perfect quizzes", p.PerfectQuizzes()},
		{"Badges earned", len(p.Badges)},
		{"Generated at", generated.Format(dateLayout)},
	}
	for i, r := range rows {
		w.row(SheetSummary, i+2, r...)
	}
}

func (w *writer) lessons(p gamification.Progress, labels Labels) {
	if labels == nil {
		w.headerRow(SheetLessons, "Lesson ID")
		for i, id := range p.CompletedLessons {
			w.row(SheetLessons, i+2, id)
		}
		return
	}

	w.headerRow(SheetLessons, "Lesson ID", "Subject")
	for i, id := range p.CompletedLessons {
		subject := ""
		if s, ok := labels.SubjectOfLesson(id); ok {
			subject = labels.SubjectName(s)
		}
		w.row(SheetLessons, i+2, id, subject)
	}
}

func (w *writer) quizzes(p gamification.Progress) {
	w.headerRow(SheetQuizzes, "Quiz ID", "Best score %")
	for i, id := range p.CompletedQuizzes {
		score, ok := p.QuizScores[id]
		if !ok {
			w.row(SheetQuizzes, i+2, id, "")
			continue
		}
		w.row(SheetQuizzes, i+2, id, score)
	}
}

func (w *writer) badges(p gamification.Progress) {
	w.headerRow(SheetBadges, "Badge", "Description", "Earned")
	badges := slices.Clone(p.Badges)
	slices.SortStableFunc(badges, func(a, b gamification.Badge) int {
		return a.DateEarned.Compare(b.DateEarned)
	})
	for i, b := range badges {
		w.row(SheetBadges, i+2, b.Name, b.Description, b.DateEarned.Format(dateLayout))
	}
}

func (w *writer) achievements(p gamification.Progress) {
	w.headerRow(SheetAchievements, "Achievement", "Description", "Progress", "Total", "Completed", "XP reward", "Completed at")
	for i, a := range p.Achievements {
		completedAt := ""
		if a.DateCompleted != nil {
			completedAt = a.DateCompleted.Format(dateLayout)
		}
		w.row(SheetAchievements, i+2, a.Name, a.Description, a.Progress, a.Total, a.Completed, a.XPReward, completedAt)
	}
}
