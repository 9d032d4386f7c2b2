package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/suguru-ai/smartclass/internal/gamification"
	"github.com/suguru-ai/smartclass/internal/report"
)

func (a *app) cmdProgress(ctx context.Context) error {
	p, err := a.tracker.Progress(ctx)
	if err != nil {
		return err
	}
	lp := gamification.XPForNextLevel(p.XP)

	fmt.Fprintln(a.out, "Your Progress")
	fmt.Fprintln(a.out, "=============")
	fmt.Fprintf(a.out, "Level:              %d (%d XP)\n", p.Level, p.XP)
	fmt.Fprintf(a.out, "Next level:         %s %.0f%% (%d/%d XP)\n", renderProgressBar(lp.Progress/100, 20), lp.Progress, lp.Current, lp.Next)
	fmt.Fprintf(a.out, "Streak:             %d %s\n", p.Streak, plural(p.Streak, "day", "days"))
	fmt.Fprintf(a.out, "Lessons completed:  %d\n", len(p.CompletedLessons))
	fmt.Fprintf(a.out, "Quizzes completed:  %d\n", len(p.CompletedQuizzes))

	fmt.Fprintln(a.out, "\nBadges")
	fmt.Fprintln(a.out, "------")
	for _, b := range p.Badges {
		name, desc := b.Name, b.Description
		if def, ok := gamification.BadgeByID(b.ID); ok {
			name, desc = def.Name, def.Description
		}
		fmt.Fprintf(a.out, "  [★] %-16s %s (earned %s)\n", name, desc, b.DateEarned.Format("2006-01-02"))
	}
	for _, def := range gamification.Badges {
		if !p.HasBadge(def.ID) {
			fmt.Fprintf(a.out, "  [ ] %-16s %s\n", def.Name, def.Description)
		}
	}

	fmt.Fprintln(a.out, "\nAchievements")
	fmt.Fprintln(a.out, "------------")
	for _, ach := range p.Achievements {
		ratio := 0.0
		if ach.Total > 0 {
			ratio = float64(ach.Progress) / float64(ach.Total)
		}
		status := fmt.Sprintf("%d/%d", ach.Progress, ach.Total)
		if ach.Completed {
			status = "done"
		}
		fmt.Fprintf(a.out, "  %-22s %s %-6s +%d XP\n", ach.Name, renderProgressBar(ratio, 10), status, ach.XPReward)
	}
	return nil
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: smartclass export <file.xlsx>")
	}
	path := args[0]
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return fmt.Errorf("export file must end in .xlsx: %s", path)
	}

	p, err := a.tracker.Progress(ctx)
	if err != nil {
		return err
	}
	if err := report.Save(path, p, report.Options{Labels: a.catalog}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Progress exported to %s\n", path)
	return nil
}

func (a *app) cmdReset(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] != "--yes" {
		line, ok := a.prompt("This deletes all xp, badges and achievements. Type 'yes' to confirm: ")
		if !ok || line != "yes" {
			fmt.Fprintln(a.out, "Reset cancelled.")
			return nil
		}
	}
	if err := a.tracker.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Progress reset.")
	return nil
}

// renderProgressBar draws value in [0, 1] as a bar of width cells.
func renderProgressBar(value float64, width int) string {
	filled := min(max(int(value*float64(width)), 0), width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
