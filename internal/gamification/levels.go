package gamification

// LevelXP is the cumulative xp needed to reach each level; index 0 is level 1.
var LevelXP = []int{0, 100, 250, 450, 700, 1000, 1350, 1750, 2200, 2700}

// xpPastTopLevel is the span used for the progress bar once the table runs out.
const xpPastTopLevel = 100

// CalculateLevel returns the highest 1-based level whose threshold is <= xp.
func CalculateLevel(xp int) int {
	for i := len(LevelXP) - 1; i >= 0; i-- {
		if xp >= LevelXP[i] {
			return i + 1
		}
	}
	return 1
}

// LevelProgress describes how far xp is into the current level.
type LevelProgress struct {
	// Current is the xp earned since the current level's threshold.
	Current int
	// Next is the xp span between the current and the next threshold.
	Next int
	// Progress is Current/Next as a percentage in [0, 100].
	Progress float64
}

// XPForNextLevel reports progress toward the next level.
func XPForNextLevel(xp int) LevelProgress {
	level := CalculateLevel(xp)
	currentXP := LevelXP[level-1]
	nextXP := currentXP + xpPastTopLevel
	if level < len(LevelXP) {
		nextXP = LevelXP[level]
	}

	lp := LevelProgress{
		Current: xp - currentXP,
		Next:    nextXP - currentXP,
	}
	lp.Progress = float64(lp.Current) / float64(lp.Next) * 100
	lp.Progress = min(max(lp.Progress, 0), 100)
	return lp
}
