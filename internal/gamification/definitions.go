package gamification

// BadgeDef describes a badge before it is earned.
type BadgeDef struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

var (
	BadgeFirstLesson = BadgeDef{
		ID:          "first_lesson",
		Name:        "First Step",
		Description: "Completed your first lesson",
		Icon:        "award",
	}
	BadgeFirstQuiz = BadgeDef{
		ID:          "first_quiz",
		Name:        "Quiz Taker",
		Description: "Completed your first quiz",
		Icon:        "brain",
	}
	BadgePerfectQuiz = BadgeDef{
		ID:          "perfect_quiz",
		Name:        "Perfect Score",
		Description: "Achieved 100% on a quiz",
		Icon:        "trophy",
	}
	BadgeStreak7 = BadgeDef{
		ID:          "streak_7",
		Name:        "Weekly Warrior",
		Description: "Maintained a 7-day learning streak",
		Icon:        "flame",
	}
	BadgeSubjectMaster = BadgeDef{
		ID:          "subject_master",
		Name:        "Subject Master",
		Description: "Completed all topics in a subject",
		Icon:        "medal",
	}
)

// Badges lists every badge in display order.
var Badges = []BadgeDef{
	BadgeFirstLesson,
	BadgeFirstQuiz,
	BadgePerfectQuiz,
	BadgeStreak7,
	BadgeSubjectMaster,
}

// BadgeByID looks up a badge definition.
func BadgeByID(id string) (BadgeDef, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDef{}, false
}

// AchievementDef describes an achievement's goal and reward.
type AchievementDef struct {
	ID          string
	Name        string
	Description string
	XPReward    int
	Total       int
}

// Achievement ids.
const (
	AchievementFiveLessons = "complete_5_lessons"
	AchievementTenQuizzes  = "complete_10_quizzes"
	AchievementStreak30    = "streak_30"
	AchievementFivePerfect = "perfect_5_quizzes"
	AchievementAllMath     = "complete_all_math"
)

const (
	xpPerLesson     = 20
	xpPerQuiz       = 30
	xpPerBadge      = 25
	streakBadgeDays = 7
	perfectScore    = 100
	mathSubjectID   = "mathematics"
)

// Achievements lists every achievement in display order.
var Achievements = []AchievementDef{
	{ID: AchievementFiveLessons, Name: "Learning Enthusiast", Description: "Complete 5 lessons", XPReward: 50, Total: 5},
	{ID: AchievementTenQuizzes, Name: "Quiz Champion", Description: "Complete 10 quizzes", XPReward: 100, Total: 10},
	{ID: AchievementStreak30, Name: "Monthly Dedication", Description: "Maintain a 30-day learning streak", XPReward: 200, Total: 30},
	{ID: AchievementFivePerfect, Name: "Quiz Perfectionist", Description: "Get a perfect score on 5 quizzes", XPReward: 150, Total: 5},
	{ID: AchievementAllMath, Name: "Math Wizard", Description: "Complete all mathematics topics", XPReward: 300, Total: 1},
}
