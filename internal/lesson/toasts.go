package lesson

import (
	"fmt"

	"github.com/suguru-ai/smartclass/internal/gamification"
	"github.com/suguru-ai/smartclass/internal/notify"
)

// ToastsFor turns badge, achievement and level-up events into toasts.
// Other events are covered by the caller's own toast.
func ToastsFor(events []gamification.Event) []notify.Toast {
	var toasts []notify.Toast
	for _, e := range events {
		switch e.Type {
		case gamification.EventBadgeEarned:
			toasts = append(toasts, notify.Toast{
				Title:       "Badge Earned!",
				Description: fmt.Sprint(e.Data["name"]),
			})
		case gamification.EventAchievementCompleted:
			toasts = append(toasts, notify.Toast{
				Title:       "Achievement Unlocked!",
				Description: fmt.Sprint(e.Data["name"]),
			})
		case gamification.EventLevelUp:
			toasts = append(toasts, notify.Toast{
				Title:       "Level Up!",
				Description: fmt.Sprintf("You reached level %v", e.Data["to"]),
			})
		}
	}
	return toasts
}
