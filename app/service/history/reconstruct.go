package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/elliotchance/pie/v2"
)

// A gap of more than this between two interactions starts a new
// session even on the same calendar date.
const sessionGap = 30 * time.Minute

const dateLayout = "2006-01-02"

// Reconstruct groups a flat interaction log into display sessions,
// most recent first. Caller order does not matter: input is sorted by
// timestamp ascending before grouping.
func Reconstruct(interactions []Interaction) []Session {
	return ReconstructAt(interactions, time.Now())
}

// ReconstructAt is Reconstruct with an explicit "now" for the relative
// display labels.
func ReconstructAt(interactions []Interaction, now time.Time) []Session {
	if len(interactions) == 0 {
		return []Session{}
	}

	sorted := pie.SortUsing(interactions, func(a, b Interaction) bool {
		return a.Timestamp.Before(b.Timestamp)
	})

	var sessions []Session
	var current *Session

	for _, interaction := range sorted {
		date := interaction.Timestamp.Format(dateLayout)

		startsNew := current == nil ||
			current.Date != date ||
			interaction.Timestamp.Sub(current.LastActivity) > sessionGap

		if startsNew {
			sessions = append(sessions, Session{
				ID:           fmt.Sprintf("session-%d", interaction.Timestamp.UnixMilli()),
				Date:         date,
				Label:        dateLabel(interaction.Timestamp, now),
				StartedAt:    interaction.Timestamp,
				LastActivity: interaction.Timestamp,
			})
			current = &sessions[len(sessions)-1]
		}

		// One persisted interaction bundles a request/response pair:
		// the user turn first, then the agent turn.
		if input := strings.TrimSpace(interaction.UserInput); input != "" {
			current.Messages = append(current.Messages, Message{
				Role:         RoleUser,
				Content:      input,
				Timestamp:    interaction.Timestamp,
				ActionsTaken: interaction.ActionsTaken,
			})
		}

		if response := strings.TrimSpace(interaction.AgentResponse); response != "" {
			current.Messages = append(current.Messages, Message{
				Role:         RoleAssistant,
				Content:      response,
				Timestamp:    interaction.Timestamp,
				AgentID:      interaction.AgentID,
				ActionsTaken: interaction.ActionsTaken,
			})
		}

		current.LastActivity = interaction.Timestamp
		current.MessageCount = len(current.Messages)
	}

	return pie.Reverse(sessions)
}

func dateLabel(t, now time.Time) string {
	day := truncateToDay(t)
	today := truncateToDay(now)

	switch days := int(today.Sub(day).Hours() / 24); {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case t.Year() == now.Year():
		return t.Format("Jan 2")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
