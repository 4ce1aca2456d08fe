package backend

import (
	"encoding/json"
	"time"

	"dashmate/app/service/history"
)

// AgentReply is the backend's answer to one assistant turn. Response
// is the raw text fed to classification and speech summarization.
type AgentReply struct {
	Response     string         `json:"response"`
	ActionsTaken []string       `json:"actions_taken"`
	VehicleState map[string]any `json:"vehicle_state"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type processRequest struct {
	Text         string    `json:"text"`
	UserID       string    `json:"user_id"`
	UserLocation *Location `json:"user_location,omitempty"`
}

type memoryResponse struct {
	RecentInteractions []wireInteraction `json:"recent_interactions"`
}

// wireInteraction absorbs the backend's timestamp format: Python
// isoformat with or without a zone offset, which plain time.Time
// unmarshaling rejects.
type wireInteraction struct {
	UserInput     string   `json:"user_input"`
	AgentResponse string   `json:"agent_response"`
	AgentID       string   `json:"agent_id"`
	Timestamp     isoTime  `json:"timestamp"`
	ActionsTaken  []string `json:"actions_taken"`
}

func (w wireInteraction) toInteraction() history.Interaction {
	return history.Interaction{
		UserInput:     w.UserInput,
		AgentResponse: w.AgentResponse,
		AgentID:       w.AgentID,
		Timestamp:     time.Time(w.Timestamp),
		ActionsTaken:  w.ActionsTaken,
	}
}

type isoTime time.Time

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func (t *isoTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw == "" {
		*t = isoTime(time.Time{})
		return nil
	}

	var lastErr error
	for _, layout := range isoLayouts {
		parsed, err := time.Parse(layout, raw)
		if err == nil {
			*t = isoTime(parsed)
			return nil
		}
		lastErr = err
	}

	return lastErr
}
