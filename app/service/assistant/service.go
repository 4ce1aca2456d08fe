// Package assistant ties the backend call, response classification and
// speech playback together around an in-memory transcript. It is the
// seam the rendering layer talks to.
package assistant

import (
	"context"
	"log/slog"
	"time"

	"dashmate/app/client/backend"
	"dashmate/app/client/socket"
	"dashmate/app/config"
	"dashmate/app/service/classify"
	"dashmate/app/service/speech"

	"github.com/samber/do"
)

const apologyMessage = "I'm sorry, I'm having trouble reaching the assistant right now. Please try again."

type Service struct {
	cfg           *config.Config
	backendClient *backend.Client
	speechSvc     *speech.Service
	socketClient  *socket.Client

	transcript transcript
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:           do.MustInvoke[*config.Config](di),
		backendClient: do.MustInvoke[*backend.Client](di),
		speechSvc:     do.MustInvoke[*speech.Service](di),
		socketClient:  do.MustInvoke[*socket.Client](di),
	}

	// Responses pushed over the socket render the same way as ones
	// pulled over HTTP.
	s.socketClient.AddListener(s.onFrame)

	return s, nil
}

// HandleUtterance runs one assistant turn: user entry, backend round
// trip, classified assistant entry, spoken summary. A transport
// failure becomes an apology entry in the transcript; the real error
// is logged, never shown to the end user.
func (s *Service) HandleUtterance(ctx context.Context, text string, location *backend.Location) Entry {
	s.transcript.add(Entry{
		Role:      RoleUser,
		Content:   text,
		Timestamp: time.Now(),
	})

	reply, err := s.backendClient.Process(ctx, text, location)
	if err != nil {
		slog.Error("Backend call failed", "text", text, "error", err)

		apology := classify.Classify(apologyMessage)
		entry := Entry{
			Role:      RoleAssistant,
			Content:   apologyMessage,
			Result:    &apology,
			Timestamp: time.Now(),
		}
		s.transcript.add(entry)

		return entry
	}

	return s.acceptResponse(ctx, reply.Response, reply.ActionsTaken)
}

func (s *Service) acceptResponse(ctx context.Context, response string, actions []string) Entry {
	result := classify.Classify(response)

	entry := Entry{
		Role:         RoleAssistant,
		Content:      response,
		Result:       &result,
		ActionsTaken: actions,
		Timestamp:    time.Now(),
	}
	s.transcript.add(entry)

	s.speechSvc.Speak(ctx, response)

	return entry
}

// onFrame handles inbound realtime frames. Only response frames feed
// the transcript; everything else is logged and ignored.
func (s *Service) onFrame(frame any) {
	obj, ok := frame.(map[string]any)
	if !ok {
		return
	}

	frameType, _ := obj["type"].(string)
	if frameType != "response" {
		slog.Debug("Ignoring realtime frame", "type", frameType)
		return
	}

	response, _ := obj["response"].(string)
	if response == "" {
		return
	}

	var actions []string
	if rawActions, ok := obj["actions_taken"].([]any); ok {
		for _, action := range rawActions {
			if str, ok := action.(string); ok {
				actions = append(actions, str)
			}
		}
	}

	s.acceptResponse(context.Background(), response, actions)
}

func (s *Service) Transcript() []Entry {
	return s.transcript.snapshot()
}
