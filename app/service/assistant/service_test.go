package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"dashmate/app/client/backend"
	"dashmate/app/client/socket"
	"dashmate/app/config"
	"dashmate/app/service/classify"
	"dashmate/app/service/speech"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSynth struct {
	mu     sync.Mutex
	spoken []string
}

func (s *recordingSynth) Speak(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spoken = append(s.spoken, text)
	return nil
}

func (s *recordingSynth) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]string, len(s.spoken))
	copy(result, s.spoken)
	return result
}

type idleRecognizer struct{}

func (idleRecognizer) Start(_ context.Context) error { return nil }
func (idleRecognizer) Stop()                         {}

func newTestService(t *testing.T, baseURL string) (*Service, *recordingSynth) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Backend.BaseURL = baseURL
	cfg.Backend.UserID = "user-1"
	cfg.Backend.Timeout = time.Second
	cfg.Socket.URL = "ws://127.0.0.1:1/ws"
	cfg.Socket.MaxAttempts = 5
	cfg.Socket.BaseDelay = time.Millisecond

	synth := &recordingSynth{}

	di := do.New()
	t.Cleanup(func() { _ = di.Shutdown() })

	do.ProvideValue(di, context.Background())
	do.ProvideValue(di, cfg)
	do.ProvideValue(di, speech.Synthesizer(synth))
	do.ProvideValue(di, speech.Recognizer(idleRecognizer{}))
	do.Provide(di, backend.NewClient)
	do.Provide(di, socket.NewClient)
	do.Provide(di, speech.New)
	do.Provide(di, New)

	return do.MustInvoke[*Service](di), synth
}

func TestHandleUtterance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response":      "Found 1 restaurants near you\n1. 📍 Cafe A (0.5 mi)",
			"actions_taken": []string{"place_search"},
		})
	}))
	defer server.Close()

	svc, synth := newTestService(t, server.URL)

	entry := svc.HandleUtterance(context.Background(), "find restaurants", nil)

	assert.Equal(t, RoleAssistant, entry.Role)
	require.NotNil(t, entry.Result)
	assert.Equal(t, classify.KindPlaceSearch, entry.Result.Kind)
	assert.Equal(t, []string{"place_search"}, entry.ActionsTaken)

	transcript := svc.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, RoleUser, transcript[0].Role)
	assert.Equal(t, "find restaurants", transcript[0].Content)

	require.Eventually(t, func() bool {
		return len(synth.snapshot()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "I found 1 restaurants near you. Including Cafe A.", synth.snapshot()[0])
}

func TestHandleUtteranceTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	svc, synth := newTestService(t, server.URL)

	entry := svc.HandleUtterance(context.Background(), "hello", nil)

	// The user sees an apology in the transcript, never the transport
	// error itself.
	assert.Equal(t, RoleAssistant, entry.Role)
	assert.Contains(t, entry.Content, "I'm sorry")
	require.NotNil(t, entry.Result)
	assert.Equal(t, classify.KindGeneral, entry.Result.Kind)

	transcript := svc.Transcript()
	require.Len(t, transcript, 2)
	assert.Contains(t, transcript[1].Content, "I'm sorry")

	assert.Empty(t, synth.snapshot())
}

func TestInboundResponseFrame(t *testing.T) {
	svc, synth := newTestService(t, "http://127.0.0.1:1")

	svc.onFrame(map[string]any{
		"type":          "response",
		"response":      "Doors locked.",
		"actions_taken": []any{"door_control"},
	})

	transcript := svc.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, RoleAssistant, transcript[0].Role)
	assert.Equal(t, "Doors locked.", transcript[0].Content)
	assert.Equal(t, []string{"door_control"}, transcript[0].ActionsTaken)

	require.Eventually(t, func() bool {
		return len(synth.snapshot()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, "Doors locked.", synth.snapshot()[0])
}

func TestNonResponseFramesIgnored(t *testing.T) {
	svc, _ := newTestService(t, "http://127.0.0.1:1")

	svc.onFrame(map[string]any{"type": "pong"})
	svc.onFrame("just a string frame")
	svc.onFrame(map[string]any{"type": "response"})

	assert.Empty(t, svc.Transcript())
}
