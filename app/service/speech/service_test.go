package speech

import (
	"context"
	"testing"
	"time"

	"dashmate/app/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingSynth struct {
	started chan string
	release chan struct{}
}

func newBlockingSynth() *blockingSynth {
	return &blockingSynth{
		started: make(chan string, 8),
		release: make(chan struct{}),
	}
}

func (s *blockingSynth) Speak(_ context.Context, text string) error {
	s.started <- text
	<-s.release
	return nil
}

type fakeRecognizer struct {
	stopped bool
}

func (r *fakeRecognizer) Start(_ context.Context) error { return nil }
func (r *fakeRecognizer) Stop()                         { r.stopped = true }

func newTestService(synth Synthesizer, recognizer Recognizer) *Service {
	return &Service{
		cfg:        &config.Config{},
		synth:      synth,
		recognizer: recognizer,
	}
}

func TestSpeakDropsConcurrentRequests(t *testing.T) {
	synth := newBlockingSynth()
	svc := newTestService(synth, &fakeRecognizer{})

	require.True(t, svc.Speak(context.Background(), "📍 You are in Eluru"))

	select {
	case <-synth.started:
	case <-time.After(time.Second):
		t.Fatal("synthesizer never started")
	}

	// A second request while the first utterance plays is dropped at
	// entry, not queued.
	assert.False(t, svc.Speak(context.Background(), "📍 You are in Vijayawada"))
	assert.True(t, svc.Speaking())

	close(synth.release)

	require.Eventually(t, func() bool {
		return !svc.Speaking()
	}, time.Second, 5*time.Millisecond)

	assert.Len(t, synth.started, 0)
}

func TestSpeakSilentSummaryDoesNotEngageGate(t *testing.T) {
	synth := newBlockingSynth()
	svc := newTestService(synth, &fakeRecognizer{})
	svc.cfg.Speech.Disabled = true

	assert.False(t, svc.Speak(context.Background(), "📍 You are in Eluru"))
	assert.False(t, svc.Speaking())
}

func TestCaptureStopsBackToIdle(t *testing.T) {
	recognizer := &fakeRecognizer{}
	svc := newTestService(newBlockingSynth(), recognizer)

	require.NoError(t, svc.StartCapture(context.Background()))
	assert.True(t, svc.Listening())

	// Stopping returns the indicator to idle even when no result ever
	// arrived.
	svc.StopCapture()
	assert.False(t, svc.Listening())
	assert.True(t, recognizer.stopped)

	// Stop without a running capture is safe.
	svc.StopCapture()
	assert.False(t, svc.Listening())
}
