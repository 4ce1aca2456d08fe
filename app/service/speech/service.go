package speech

import (
	"context"
	"log/slog"
	"sync/atomic"

	"dashmate/app/config"

	"github.com/samber/do"
)

// Synthesizer is the playback capability provider (browser TTS in the
// original client). It blocks until the utterance finishes.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Recognizer is the voice capture capability provider. Stop must be
// safe to call at any time, including when no capture is running.
type Recognizer interface {
	Start(ctx context.Context) error
	Stop()
}

type Service struct {
	cfg        *config.Config
	synth      Synthesizer
	recognizer Recognizer

	speaking  atomic.Bool
	listening atomic.Bool
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		cfg:        do.MustInvoke[*config.Config](di),
		synth:      do.MustInvoke[Synthesizer](di),
		recognizer: do.MustInvoke[Recognizer](di),
	}, nil
}

// Speak summarizes a raw response and plays it. At most one utterance
// is audible at a time: a request arriving while a previous one is
// still playing is dropped at entry, not queued. Returns whether
// playback was started.
func (s *Service) Speak(ctx context.Context, raw string) bool {
	if s.cfg.Speech.Disabled {
		return false
	}

	summary := Summarize(raw)
	if summary == "" {
		return false
	}

	if !s.speaking.CompareAndSwap(false, true) {
		slog.Debug("Dropped utterance, already speaking", "summary", summary)
		return false
	}

	go func() {
		defer s.speaking.Store(false)

		if err := s.synth.Speak(ctx, summary); err != nil {
			slog.Error("Failed to speak summary", "summary", summary, "error", err)
		}
	}()

	return true
}

func (s *Service) Speaking() bool {
	return s.speaking.Load()
}

// StartCapture begins a voice capture session. Only one session runs
// at a time.
func (s *Service) StartCapture(ctx context.Context) error {
	if !s.listening.CompareAndSwap(false, true) {
		return nil
	}

	if err := s.recognizer.Start(ctx); err != nil {
		s.listening.Store(false)
		return err
	}

	return nil
}

// StopCapture stops the capture session. The listening indicator
// returns to idle even when no result ever arrived.
func (s *Service) StopCapture() {
	s.recognizer.Stop()
	s.listening.Store(false)
}

func (s *Service) Listening() bool {
	return s.listening.Load()
}
