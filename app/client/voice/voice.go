// Package voice provides stand-in speech capability providers. The
// real synthesis and capture primitives live in the embedding shell
// (browser APIs in the original client); these implementations keep
// the core runnable on a terminal.
package voice

import (
	"context"
	"fmt"
	"time"

	"dashmate/app/service/speech"

	"github.com/samber/do"
)

// charsPerSecond approximates playback duration so the speak gate
// behaves like real audio output.
const charsPerSecond = 15

type ConsoleSynthesizer struct{}

func NewSynthesizer(_ *do.Injector) (speech.Synthesizer, error) {
	return &ConsoleSynthesizer{}, nil
}

func (s *ConsoleSynthesizer) Speak(ctx context.Context, text string) error {
	fmt.Printf("[voice] %s\n", text)

	duration := time.Duration(len(text)/charsPerSecond+1) * time.Second

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(duration):
		return nil
	}
}

type NoopRecognizer struct{}

func NewRecognizer(_ *do.Injector) (speech.Recognizer, error) {
	return &NoopRecognizer{}, nil
}

func (r *NoopRecognizer) Start(_ context.Context) error {
	return nil
}

func (r *NoopRecognizer) Stop() {}
