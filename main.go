package main

import (
	"context"
	"dashmate/app/client/backend"
	"dashmate/app/client/socket"
	"dashmate/app/client/voice"
	"dashmate/app/config"
	"dashmate/app/service/assistant"
	"dashmate/app/service/history"
	"dashmate/app/service/speech"
	"dashmate/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, backend.NewClient)
	do.Provide(di, socket.NewClient)
	do.Provide(di, voice.NewSynthesizer)
	do.Provide(di, voice.NewRecognizer)
	do.Provide(di, speech.New)
	do.Provide(di, history.New)
	do.Provide(di, assistant.New)

	do.Provide(di, func(di *do.Injector) (history.MemoryFetcher, error) {
		return do.MustInvoke[*backend.Client](di), nil
	})

	slog.Info("Client core started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	// The assistant registers its socket listener on construction, so
	// build it before the first connect.
	do.MustInvoke[*assistant.Service](di)

	socketClient := do.MustInvoke[*socket.Client](di)
	socketClient.SetStateListener(func(state socket.State, attempt int) {
		slog.Info("Socket state changed", "state", state.String(), "attempt", attempt)
	})
	socketClient.Connect(cfg.Backend.UserID)

	go func() {
		sessions, err := do.MustInvoke[*history.Service](di).Load(appCtx, cfg.Backend.UserID)
		if err != nil {
			slog.Error("Failed to load interaction history", "error", err)
			return
		}

		slog.Info("Loaded interaction history", "sessions", len(sessions))
	}()

	<-appCtx.Done()
}
