package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"schemecard/internal/config"
	"schemecard/internal/files"
	"schemecard/internal/handlers"
	"schemecard/internal/logging"
	"schemecard/internal/services"
	"schemecard/internal/shell"
)

func main() {
	_ = godotenv.Load()

	logger := logging.New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("NO_COLOR") == "")

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	assetLoader := files.NewAssetLoader(
		cfg.AssetsDir,
		cfg.TemplateFile,
		map[string]string{
			config.FamilyTitle: cfg.TitleFontFile,
			config.FamilyBody:  cfg.BodyFontFile,
		},
		logger,
	)
	assets := assetLoader.Load()

	editorService, err := services.NewEditorService(
		cfg,
		assets,
		files.NewLocalFileManager(cfg.MaxFileSize),
		logger,
	)
	if err != nil {
		logger.Error("failed to start editor", "error", err)
		os.Exit(1)
	}
	defer editorService.Close()

	console := shell.NewConsole(os.Stdin, os.Stdout, "card> ", logger)
	commandHandler := handlers.NewCommandHandler(editorService, console, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = console.SendText(ctx, "🎴 Scheme card editor. Type help for commands.")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := console.Start(ctx, commandHandler.HandleCommand); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("console stopped", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		cancel()
		<-done
	case <-done:
	}

	fmt.Println("\nShutting down...")
}
