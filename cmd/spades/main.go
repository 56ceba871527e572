package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/pixil98/go-service"
	"github.com/pixil98/go-spades/cmd/spades/command"
	"github.com/pkg/profile"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "loading .env: %v\n", err)
		os.Exit(1)
	}

	// The terminal ui owns the screen, so the process log can be sent to a file.
	if path := os.Getenv("SPADES_LOG_FILE"); path != "" {
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
			os.Exit(1)
		}
		defer logFile.Close()
		os.Stderr = logFile
	}

	profilePath := os.Getenv("SPADES_PROFILE_PATH")
	if profilePath == "" {
		profilePath = "."
	}
	switch os.Getenv("SPADES_PROFILE") {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profilePath), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.MemProfileAllocs, profile.ProfilePath(profilePath), profile.NoShutdownHook).Stop()
	}

	app, err := service.NewApp(&command.Config{}, command.BuildWorkers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating application: %v\n", err)
		os.Exit(1)
	}

	err = app.Run(context.Background())
	if err != nil {
		slog.Error("running application", "error", err)
		os.Exit(1)
	}

	slog.Info("exiting")
}
