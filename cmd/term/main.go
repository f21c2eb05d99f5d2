package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ericzhangohoh/caplet/internal/bootstrap"
	"github.com/ericzhangohoh/caplet/internal/domain"
	infra "github.com/ericzhangohoh/caplet/internal/infrastructure"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	"github.com/ericzhangohoh/caplet/internal/interfaces/term"
	"github.com/spf13/pflag"
)

func main() {
	courseID := pflag.String("course", "", "course to open")
	moduleID := pflag.String("module", "", "module to open, the first one when empty")
	token := pflag.String("token", os.Getenv("CAPLET_TOKEN"), "viewer token sent to the progress backend")

	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}
	if *courseID == "" {
		fmt.Fprintln(os.Stderr, "usage: term --course <id> [--module <id>]")
		os.Exit(2)
	}

	// the terminal owns stdout, logs only go to a file
	logPath := option.Logging.FilePath
	if logPath == "" {
		logPath = os.DevNull
	}
	logger, err := logging.NewLogger(&logging.Config{
		FilePath: logPath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      infra.EnvProduction,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	defer logger.Sync()

	backends, err := bootstrap.NewBackends(option, logger)
	if err != nil {
		log.Fatalf("Failed to create backends: %s\n", err)
	}
	defer backends.Close()

	browser := term.NewBrowser(backends.CourseUseCase,
		domain.ID(*courseID), domain.ID(*moduleID),
		domain.Viewer{Token: *token}, option.RequestTimeout, logger)
	if _, err := tea.NewProgram(browser).Run(); err != nil {
		log.Fatal(err)
	}
}
