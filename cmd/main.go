package main

import (
	"log"

	"github.com/ericzhangohoh/caplet/internal/bootstrap"
	infra "github.com/ericzhangohoh/caplet/internal/infrastructure"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/logging"
	ihttp "github.com/ericzhangohoh/caplet/internal/interfaces/http"
	"github.com/ericzhangohoh/caplet/internal/landing"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	defer logger.Sync()

	content, err := landing.LoadContent(option.Content.File)
	if err != nil {
		logger.Fatal("Failed to load landing content", zap.Error(err))
	}

	backends, err := bootstrap.NewBackends(option, logger)
	if err != nil {
		logger.Fatal("Failed to create backends", zap.Error(err))
	}
	defer backends.Close()

	probes := make([]ihttp.Pinger, 0, len(backends.Probes))
	for _, p := range backends.Probes {
		probes = append(probes, p)
	}

	if err := ihttp.Serve(option, backends.CourseUseCase, content, probes, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
