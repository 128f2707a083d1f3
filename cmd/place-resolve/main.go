package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"placefinder_backend/internal/places"
	"placefinder_backend/platform/ai/gemini"
	"placefinder_backend/platform/config"
	"placefinder_backend/platform/logger"
	"placefinder_backend/platform/validator"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: place-resolve <query text>")
		os.Exit(2)
	}
	text := strings.Join(os.Args[1:], " ")

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting place resolution", "text", text)

	ctx := context.Background()

	completer, err := gemini.NewClient(ctx, gemini.Config{
		APIKey: cfg.GetGeminiAPIKey(),
		Model:  cfg.GetGeminiModel(),
	})
	if err != nil {
		log.Error("failed to initialize completion client", "error", err)
		panic("failed to initialize completion client: " + err.Error())
	}

	pipeline := places.NewModule(cfg, completer, validator.New(), log).Pipeline()

	result, err := pipeline.Resolve(ctx, text)
	if err != nil {
		log.Error("resolution failed", "error", err)
		os.Exit(1)
	}

	log.Info("resolution complete", "query", result.Query, "features", len(result.GeoJSON.Features))

	encoded, err := json.MarshalIndent(result.GeoJSON, "", "  ")
	if err != nil {
		log.Error("failed to encode feature collection", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}
