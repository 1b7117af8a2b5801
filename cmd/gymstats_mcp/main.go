// Package main runs the gymstats MCP server over stdio (for local editor use).
// The same MCP server is also mounted on the main backend at /mcp over HTTP,
// so you can use either: stdio (this cmd) or the backend URL (no extra deploy).
package main

import (
	"context"
	"flag"
	"os"

	"github.com/2beens/gymstats/internal/config"
	gymstatsmcp "github.com/2beens/gymstats/internal/gymstats/mcp"
	"github.com/2beens/gymstats/internal/gymstats/progress"
	"github.com/2beens/gymstats/internal/gymstats/store"
	"github.com/2beens/gymstats/internal/gymstats/workout"
	"github.com/2beens/gymstats/internal/logging"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	envFile := flag.String("env-file", ".env", "optional .env file with secrets")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	secrets, err := config.LoadSecrets(*envFile)
	if err != nil {
		log.Fatalf("load secrets: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogFormatJSON,
		Environment:   cfg.Environment,
		ServiceName:   "gymstats-mcp",
		// stdout carries the MCP protocol
		Console: os.Stderr,
	})

	ctx := context.Background()
	backend, err := store.Open(ctx, store.OpenParams{
		Config:           cfg,
		PostgresPassword: secrets.PostgresPassword,
	})
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Errorf("close store: %s", err)
		}
	}()

	engine := workout.NewEngine(workout.EngineParams{Store: backend.Store})

	var schemaRepo gymstatsmcp.SchemaRepo
	if backend.Pool != nil {
		schemaRepo = gymstatsmcp.NewPoolSchemaRepo(backend.Pool)
	}
	server := gymstatsmcp.NewServer(schemaRepo, progress.NewAggregator(engine), engine)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %s", err)
	}
}
