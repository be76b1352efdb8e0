// Package container provides dependency injection for the finanzas
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"os"
	"time"

	"jortega/finanzas/internal/auth"
	"jortega/finanzas/internal/config"
	"jortega/finanzas/internal/importer"
	"jortega/finanzas/internal/logging"
	"jortega/finanzas/internal/server"
	"jortega/finanzas/internal/store"
)

// Container holds all application dependencies and provides methods to
// access them. All fields are private and can only be accessed through
// getter methods, so dependencies cannot be swapped after initialization.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.Store
	classifier *importer.Classifier
	importer   *importer.Importer
	verifier   *auth.Verifier
	server     *server.Server
}

// NewContainer creates and wires all application dependencies. The store
// connection is established here, so a failing database surfaces at
// startup rather than on the first request.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	st, err := store.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	classifier, err := buildClassifier(cfg.Import.RulesFile)
	if err != nil {
		return nil, err
	}

	imp := importer.New(st.Transactions(), st.Categories(), st.Payees(), classifier, logger)

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, err
	}

	srv := server.New(
		server.Options{
			Addr:         cfg.HTTP.Addr,
			ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		},
		verifier,
		server.NewImportHandler(imp, cfg.Import.MaxFileMB, logger),
		server.NewEntityHandler(st, logger),
		st,
		logger,
	)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "database", Value: cfg.Mongo.Database},
		logging.Field{Key: "addr", Value: cfg.HTTP.Addr})

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      st,
		classifier: classifier,
		importer:   imp,
		verifier:   verifier,
		server:     srv,
	}, nil
}

// buildClassifier loads classification rules from the configured file,
// falling back to the built-in rule set when no file is given.
func buildClassifier(rulesFile string) (*importer.Classifier, error) {
	if rulesFile == "" {
		return importer.NewClassifier(nil), nil
	}

	f, err := os.Open(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file %s: %w", rulesFile, err)
	}
	defer f.Close()

	rules, err := importer.LoadRules(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules file %s: %w", rulesFile, err)
	}
	return importer.NewClassifier(rules), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's store instance.
func (c *Container) GetStore() *store.Store {
	return c.store
}

// GetImporter returns the container's importer instance.
func (c *Container) GetImporter() *importer.Importer {
	return c.importer
}

// GetServer returns the container's HTTP server instance.
func (c *Container) GetServer() *server.Server {
	return c.server
}

// Close performs cleanup of container resources.
func (c *Container) Close(ctx context.Context) error {
	if err := c.store.Close(ctx); err != nil {
		return err
	}
	c.logger.Info("Container closed")
	return nil
}
