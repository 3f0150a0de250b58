package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wordwar/internal/config"
	"github.com/vovakirdan/wordwar/internal/dictionary"
	"github.com/vovakirdan/wordwar/internal/session"
	"github.com/vovakirdan/wordwar/internal/storage"
)

// app bundles what every command needs: config, logger, dictionary and an
// optional store.
type app struct {
	cfg    config.Config
	logger *log.Logger
	dict   *dictionary.WordList
	store  *storage.Store
}

// loadApp reads config and applies global flag overrides. The store is not
// opened; see openStore.
func loadApp(stderr io.Writer) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "wordwar",
		Level:           level,
	})

	dictPath, err := config.ExpandHome(cfg.Dictionary.Path)
	if err != nil {
		return nil, err
	}
	dict, err := dictionary.Open(dictPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("dictionary loaded", "words", dict.Len(), "path", dictPath)

	return &app{cfg: cfg, logger: logger, dict: dict}, nil
}

// openStore opens the games database. Commands that only read saved games
// treat failure as fatal.
func (a *app) openStore() error {
	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

// table returns a session table backed by the store if one is open.
func (a *app) table() *session.Table {
	var saver session.Saver
	if a.store != nil {
		saver = a.store
	}
	return session.New(saver, a.dict, a.cfg.Layout(), a.logger)
}

// Close releases the store.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cannot close database", "error", err)
		}
	}
}

// withStore loads the app and opens the store, failing if it cannot.
func withStore() (*app, error) {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return nil, err
	}
	if err := a.openStore(); err != nil {
		return nil, err
	}
	return a, nil
}
