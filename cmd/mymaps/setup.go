package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/entrhq/mymaps/pkg/config"
	"github.com/entrhq/mymaps/pkg/logging"
	"github.com/entrhq/mymaps/pkg/maps/store"
)

// options holds the global flags. Flags win over config file values.
type options struct {
	dataFile   string
	configPath string
	onCorrupt  string
	verbose    bool
}

// session is everything a command needs once config, logging and the
// store are up.
type session struct {
	store  *store.Store
	logger *logging.Logger
	ui     *config.UISection
}

func (s *session) Close() {
	if s.logger != nil {
		s.logger.Close()
	}
}

// open loads the config, starts the session log and loads the store.
func (o *options) open() (*session, error) {
	configPath := o.configPath
	if configPath == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(dir, "config.json")
	}
	appDir := filepath.Dir(configPath)

	if err := config.Initialize(configPath); err != nil {
		return nil, fmt.Errorf("failed to initialize configuration: %w", err)
	}

	logging.SetBaseDir(appDir)
	logger, err := logging.NewLogger("mymaps")
	if err != nil && o.verbose {
		fmt.Fprintf(os.Stderr, "Warning: logging to stderr: %v\n", err)
	}
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger.InstallSlog(level)

	storage := config.GetStorage()
	home, _ := os.UserHomeDir()
	dataFile := o.dataFile
	if dataFile == "" {
		dataFile = storage.ResolveDataFile(appDir, home)
	}
	onCorrupt := o.onCorrupt
	if onCorrupt == "" {
		onCorrupt = storage.CorruptionPolicy()
	}
	policy, err := store.ParseCorruptionPolicy(onCorrupt)
	if err != nil {
		logger.Close()
		return nil, err
	}

	st, err := store.New(dataFile, store.Options{OnCorrupt: policy})
	if err != nil {
		logger.Close()
		return nil, err
	}
	if _, err := st.Load(); err != nil {
		logger.Errorf("load %s: %v", dataFile, err)
		logger.Close()
		if errors.Is(err, store.ErrCorrupt) {
			return nil, fmt.Errorf("%w\nhint: rerun with --on-corrupt=quarantine to move the file aside and start empty", err)
		}
		return nil, err
	}
	logger.Infof("session %s: %d maps from %s", logger.SessionID(), st.Len(), dataFile)
	if moved := st.Quarantined(); moved != "" {
		logger.Warnf("corrupt data file moved to %s", moved)
	}

	return &session{store: st, logger: logger, ui: config.GetUI()}, nil
}
