package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/iniget/iniget/internal/config"
	"github.com/iniget/iniget/internal/inifile"
)

// App encapsulates a single configured lookup run.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	stdout io.Writer
}

// New initializes the application from the provided configuration. The
// looked-up value is written to stdout, which is injected so tests can
// capture it.
func New(cfg config.Config, logger *zap.Logger, stdout io.Writer) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		stdout: stdout,
	}
}

// Run loads the configured INI file, resolves the requested (section, key)
// pair, and writes the value followed by a newline to stdout. A missing
// section or key is not an error: the configured fallback (empty by default)
// is written instead.
func (a *App) Run() error {
	a.logger.Debug("loading config file",
		zap.String("path", a.cfg.FilePath),
		zap.String("top_section", a.cfg.TopSection),
	)

	doc, err := inifile.Load(a.cfg.FilePath, inifile.WithTopSection(a.cfg.TopSection))
	if err != nil {
		return err
	}

	a.logger.Debug("config file parsed",
		zap.Int("sections", len(doc.Sections())),
	)

	value, found := doc.Lookup(a.cfg.Section, a.cfg.Key)
	if !found {
		value = a.cfg.Fallback
		a.logger.Debug("key not found, using fallback",
			zap.String("section", a.cfg.Section),
			zap.String("key", a.cfg.Key),
			zap.String("fallback", a.cfg.Fallback),
		)
	} else {
		a.logger.Debug("key resolved",
			zap.String("section", a.cfg.Section),
			zap.String("key", a.cfg.Key),
		)
	}

	if _, err := fmt.Fprintln(a.stdout, value); err != nil {
		return fmt.Errorf("write value: %w", err)
	}
	return nil
}
