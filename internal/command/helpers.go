package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quillchat/quill/internal/api"
	"github.com/quillchat/quill/internal/db"
	"github.com/quillchat/quill/pkg/config"
)

// appContext bundles what most commands need: config, the local mirror, and
// a logger.
type appContext struct {
	cfg   *config.Config
	store *db.Store
	log   *zap.Logger
}

func newAppContext(cmd *cobra.Command) (*appContext, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	return &appContext{cfg: cfg, store: store, log: logger}, nil
}

func (a *appContext) close() {
	_ = a.store.Close()
	_ = a.log.Sync()
}

// connect validates credentials and builds the API client.
func (a *appContext) connect() (*api.Client, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	return api.NewClient(a.cfg.Server.URL, a.cfg.Server.UserID, a.cfg.Server.Token)
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
	return err
}
