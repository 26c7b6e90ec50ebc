package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/utilitybox/internal/archive"
	"github.com/dmitrijs2005/utilitybox/internal/archive/remote"
	"github.com/dmitrijs2005/utilitybox/internal/client/config"
	"github.com/dmitrijs2005/utilitybox/internal/client/repositories"
	"github.com/dmitrijs2005/utilitybox/internal/client/services"
	"github.com/dmitrijs2005/utilitybox/internal/cryptox"
	"github.com/dmitrijs2005/utilitybox/internal/logging"
	"github.com/dmitrijs2005/utilitybox/internal/oplog"
)

type App struct {
	config  *config.Config
	service services.OperationService
	repos   *repositories.Repositories
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the application from cfg: resource folders, diagnostic
// logger on stderr, history journal (unless disabled) and S3 uploader (when
// a bucket is configured).
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	suite, err := cryptox.ParseSuite(cfg.Cipher)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	deps := services.Deps{
		Logger:   logger,
		FileLog:  oplog.NewFileLog(cfg.LogsDir()),
		Sink:     NewTerminalSink(os.Stdout),
		Archiver: archive.New(cfg.DefaultDir, cfg.RarBinary, cfg.ToolTimeout),
		KeysDir:  cfg.KeysDir(),
		Suite:    suite,
	}

	var repos *repositories.Repositories
	if cfg.HistoryDB != "" {
		repos, err = repositories.InitDatabase(ctx, cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("error initializing history database: %w", err)
		}
		deps.Journal = repos.Journal(cfg.HistoryKeep)
	}

	if cfg.S3.Bucket != "" {
		up, err := remote.NewS3Uploader(ctx, remote.Settings{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			if repos != nil {
				_ = repos.Close()
			}
			return nil, fmt.Errorf("error configuring archive upload: %w", err)
		}
		deps.Uploader = up
	}

	return &App{
		config:  cfg,
		service: services.NewOperationService(deps),
		repos:   repos,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)
	printlnFn("Welcome to utilitybox (type 'help' for commands)")
	runREPL(ctx, a, a.reader)
}

func (a *App) close(ctx context.Context) {
	if a.repos == nil {
		return
	}
	if err := a.repos.Close(); err != nil {
		a.logger.Warn(ctx, "closing history database", "error", err)
	}
}
