package app

import (
	"context"
	"time"

	"github.com/doculaw-ai/doculaw/internal/chat"
	"github.com/doculaw-ai/doculaw/internal/config"
	"github.com/doculaw-ai/doculaw/internal/documents"
	"github.com/doculaw-ai/doculaw/internal/logger"
	"github.com/doculaw-ai/doculaw/internal/objectstore"
	"github.com/doculaw-ai/doculaw/internal/responder"
	"github.com/doculaw-ai/doculaw/internal/store"
	"github.com/doculaw-ai/doculaw/internal/store/memstore"
	"github.com/doculaw-ai/doculaw/internal/store/pgstore"
)

type App struct {
	Store   store.Store
	Objects objectstore.ObjectStore
	Docs    *documents.Service
	Chat    *chat.Service
	Server  *Server

	log      *logger.Logger
	closeLLM func() error
}

// NewApp wires the whole application. Each backing concern has a real and a
// local implementation; the config decides which one runs.
func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	appCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	a := &App{log: log}

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.New(appCtx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.Store = pg
		log.Info("database store initialized")
	} else {
		a.Store = memstore.New(memstore.WithLatency(cfg.MockLatency))
		log.Info("in-memory store initialized", "latency", cfg.MockLatency)
	}

	if cfg.AwsAccessKey != "" && cfg.AwsSecretKey != "" {
		s3Store, err := objectstore.NewS3Store(appCtx, cfg.AwsAccessKey, cfg.AwsSecretKey, cfg.AwsRegion, cfg.BucketName)
		if err != nil {
			return nil, err
		}
		a.Objects = s3Store
		log.Info("S3 object store initialized", "bucket", cfg.BucketName)
	} else {
		local, err := objectstore.NewLocalStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.Objects = local
		log.Info("local object store initialized", "dir", cfg.DataDir)
	}

	var strategy responder.Strategy
	if cfg.AIAPIKey != "" {
		gemini, err := responder.NewGemini(appCtx, cfg.AIAPIKey, cfg.GenModel)
		if err != nil {
			return nil, err
		}
		strategy = gemini
		a.closeLLM = gemini.Close
		log.Info("gemini responder initialized", "model", cfg.GenModel)
	} else {
		strategy = responder.NewCanned()
		log.Info("canned responder initialized")
	}

	a.Docs = documents.NewService(a.Store, a.Objects, documents.NewDocconvExtractor(), log)

	chatCfg := chat.DefaultConfig()
	chatCfg.ThinkDelay = cfg.ThinkDelay
	a.Chat = chat.NewService(a.Store, strategy, chatCfg, log)

	a.Server = NewServer(cfg, a.Store, a.Docs, a.Chat, log)

	return a, nil
}

func (a *App) Close() {
	if a.closeLLM != nil {
		_ = a.closeLLM()
	}
	if a.Store != nil {
		_ = a.Store.Close()
	}
}
