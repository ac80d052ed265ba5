package main

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"gorm.io/gorm"

	"github.com/okian/nsl/internal/adapters/repository"
	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/config"
	"github.com/okian/nsl/pkg/logger"
)

// stack is everything a command needs once configuration is applied.
type stack struct {
	cfg    *config.Config
	logger logger.Logger
	svc    *service.Service
	db     *gorm.DB
}

// bootstrap loads configuration, initializes logging to logOut, opens the
// configured stores and starts the service.
func bootstrap(ctx context.Context, logOut io.Writer) (*stack, error) {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithOutput(logOut), logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	st := &stack{cfg: cfg, logger: log}

	rosterOpts := []repository.Option{repository.WithLogger(log.Named("roster"))}
	if enc := rosterEncoding(cfg.RosterEncoding); enc != nil {
		rosterOpts = append(rosterOpts, repository.WithEncoding(enc))
	}
	opts := []service.Option{
		service.WithLogger(log),
		service.WithRoster(repository.NewCSVRoster(cfg.Path(cfg.RosterFile), rosterOpts...)),
	}

	storeLog := repository.WithLogger(log.Named("store"))
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := repository.OpenSQLite(cfg.Path(cfg.SQLitePath))
		if err != nil {
			return nil, err
		}
		st.db = db
		opts = append(opts,
			service.WithSquadStore(repository.NewSQLSquadStore(db, storeLog)),
			service.WithCustomerStore(repository.NewSQLCustomerStore(db, storeLog)),
		)
	default:
		opts = append(opts,
			service.WithSquadStore(repository.NewCSVSquadStore(cfg.Path(cfg.SquadFile), storeLog)),
			service.WithCustomerStore(repository.NewCSVCustomerStore(cfg.Path(cfg.CustomerFile), storeLog)),
		)
	}

	st.svc = service.New(opts...)
	if err := st.svc.Start(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("start service: %w", err)
	}
	log.Info(ctx, "service started",
		logger.String("store_driver", cfg.StoreDriver),
		logger.String("data_dir", cfg.DataDir),
	)
	return st, nil
}

// Close stops the service and releases the database, if any.
func (s *stack) Close() {
	if s.svc != nil {
		s.svc.Stop()
	}
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		s.logger.Error(context.Background(), "close database failed", logger.Error(err))
	}
}

func rosterEncoding(name string) encoding.Encoding {
	if name == config.EncodingLatin1 {
		return charmap.ISO8859_1
	}
	return nil
}
