package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/net/netutil"

	"ethicsreview/internal/adapters/ethereum"
	httpadapter "ethicsreview/internal/adapters/http"
	"ethicsreview/internal/adapters/memory"
	pg "ethicsreview/internal/adapters/postgres"
	"ethicsreview/internal/config"
	"ethicsreview/internal/logging"
	"ethicsreview/internal/metrics"
	"ethicsreview/internal/ports"
	"ethicsreview/internal/services/commands"
	"ethicsreview/internal/services/presentation"
	"ethicsreview/internal/services/readmodel"
	"ethicsreview/internal/services/session"
	"ethicsreview/internal/workers/eventwatcher"
)

func main() {
	cfg, cfgErr := config.Load()
	log := logging.New(cfg.Env, cfg.LogLevel)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	m := metrics.New()
	clock := clockwork.NewRealClock()

	// A form post is the operator's consent, so the server signs without a prompt.
	var provider ports.Provider
	wallet, err := ethereum.Dial(ctx, ethereum.WalletConfig{
		RPCURL:             cfg.RPCURL,
		Contract:           cfg.ContractAddress,
		KeystoreDir:        cfg.KeystoreDir,
		KeystorePassphrase: cfg.KeystorePassphrase,
		PrivateKey:         cfg.PrivateKey,
		Approve:            ethereum.AutoApprove,
	})
	if err != nil {
		log.Warn().Err(err).Msg("wallet provider unavailable")
	} else {
		provider = wallet
	}

	notes := presentation.NewNotifications(clock, cfg.NotificationTTL)
	binder := presentation.NewBinder(presentation.NewForms(), notes, cfg.ExpectedChainID, cfg.DateLocation)

	sessions := session.New(provider, cfg.ExpectedChainID, notes, binder, logging.Component(log, "session"))
	loader := readmodel.NewLoader(cfg.FetchWorkers, cfg.CallTimeout, m, logging.Component(log, "readmodel"))
	reader := readmodel.NewService(loader, sessions, binder, logging.Component(log, "readmodel"))
	cmds := commands.New(binder.Forms, reader, notes, m, logging.Component(log, "commands"))
	tracker := commands.NewTracker(ctx, cfg.TxTimeout, logging.Component(log, "tracker"))

	var projection ports.ProjectionStore
	if cfg.WatchEvents && wallet != nil {
		store, closeStore, err := openProjection(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()
		projection = store

		events := ethereum.NewEvents(wallet.Backend(), cfg.ContractAddress)
		w := eventwatcher.New(events, store, reader, m, clock, logging.Component(log, "eventwatcher"), eventwatcher.Config{
			Interval:   cfg.WatchInterval,
			StartBlock: cfg.WatchStartBlock,
		})
		go w.Run(ctx)
		log.Info().Dur("interval", cfg.WatchInterval).Uint64("start_block", cfg.WatchStartBlock).Msg("event watcher started")
	}

	sessions.CheckConnection(ctx)
	if sessions.Current() != nil {
		tracker.Go("load data", func(ctx context.Context) error {
			reader.Reload(ctx)
			return nil
		})
	}

	srv := httpadapter.New(httpadapter.Deps{
		Sessions:    sessions,
		Commands:    cmds,
		Tracker:     tracker,
		Binder:      binder,
		Reloader:    reader,
		Projection:  projection,
		Metrics:     m,
		CallTimeout: cfg.CallTimeout,
		CORSOrigins: cfg.CORSOrigins,
		Log:         logging.Component(log, "http"),
	}).NewHTTPServer(cfg.ListenAddr)

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return err
	}
	ln = netutil.LimitListener(ln, cfg.MaxConns)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Info().Str("addr", cfg.ListenAddr).Str("contract", cfg.ContractAddress.Hex()).Msg("listening")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
	tracker.Wait()
	return nil
}

// openProjection uses Postgres when DATABASE_URL is set, memory otherwise.
func openProjection(ctx context.Context, cfg config.Config, log zerolog.Logger) (ports.ProjectionStore, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("projection store: memory")
		return memory.NewProjection(), func() {}, nil
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info().Msg("projection store: postgres")
	return db, db.Close, nil
}
