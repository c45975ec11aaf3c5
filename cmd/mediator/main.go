package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/polygonid/wallet-mediator/internal/api"
	"github.com/polygonid/wallet-mediator/internal/broadcast"
	"github.com/polygonid/wallet-mediator/internal/buildinfo"
	"github.com/polygonid/wallet-mediator/internal/config"
	"github.com/polygonid/wallet-mediator/internal/core/domain"
	"github.com/polygonid/wallet-mediator/internal/core/services"
	"github.com/polygonid/wallet-mediator/internal/db"
	"github.com/polygonid/wallet-mediator/internal/gateways"
	"github.com/polygonid/wallet-mediator/internal/health"
	"github.com/polygonid/wallet-mediator/internal/log"
	"github.com/polygonid/wallet-mediator/internal/metrics"
	"github.com/polygonid/wallet-mediator/internal/repositories"
	"github.com/polygonid/wallet-mediator/pkg/cache"
	httpclient "github.com/polygonid/wallet-mediator/pkg/http"
	"github.com/polygonid/wallet-mediator/pkg/pubsub"
)

const shutdownTimeout = 10 * time.Second

var build = buildinfo.Revision()

func main() {
	log.Info(context.Background(), "starting wallet mediator...", "revision", build)

	cfg, err := config.Load(".env")
	if err != nil {
		log.Error(context.Background(), "cannot load config", "err", err)
		return
	}

	ctx, cancel := context.WithCancel(log.NewContext(context.Background(), cfg.Log.Level, cfg.Log.Mode, os.Stdout))
	defer cancel()

	if err := cfg.Sanitize(); err != nil {
		log.Error(ctx, "there are errors in the configuration that prevent server to start", "err", err)
		return
	}

	sealer, err := repositories.NewSealer(cfg.SecretKey)
	if err != nil {
		log.Error(ctx, "cannot derive the storage key", "err", err)
		return
	}
	stores, err := openStores(ctx, cfg.Storage, sealer)
	if err != nil {
		log.Error(ctx, "cannot open the tenant store", "err", err, "provider", cfg.Storage.Provider)
		return
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error(ctx, "closing the tenant store", "err", err)
		}
	}()
	if err := stores.Provision(ctx, domain.GlobalTenant); err != nil {
		log.Error(ctx, "cannot provision the global tenant", "err", err)
		return
	}

	cachex, err := cache.NewCacheClient(ctx, cfg.Cache)
	if err != nil {
		log.Error(ctx, "cannot connect to the cache", "err", err, "provider", cfg.Cache.Provider)
		return
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	broadcaster := broadcast.New(cfg.Broadcast.QueueSize, m)
	if cfg.Broadcast.Backbone {
		ps, err := pubsub.NewPubSub(ctx, cfg.Cache)
		if err != nil {
			log.Error(ctx, "cannot connect the broadcast backbone", "err", err)
			return
		}
		defer func() {
			if err := ps.Close(); err != nil {
				log.Error(ctx, "closing the broadcast backbone", "err", err)
			}
		}()
		broadcaster.UseBackbone(ctx, ps, cfg.Broadcast.Channel)
	}

	conn := httpclient.NewRetryableClient(cfg.Agent.Timeout, cfg.Agent.RetryMax)
	agent := gateways.NewAgent(conn, cfg.Agent.AdminEndpoint, cfg.Agent.AdminAPIKey)

	walletService := services.NewWallet(stores, agent, repositories.NewAgentTokenCached(cachex, cfg.Agent.TokenTTL), cfg.AppName)
	notificationService := services.NewNotification(stores, broadcaster)
	matcher := services.NewMatcher()
	webhookManager := services.NewWebhookManager(stores, walletService, notificationService, broadcaster, m)
	credentialsService := services.NewCredentials(stores, walletService, notificationService, matcher)
	scanner := services.NewScanner(stores, walletService, broadcaster, matcher, conn, m)

	serverHealth := health.New(health.Monitors{
		"storage": stores,
		"cache":   cachex,
	})
	serverHealth.Run(ctx, health.DefaultPingPeriod)

	server := api.NewServer(
		cfg,
		walletService,
		webhookManager,
		notificationService,
		credentialsService,
		scanner,
		broadcaster,
		repositories.NewSessionCached(cachex, cfg.Session.TTL),
		serverHealth,
		m,
		registry,
	)

	httpServer := newHTTPServer(ctx, fmt.Sprintf(":%d", cfg.ServerPort), server.Handler(ctx))
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info(ctx, "server started", "port", cfg.ServerPort, "env", cfg.Env, "storage", cfg.Storage.Provider)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "starting HTTP server", "err", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info(ctx, "Shutting down")
	// request contexts derive from ctx, cancelling it ends the open notification streams
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutting down HTTP server", "err", err)
	}
}

func newHTTPServer(ctx context.Context, addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func openStores(ctx context.Context, cfg config.Storage, sealer *repositories.Sealer) (*repositories.Profiles, error) {
	switch cfg.Provider {
	case config.StorageProviderMemory:
		log.Warn(ctx, "tenant data is kept in memory and lost on restart")
		return repositories.NewMemoryProfiles(sealer), nil
	case config.StorageProviderSQLite:
		conn, err := db.NewSQLite(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return repositories.NewSQLiteProfiles(conn, sealer)
	case config.StorageProviderPostgres:
		conn, err := db.NewStorage(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return repositories.NewPostgresProfiles(conn, sealer), nil
	}
	return nil, fmt.Errorf("unknown storage provider <%s>", cfg.Provider)
}
