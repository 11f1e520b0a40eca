package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedsng/internal/cache"
	"feedsng/internal/config"
	"feedsng/internal/db"
	"feedsng/internal/fetcher"
	"feedsng/internal/handler"
	transport "feedsng/internal/http"
	"feedsng/internal/logger"
	"feedsng/internal/network"
	"feedsng/internal/opml"
	"feedsng/internal/repository"
	"feedsng/internal/scheduler"
	"feedsng/internal/service"
	"feedsng/internal/snowflake"
)

func main() {
	if err := run(); err != nil {
		logger.Error("server exited", "module", "main", "action", "run", "resource", "process", "result", "failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logger.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	if err := snowflake.Init(cfg.NodeID); err != nil {
		return fmt.Errorf("init snowflake: %w", err)
	}

	dbConn, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer dbConn.Close()

	feedCache, err := newFeedCache(cfg)
	if err != nil {
		return err
	}
	defer feedCache.Close()

	feedRepo := repository.NewFeedRepository(dbConn)
	itemRepo := repository.NewFeedItemRepository(dbConn)
	groupRepo := repository.NewGroupRepository(dbConn)

	feedFetcher := fetcher.NewHTTPFetcher(network.NewClientFactory(cfg.ProxyURL), fetcher.Options{
		Timeout:         cfg.FetchTimeout,
		HostRateLimit:   cfg.HostRateLimit,
		BrowserFallback: true,
	})

	refreshService := service.NewRefreshService(feedRepo, itemRepo, feedFetcher, feedCache, cfg.SweepConcurrency)
	queryService := service.NewQueryService(feedRepo, itemRepo, groupRepo, feedCache)
	updateService := service.NewUpdateService(feedRepo, itemRepo, groupRepo)
	opmlService := service.NewOPMLService(opml.Parser{}, refreshService, feedRepo, groupRepo)
	importTasks := service.NewImportTaskService()

	router := transport.NewRouter(
		handler.NewFeedHandler(queryService, refreshService),
		handler.NewItemHandler(queryService, updateService),
		handler.NewOPMLHandler(opmlService, importTasks),
	)

	sched := scheduler.New(refreshService)
	if err := sched.Start(scheduler.Config{InitialDelay: cfg.InitialDelay, UpdateInterval: cfg.UpdateInterval}); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "module", "main", "action", "start", "resource", "http", "result", "ok", "addr", cfg.Addr, "db_driver", cfg.DBDriver, "cache", cfg.CacheBackend)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "module", "main", "action", "stop", "resource", "process", "result", "ok", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			<-sched.Stop().Done()
			return fmt.Errorf("start server: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := router.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown failed", "module", "main", "action", "stop", "resource", "http", "result", "failed", "error", err)
	}
	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		logger.Warn("sweep still running at shutdown", "module", "main", "action", "stop", "resource", "sweep", "result", "timeout")
	}
	return nil
}

func newFeedCache(cfg config.Config) (cache.FeedCache, error) {
	if cfg.CacheBackend == config.CacheRedis {
		c, err := cache.NewRedis(cache.RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB}, cfg.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return c, nil
	}
	return cache.NewMemory(cfg.CacheTTL), nil
}
