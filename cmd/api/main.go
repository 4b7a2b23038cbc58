package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/taskpulse/backend/internal/config"
	"github.com/taskpulse/backend/internal/handler"
	"github.com/taskpulse/backend/internal/realtime"
	"github.com/taskpulse/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Pick the task store: Postgres when configured, memory otherwise.
	var tasks store.TaskStore
	if cfg.Database.Enabled() {
		pgStore, err := store.NewPostgresTaskStore(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("failed to initialize task store: %v", err)
		}
		defer pgStore.Close()
		tasks = pgStore
		log.Println("task store: postgres")
	} else {
		tasks = store.NewMemoryTaskStore()
		log.Println("task store: memory (set DATABASE_URL for persistence)")
	}

	stores := handler.Stores{
		Tasks:       tasks,
		Users:       store.NewMemoryUserStore(),
		Assignments: store.NewMemoryAssignmentStore(),
	}

	registry := realtime.NewRegistry()
	hub := realtime.NewHub(registry)

	// Optional cross-instance relay.
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to redis at %s: %v", cfg.Redis.Addr, err)
		}
		relay := realtime.NewRelay(client, cfg.Redis.Channel)
		hub.SetRelay(relay)
		go relay.Run(ctx, hub)
		log.Printf("event relay enabled on %s channel %s", cfg.Redis.Addr, cfg.Redis.Channel)
	}

	router := handler.NewRouter(stores, registry, hub, cfg.Realtime.SendBuffer)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("TaskPulse backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
