package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"project-hub/backend/internal/cache"
	"project-hub/backend/internal/config"
	"project-hub/backend/internal/database"
	"project-hub/backend/internal/worker"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient)

	jobs := worker.NewJobQueue(redisClient)

	w := worker.NewWorker(worker.WorkerConfig{
		RedisClient: redisClient,
		Queues:      cfg.Worker.Queues,
	})
	w.RegisterHandler(worker.JobTypeDueReminder, worker.DueReminderHandler(pool.DB))
	w.RegisterHandler(worker.JobTypeTokenCleanup,
		worker.TokenCleanupHandler(pool.DB, jobs, "default", cfg.Worker.CleanupInterval))
	w.Start(cfg.Worker.Concurrency)
	defer w.Stop()

	// Seed the cleanup chain; each sweep schedules the next one.
	if err := jobs.Enqueue("default", worker.JobTypeTokenCleanup, nil); err != nil {
		log.Printf("Failed to enqueue token cleanup: %v", err)
	}

	router := setupRouter(cfg, pool, redisClient, redisCache, jobs)

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
