package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/jobhive/jobhive/internal/auth"
	"github.com/jobhive/jobhive/internal/config"
	httpx "github.com/jobhive/jobhive/internal/http"
	"github.com/jobhive/jobhive/internal/mailer"
	"github.com/jobhive/jobhive/internal/observability"
	"github.com/jobhive/jobhive/internal/ratelimit"
	"github.com/jobhive/jobhive/internal/store/mongostore"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(context.Background(), "jobhive-api", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := observability.NewProm(reg)

	store, err := mongostore.New(cfg.MongoURI, cfg.MongoDB, prom)
	if err != nil {
		log.Error("mongo connect failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	{
		ctx, cancel := config.WithTimeout(10 * time.Second)
		err := store.EnsureAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
		cancel()
		if err != nil {
			log.Error("admin seed failed", "err", err)
			os.Exit(1)
		}
	}

	jwt := auth.NewManager(cfg.SessionSecret, cfg.EmailSecret, cfg.SessionTTL, cfg.EmailTTL)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
			BaseURL:  firstOrDefault(cfg.CORSOrigins, "http://localhost:3000"),
		})
	} else {
		mail = mailer.NewLogMailer(log)
	}
	mail = mailer.WithMetrics(mail, prom)

	var limiter ratelimit.Window
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer rdb.Close()
		limiter = ratelimit.NewRedis(rdb, cfg.RateWindow)
	} else {
		limiter = ratelimit.NewMemory(cfg.RateWindow)
	}

	router := httpx.NewRouter(httpx.RouterConfig{
		Cfg:     cfg,
		Store:   store,
		JWT:     jwt,
		Mail:    mail,
		Prom:    prom,
		PromReg: reg,
		Limiter: limiter,
		Logger:  log,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})
	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")
	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func firstOrDefault(list []string, fallback string) string {
	if len(list) > 0 {
		return list[0]
	}
	return fallback
}
