package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mobide/config"
	"mobide/httputil"
	"mobide/logging"
	"mobide/notify"
	"mobide/refdata"
	"mobide/scheduler"
	"mobide/scraper"
	"mobide/server"
	"mobide/services"
	"mobide/workers"
)

var (
	watchNow = flag.Bool("watch-now", false, "Run all watches once and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting mobide...")
	log.Printf("Transport: %s", cfg.Marketplace.Transport)
	if cfg.ProxyURL != "" {
		log.Printf("Proxy: %s", cfg.ProxyURL)
	}

	clients := httputil.NewClients(cfg.ProxyURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rd := refdata.New(clients.Reference, cfg.Marketplace.APIBase, cfg.Currency)
	if err := rd.FetchRate(ctx); err != nil {
		log.Printf("Currency rate fetch failed, using default %.2f: %v", cfg.Currency.DefaultRate, err)
	}

	pool := scraper.NewPagePool(cfg.Browser.Headless, cfg.Browser.IdleTimeout)
	defer pool.Close()
	go pool.RunEvictor(ctx)

	api := scraper.NewAPIHandler(&cfg.Marketplace, clients.Marketplace)
	browser := scraper.NewBrowserHandler(&cfg.Marketplace, &cfg.Browser, pool)

	svc := services.NewSearchService(cfg, rd, api, browser)

	// Watches are optional; without any the scheduler stays idle.
	var notifier notify.Notifier
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("Warning: telegram notifier disabled: %v", err)
		} else {
			notifier = tg
		}
	}
	watcher := workers.NewWatchWorker(svc, notifier, cfg.Watches)
	log.Printf("Loaded %d watches", len(cfg.Watches))

	if *watchNow {
		if err := watcher.RunAll(ctx); err != nil {
			log.Fatalf("Watch run failed: %v", err)
		}
		return
	}

	var sched *scheduler.Scheduler
	if len(cfg.Watches) > 0 {
		sched = scheduler.New(&cfg.Scheduler, watcher)
		if err := sched.Start(ctx); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	h := server.NewHandler(svc, rd, browser, clients.Reference, cfg.FrontendOrigin, cfg.Currency.CharCode)
	router := server.SetupRouter(h)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}
	go func() {
		log.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}

	log.Println("Goodbye!")
}
