package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"tahfidz_backend/internals/configs"
	database "tahfidz_backend/internals/databases"
	summaryService "tahfidz_backend/internals/features/progress/summary/service"
	"tahfidz_backend/internals/features/realtime"
	scheduler "tahfidz_backend/internals/features/users/auth/scheduler"
	helper "tahfidz_backend/internals/helpers"
	middlewares "tahfidz_backend/internals/middlewares"
	routes "tahfidz_backend/internals/route"
	"tahfidz_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		DisableStartupMessage:   true,
		BodyLimit:               10 * 1024 * 1024, // import CSV
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR Cloudflare jika perlu
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + migrasi + warm-up
	database.ConnectDB()
	database.TunePool()
	if err := database.Migrate(database.DB); err != nil {
		log.Fatalf("❌ Migrasi gagal: %v", err)
	}
	database.WarmUpQueries()

	rootCtx, stopRoot := context.WithCancel(context.Background())
	defer stopRoot()

	// 📡 realtime: hub in-process, opsional LISTEN Postgres
	hub := realtime.NewHub()
	pgListen := configs.GetEnvBool("REALTIME_LISTEN", false)
	listenerDone := make(chan struct{})
	if pgListen {
		l := &realtime.Listener{DSN: database.DSN(), Hub: hub}
		go func() {
			defer close(listenerDone)
			l.Run(rootCtx)
		}()
	} else {
		close(listenerDone)
	}

	services := routes.BuildServices(database.DB, hub, pgListen)
	seeds.RunAllSeeds(rootCtx, services.Users)

	// 🧠 cache ringkasan progres (opsional)
	rdb := configs.ConnectRedis()
	if rdb != nil {
		services.WithCache(summaryService.NewRedisCache(rdb, 24*time.Hour))
	}

	// 📊 ringkasan progres: hitung awal + langganan perubahan
	stopProgress := services.Progress.Start(rootCtx)

	// ⏱ scheduler setelah DB siap
	c := cron.New()
	if _, err := scheduler.StartBlacklistCleanupScheduler(c, services.Auth, routes.BlacklistTTL()); err != nil {
		log.Printf("[ERROR] Gagal daftar cron blacklist: %v", err)
	}
	if _, err := services.Progress.StartCron(c, configs.GetEnv("PROGRESS_CRON", "@every 15m")); err != nil {
		log.Printf("[ERROR] Gagal daftar cron progres: %v", err)
	}
	c.Start()

	// ✅ Routes
	routes.SetupRoutes(app, services)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown: HTTP, cron, progres, listener, Redis, DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	<-c.Stop().Done()
	stopProgress()
	stopRoot()
	services.Progress.Wait()

	select {
	case <-listenerDone:
	case <-ctx.Done():
		log.Println("[WARN] listener tidak berhenti tepat waktu")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	database.Close()
	log.Println("[INFO] Server berhenti")
}
