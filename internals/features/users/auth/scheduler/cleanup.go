package scheduler

import (
	"context"
	"log"
	"time"

	"tahfidz_backend/internals/features/users/auth/service"

	"github.com/robfig/cron/v3"
)

// StartBlacklistCleanupScheduler mendaftarkan job harian; token yang exp-nya
// lebih tua dari ttl dihapus dari token_blacklist.
func StartBlacklistCleanupScheduler(c *cron.Cron, svc *service.AuthService, ttl time.Duration) (cron.EntryID, error) {
	return c.AddFunc("@daily", func() {
		RunBlacklistCleanup(context.Background(), svc, ttl)
	})
}

func RunBlacklistCleanup(ctx context.Context, svc *service.AuthService, ttl time.Duration) {
	log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	n, err := svc.CleanupBlacklist(ctx, time.Now().Add(-ttl))
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
		return
	}
	if n == 0 {
		log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
		return
	}
	log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
}
