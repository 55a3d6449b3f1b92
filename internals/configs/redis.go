package configs

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis mengembalikan nil jika REDIS_ADDR kosong atau Redis tidak bisa di-ping;
// pemanggil harus tetap jalan tanpa cache.
func ConnectRedis() *redis.Client {
	if RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     RedisAddr,
		Password: GetEnv("REDIS_PASSWORD"),
		DB:       GetEnvInt("REDIS_DB", 0),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[ERROR] Gagal konek Redis %s: %v (cache dimatikan)", RedisAddr, err)
		_ = rdb.Close()
		return nil
	}
	log.Println("✅ Redis terhubung")
	return rdb
}
