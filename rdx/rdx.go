package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// Redis client, shared by the cache helpers and Pub/Sub
var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

// SetCache stores a value with a TTL. Cache errors are logged, never fatal.
func SetCache(key string, value []byte, ttl time.Duration) {
	if err := Conn.Set(Ctx, key, value, ttl).Err(); err != nil {
		log.Println("Redis set error:", err)
	}
}

// GetCache returns the cached value, or nil when missing or on error.
func GetCache(key string) []byte {
	data, err := Conn.Get(Ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("Redis get error:", err)
		}
		return nil
	}
	return data
}

// RemoveCache drops a key. Used to invalidate the sorted-entries view
// before every remote write.
func RemoveCache(key string) {
	if err := Conn.Del(Ctx, key).Err(); err != nil {
		log.Println("Redis del error:", err)
	}
}
