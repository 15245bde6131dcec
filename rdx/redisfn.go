package rdx

import (
	"log"
	"os"
	"time"

	"veyra/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

// RdxGet fetches a cached string value; empty string on miss or error.
func RdxGet(key string) (string, error) {
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err != nil {
		return "", err
	}
	return val, nil
}

func RdxSet(key, value string) {
	if err := Conn.Set(globals.Ctx, key, value, 10*time.Minute).Err(); err != nil {
		log.Println("Redis set error:", err)
	}
}

func RdxDel(key string) {
	if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
		log.Println("Redis del error:", err)
	}
}
