package connections

import (
	"os"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
)

var (
	redisPool     *redis.Pool
	redisPoolOnce sync.Once
)

// Redis returns a connection from the Redis pool.
// Callers must Close the connection when done.
func Redis() redis.Conn {
	redisPoolOnce.Do(func() {
		redisPool = &redis.Pool{
			MaxIdle:     3,
			IdleTimeout: 240 * time.Second,
			Dial: func() (redis.Conn, error) {
				addr := os.Getenv("REDIS_ADDR")
				if addr == "" {
					addr = "localhost:6379"
				}
				if password := os.Getenv("REDIS_PASSWORD"); password != "" {
					return redis.Dial("tcp", addr, redis.DialPassword(password))
				}
				return redis.Dial("tcp", addr)
			},
			TestOnBorrow: func(c redis.Conn, t time.Time) error {
				if time.Since(t) < time.Minute {
					return nil
				}
				_, err := c.Do("PING")
				return err
			},
		}
	})
	return redisPool.Get()
}

// CloseRedis closes the Redis connection pool
func CloseRedis() {
	if redisPool != nil {
		redisPool.Close()
	}
}
