package initial

import (
	"context"
	"fmt"
	"time"

	"AssistHub/internal/config"
	"AssistHub/pkg/zlog"

	goredis "github.com/redis/go-redis/v9"
)

// RedisClient is nil when redis is not configured; callers degrade to
// uncached behavior then.
var RedisClient *goredis.Client

func init() {
	conf := config.GetConfig()
	if !conf.RedisConfig.Enabled || conf.RedisConfig.Host == "" {
		zlog.Info("redis not configured, catalog caching disabled")
		return
	}

	port := conf.RedisConfig.Port
	if port == 0 {
		port = 6379
	}
	addr := fmt.Sprintf("%s:%d", conf.RedisConfig.Host, port)

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: conf.RedisConfig.Password,
		DB:       conf.RedisConfig.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zlog.Error(fmt.Sprintf("redis connection failed: %v", err))
		_ = client.Close()
		return
	}

	zlog.Info("redis connected: " + addr)
	RedisClient = client
}
