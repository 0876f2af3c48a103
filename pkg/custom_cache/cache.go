package custom_cache

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	bigcache_store "github.com/eko/gocache/store/bigcache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

var MainCache *cache.Cache[string]
var MainCacheExpiration = 30 * time.Minute

// InitializeCache backs the cache with redis when REDIS_CONNECTION_STRING is
// set, and with an in-process bigcache otherwise.
func InitializeCache() {
	connectionString, ok := os.LookupEnv("REDIS_CONNECTION_STRING")
	if ok {
		opt, err := redis.ParseURL(connectionString)
		if err != nil {
			log.Fatalf("[FATAL] failed to parse the redis connection string: %v", err)
		}
		redisStore := redis_store.NewRedis(redis.NewClient(opt), store.WithExpiration(MainCacheExpiration))
		MainCache = cache.New[string](redisStore)
		log.Printf("[INFO] cache backed by redis")
		return
	}

	bigcacheClient, err := bigcache.New(context.Background(), bigcache.DefaultConfig(MainCacheExpiration))
	if err != nil {
		log.Fatalf("[FATAL] failed to initialize the cache: %v", err)
	}
	MainCache = cache.New[string](bigcache_store.NewBigcache(bigcacheClient))
	log.Printf("[INFO] cache backed by bigcache")
}

func Get(key string) (string, error) {
	return MainCache.Get(context.Background(), key)
}

func Set(key string, value string) error {
	return MainCache.Set(context.Background(), key, value)
}
