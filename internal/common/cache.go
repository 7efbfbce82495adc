package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// Touch stores value again under key, restarting its expiration.
func (c *Cache) Touch(key string, value interface{}) {
	c.Cache.SetDefault(key, value)
}

func CacheKeyClient(ip string) string {
	return "client:" + ip
}
