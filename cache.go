package main

import (
	"crypto/md5"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/hoisie/redis"
)

type KeyNotFound struct {
	key string
}

func (e KeyNotFound) Error() string {
	return e.key + " " + "not found"
}

type KeyExpired struct {
	Key string
}

func (e KeyExpired) Error() string {
	return e.Key + " " + "expired"
}

type CacheIsFull struct {
}

func (e CacheIsFull) Error() string {
	return "Cache is Full"
}

type SerializerError struct {
	err error
}

func (e SerializerError) Error() string {
	return fmt.Sprintf("Serializer error: got %v", e.err)
}

func (e SerializerError) Unwrap() error {
	return e.err
}

// Cache stores lookup depths, NotFound included.
type Cache interface {
	Get(key string) (depth int, err error)
	Set(key string, depth int) error
	Exists(key string) bool
	Remove(key string) error
	Full() bool
}

func NewCache(cs CacheSettings, rs RedisSettings, ms MemcacheSettings) (Cache, error) {
	switch cs.Backend {
	case "memory":
		return &MemoryCache{
			Backend:  make(map[string]Mesg),
			Expire:   time.Duration(cs.Expire) * time.Second,
			Maxcount: cs.Maxcount,
		}, nil
	case "memcache":
		return NewMemcachedCache(ms.Servers, int32(cs.Expire)), nil
	case "redis":
		return NewRedisCache(rs, int64(cs.Expire)), nil
	default:
		return nil, fmt.Errorf("invalid cache backend %q", cs.Backend)
	}
}

type Mesg struct {
	Depth  int
	Expire time.Time
}

type MemoryCache struct {
	Backend  map[string]Mesg
	Expire   time.Duration
	Maxcount int
	mu       sync.RWMutex
}

func (c *MemoryCache) Get(key string) (int, error) {
	c.mu.RLock()
	mesg, ok := c.Backend[key]
	c.mu.RUnlock()
	if !ok {
		return 0, KeyNotFound{key}
	}

	if mesg.Expire.Before(time.Now()) {
		c.Remove(key)
		return 0, KeyExpired{key}
	}

	return mesg.Depth, nil
}

func (c *MemoryCache) Set(key string, depth int) error {
	if c.Full() && !c.Exists(key) {
		return CacheIsFull{}
	}

	expire := time.Now().Add(c.Expire)
	mesg := Mesg{depth, expire}
	c.mu.Lock()
	c.Backend[key] = mesg
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Remove(key string) error {
	c.mu.Lock()
	delete(c.Backend, key)
	c.mu.Unlock()
	return nil
}

// Clear drops every entry. Entries keyed by an older tree generation are
// never read again, so the index clears the cache on each publish.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.Backend = make(map[string]Mesg)
	c.mu.Unlock()
}

func (c *MemoryCache) Exists(key string) bool {
	c.mu.RLock()
	_, ok := c.Backend[key]
	c.mu.RUnlock()
	return ok
}

func (c *MemoryCache) Length() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.Backend)
}

func (c *MemoryCache) Full() bool {
	// if Maxcount is zero. the cache will never be full.
	if c.Maxcount == 0 {
		return false
	}
	return c.Length() >= c.Maxcount
}

/*
Memcached backend
*/

func NewMemcachedCache(servers []string, expire int32) *MemcachedCache {
	c := memcache.New(servers...)
	return &MemcachedCache{
		backend: c,
		expire:  expire,
	}
}

type MemcachedCache struct {
	backend *memcache.Client
	expire  int32
}

func (m *MemcachedCache) Set(key string, depth int) error {
	return m.backend.Set(&memcache.Item{Key: key, Value: packDepth(depth), Expiration: m.expire})
}

func (m *MemcachedCache) Get(key string) (int, error) {
	item, err := m.backend.Get(key)
	if err != nil {
		return 0, KeyNotFound{key}
	}
	return unpackDepth(item.Value)
}

func (m *MemcachedCache) Exists(key string) bool {
	_, err := m.backend.Get(key)
	return err == nil
}

func (m *MemcachedCache) Remove(key string) error {
	return m.backend.Delete(key)
}

func (m *MemcachedCache) Full() bool {
	// memcache is never full (LRU)
	return false
}

/*
Redis cache Backend
*/

func NewRedisCache(rs RedisSettings, expire int64) *RedisCache {
	rc := &redis.Client{Addr: rs.Addr(), Db: rs.DB, Password: rs.Password}
	return &RedisCache{
		Backend: rc,
		Expire:  expire,
	}
}

type RedisCache struct {
	Backend *redis.Client
	Expire  int64
}

func (r *RedisCache) Get(key string) (int, error) {
	item, err := r.Backend.Get(key)
	if err != nil {
		return 0, KeyNotFound{key}
	}
	return unpackDepth(item)
}

func (r *RedisCache) Set(key string, depth int) error {
	return r.Backend.Setex(key, r.Expire, packDepth(depth))
}

func (r *RedisCache) Exists(key string) bool {
	ok, err := r.Backend.Exists(key)
	return err == nil && ok
}

func (r *RedisCache) Remove(key string) error {
	_, err := r.Backend.Del(key)
	return err
}

func (r *RedisCache) Full() bool {
	return false
}

// KeyGen keys a lookup by tree generation so entries from an older tree
// are never served after a rebuild.
func KeyGen(generation uint64, query string) string {
	h := md5.New()
	h.Write([]byte(strconv.FormatUint(generation, 10) + " " + query))
	x := h.Sum(nil)
	key := fmt.Sprintf("%x", x)
	return key
}

func packDepth(depth int) []byte {
	return []byte(strconv.Itoa(depth))
}

func unpackDepth(data []byte) (int, error) {
	depth, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, SerializerError{err}
	}
	return depth, nil
}
