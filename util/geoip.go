package util

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oschwald/geoip2-golang"
	cache "github.com/patrickmn/go-cache"
)

var (
	geoipMu        sync.RWMutex
	geoipDB        *geoip2.Reader
	geoipCache     *cache.Cache
	geoipCacheHits int64
	geoipCacheMiss int64
)

// InitGeoIP opens a GeoIP2/GeoLite2 city database used to attach a location
// to persisted security events. An empty path leaves lookups disabled.
func InitGeoIP(dbPath string) error {
	if dbPath == "" {
		return nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoipMu.Lock()
	defer geoipMu.Unlock()
	geoipDB = r
	geoipCache = cache.New(24*time.Hour, time.Hour)
	return nil
}

// CloseGeoIP releases the database if it was opened.
func CloseGeoIP() {
	geoipMu.Lock()
	defer geoipMu.Unlock()
	if geoipDB != nil {
		_ = geoipDB.Close()
		geoipDB = nil
	}
	geoipCache = nil
}

// GetIPLocation returns the English city and country names for ip, or empty
// strings for private addresses and when no database is loaded.
func GetIPLocation(ip string) (string, string) {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return "", ""
	}

	geoipMu.RLock()
	reader, c := geoipDB, geoipCache
	geoipMu.RUnlock()

	if c != nil {
		if v, ok := c.Get(ip); ok {
			atomic.AddInt64(&geoipCacheHits, 1)
			loc := v.([2]string)
			return loc[0], loc[1]
		}
	}
	atomic.AddInt64(&geoipCacheMiss, 1)

	if reader == nil {
		return "", ""
	}
	rec, err := reader.City(parsed)
	if err != nil {
		return "", ""
	}

	city := rec.City.Names["en"]
	country := rec.Country.Names["en"]
	if country == "" {
		country = rec.Country.IsoCode
	}
	if c != nil {
		c.Set(ip, [2]string{city, country}, cache.DefaultExpiration)
	}
	return city, country
}

// GetGeoIPCacheMetrics returns cache hits, misses and current size.
func GetGeoIPCacheMetrics() (hits int64, misses int64, size int) {
	hits = atomic.LoadInt64(&geoipCacheHits)
	misses = atomic.LoadInt64(&geoipCacheMiss)
	geoipMu.RLock()
	defer geoipMu.RUnlock()
	if geoipCache != nil {
		size = geoipCache.ItemCount()
	}
	return hits, misses, size
}
