package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitGeoIPEmptyPathIsNoop(t *testing.T) {
	assert.NoError(t, InitGeoIP(""))
	city, country := GetIPLocation("8.8.8.8")
	assert.Empty(t, city)
	assert.Empty(t, country)
}

func TestInitGeoIPMissingFile(t *testing.T) {
	assert.Error(t, InitGeoIP(filepath.Join(t.TempDir(), "none.mmdb")))
}

func TestGetIPLocationSkipsLocalAndInvalid(t *testing.T) {
	_, missesBefore, _ := GetGeoIPCacheMetrics()
	for _, ip := range []string{"", "127.0.0.1", "::1", "10.1.2.3", "192.168.1.1", "not-an-ip"} {
		city, country := GetIPLocation(ip)
		assert.Empty(t, city, ip)
		assert.Empty(t, country, ip)
	}
	_, missesAfter, _ := GetGeoIPCacheMetrics()
	assert.Equal(t, missesBefore, missesAfter)
}

func TestCloseGeoIPIsIdempotent(t *testing.T) {
	CloseGeoIP()
	CloseGeoIP()
	_, _, size := GetGeoIPCacheMetrics()
	assert.Zero(t, size)
}
