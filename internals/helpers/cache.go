// file: internals/helpers/cache.go
package helper

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache in-process untuk view yang sering dibaca dashboard (rekap absensi
// harian dsb). Pola cache-aside: controller pakai CacheRemember, job nightly
// invalidate per-prefix setelah finalisasi.

var viewCache = gocache.New(5*time.Minute, 10*time.Minute)

// CacheRemember mengembalikan nilai dari cache, atau memanggil fn lalu
// menyimpan hasilnya selama ttl.
func CacheRemember(key string, ttl time.Duration, fn func() (any, error)) (any, error) {
	if v, ok := viewCache.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return nil, err
	}
	viewCache.Set(key, v, ttl)
	return v, nil
}

// CacheInvalidatePrefix menghapus semua entri yang key-nya diawali prefix.
// Mengembalikan jumlah entri yang dihapus.
func CacheInvalidatePrefix(prefix string) int {
	n := 0
	for key := range viewCache.Items() {
		if strings.HasPrefix(key, prefix) {
			viewCache.Delete(key)
			n++
		}
	}
	return n
}

// CacheFlush mengosongkan seluruh cache (dipakai test).
func CacheFlush() {
	viewCache.Flush()
}
