package db

import (
	"log"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Signed preview URLs are the only cached value in the system. Spending totals
// are deliberately recomputed on every read.
var Cache *ristretto.Cache

// signedURLTTL stays under the 1 hour expiry the storage provider puts on the
// URL itself, so a cached URL is always still valid when served.
const signedURLTTL = 55 * time.Minute

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func SetSignedURL(objectName, url string) {
	Cache.SetWithTTL("signed-url:"+objectName, url, 1, signedURLTTL)
}

func GetSignedURL(objectName string) (string, bool) {
	v, ok := Cache.Get("signed-url:" + objectName)
	if !ok {
		return "", false
	}
	url, ok := v.(string)
	return url, ok
}

func DelSignedURL(objectName string) {
	Cache.Del("signed-url:" + objectName)
}
