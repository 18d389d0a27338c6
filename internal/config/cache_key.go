package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key registering an issued admin token.
// The value is the token's JTI; logout deletes the key, which invalidates
// the token before its JWT expiry.
func (r *CacheKeyStruct) AdminSessionKey(jti string) string {
	return fmt.Sprintf("admin:session:%s", jti)
}

// PackageListKey returns the cache key for the public package list.
func (r *CacheKeyStruct) PackageListKey() string {
	return "packages:list"
}

// PackageDetailKey returns the cache key for a package + itinerary aggregate.
func (r *CacheKeyStruct) PackageDetailKey(packageID uuid.UUID) string {
	return fmt.Sprintf("package:%s:detail", packageID)
}

var CacheKey = NewCacheKeyStruct()
