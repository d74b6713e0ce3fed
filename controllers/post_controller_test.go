package controllers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Dropping the hot pages after a detail read relies on the sort segment
// leading the cache key: the hot prefix must cover every hot page and no
// other.
func TestFeedCacheKeyPrefixes(t *testing.T) {
	hot := feedCacheKey("hot", "1", 2, 10)
	newest := feedCacheKey("newest", "", 1, 10)

	assert.True(t, strings.HasPrefix(hot, hotFeedCachePrefix()))
	assert.False(t, strings.HasPrefix(newest, hotFeedCachePrefix()))
	assert.True(t, strings.HasPrefix(hot, feedCachePrefix))
	assert.True(t, strings.HasPrefix(newest, feedCachePrefix))
}
