package http

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/open-aems/backend/internal/grading"
)

// ResultCache answers repeated identical grading requests from memory for a
// short window, so a double-submit does not burn a second model call. This
// lives at the HTTP layer on purpose: the grading engine itself makes no
// caching or coalescing promises.
type ResultCache struct{ c *gocache.Cache }

// NewResultCache returns nil when ttl is zero; a nil cache is a no-op.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		return nil
	}
	return &ResultCache{c: gocache.New(ttl, 2*ttl)}
}

func (rc *ResultCache) key(req grading.Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\x00%s\x00%s", req.StrictnessLevel, req.RubricText, req.AnswerText)
	return hex.EncodeToString(h.Sum(nil))
}

func (rc *ResultCache) Get(req grading.Request) (grading.Result, bool) {
	if rc == nil {
		return grading.Result{}, false
	}
	v, ok := rc.c.Get(rc.key(req))
	if !ok {
		return grading.Result{}, false
	}
	res, ok := v.(grading.Result)
	return res, ok
}

func (rc *ResultCache) Put(req grading.Request, res grading.Result) {
	if rc == nil {
		return
	}
	rc.c.SetDefault(rc.key(req), res)
}
