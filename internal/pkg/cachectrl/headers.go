package cachectrl

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"github.com/zeebo/xxh3"
)

// OptInShared marks the response as cacheable by intermediary (shared) caches for ttl, and lets
// them keep serving the stale copy for one further ttl while revalidating in the background.
func OptInShared(ctx *fiber.Ctx, t time.Time, ttl time.Duration) {
	secs := strconv.Itoa(int(ttl.Seconds()))
	ctx.Set(fiber.HeaderCacheControl, "public, s-maxage="+secs+", stale-while-revalidate="+secs)

	ctx.Response().Header.SetLastModified(t)
}

// ETag sets a weak entity tag derived from body and returns it.
func ETag(ctx *fiber.Ctx, body []byte) string {
	tag := `W/"` + strconv.FormatUint(xxh3.Hash(body), 16) + `"`
	ctx.Set(fiber.HeaderETag, tag)
	return tag
}

// NotModified reports whether the request already holds the representation identified by etag
// and lastModified. If-None-Match, when present, decides alone and only an explicitly listed
// tag matches. If-Modified-Since is honored otherwise, at the second resolution of HTTP dates.
func NotModified(ctx *fiber.Ctx, etag string, lastModified time.Time) bool {
	if inm := ctx.Get(fiber.HeaderIfNoneMatch); inm != "" {
		for _, candidate := range strings.Split(inm, ",") {
			if weakEqual(strings.TrimSpace(candidate), etag) {
				return true
			}
		}
		return false
	}

	ims := ctx.Get(fiber.HeaderIfModifiedSince)
	if ims == "" || lastModified.IsZero() {
		return false
	}
	since, err := fasthttp.ParseHTTPDate([]byte(ims))
	if err != nil {
		return false
	}
	return !lastModified.Truncate(time.Second).After(since)
}

func weakEqual(a, b string) bool {
	a = strings.TrimPrefix(a, "W/")
	b = strings.TrimPrefix(b, "W/")
	return a != "" && a != "*" && a == b
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set("Pragma", "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
