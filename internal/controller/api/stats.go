package api

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"exusiai.dev/folio-stats/internal/core/leetcode"
	"exusiai.dev/folio-stats/internal/pkg/apierr"
	"exusiai.dev/folio-stats/internal/pkg/cachectrl"
	"exusiai.dev/folio-stats/internal/pkg/flog"
	"exusiai.dev/folio-stats/internal/pkg/rekuest"
	"exusiai.dev/folio-stats/internal/server/svr"
)

type Stats struct {
	fx.In

	StatsService *leetcode.Service
}

type statsQuery struct {
	Username string `query:"username" validate:"omitempty,max=64,leetcodeusername"`
}

func RegisterStats(api *svr.API, c Stats) {
	api.Get("/stats", c.GetStats)
	// legacy route name, kept for existing clients
	api.Get("/leetcode", c.GetStats)
}

// GetStats serves the normalized statistics of ?username=, or of the default username.
func (c *Stats) GetStats(ctx *fiber.Ctx) error {
	var query statsQuery
	if err := rekuest.ValidQuery(ctx, &query); err != nil {
		return err
	}

	entry, err := c.StatsService.GetStats(ctx.UserContext(), query.Username)
	if err != nil {
		return apierr.ErrUpstream.Wrap(err)
	}

	body, err := json.Marshal(entry.Response)
	if err != nil {
		return err
	}

	cachectrl.OptInShared(ctx, entry.FetchedAt, c.StatsService.TTL())
	etag := cachectrl.ETag(ctx, body)
	if cachectrl.NotModified(ctx, etag, entry.FetchedAt) {
		flog.DebugFrom(ctx).
			Str("username", entry.Response.Username).
			Msg("stats not modified")
		return ctx.SendStatus(fiber.StatusNotModified)
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return ctx.Send(body)
}
