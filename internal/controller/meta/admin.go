package meta

import (
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/fx"

	"exusiai.dev/folio-stats/internal/core/leetcode"
	"exusiai.dev/folio-stats/internal/pkg/apierr"
	"exusiai.dev/folio-stats/internal/pkg/flog"
	"exusiai.dev/folio-stats/internal/pkg/rekuest"
	"exusiai.dev/folio-stats/internal/server/svr"
)

type AdminController struct {
	fx.In

	StatsService *leetcode.Service
}

type usernameRequest struct {
	Username string `json:"username" validate:"omitempty,max=64,leetcodeusername"`
}

func RegisterAdmin(admin *svr.Admin, c AdminController) {
	admin.Post("/purge", c.PurgeCache)
	admin.Post("/refresh", c.RefreshStats)
}

// PurgeCache drops the cached stats of one username, or of every username when none is given.
func (c *AdminController) PurgeCache(ctx *fiber.Ctx) error {
	var request usernameRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	var err error
	if request.Username == "" {
		err = c.StatsService.PurgeAll(ctx.UserContext())
	} else {
		err = c.StatsService.Purge(ctx.UserContext(), request.Username)
	}
	if err != nil {
		return err
	}

	purged := lo.Ternary(request.Username == "", "*", request.Username)
	flog.InfoFrom(ctx).
		Str("evt.name", "admin.purge").
		Str("username", purged).
		Msg("stats cache purged")

	return ctx.JSON(fiber.Map{
		"purged": purged,
	})
}

func (c *AdminController) RefreshStats(ctx *fiber.Ctx) error {
	var request usernameRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	entry, err := c.StatsService.Refresh(ctx.UserContext(), request.Username)
	if err != nil {
		return apierr.ErrUpstream.Wrap(err)
	}

	return ctx.JSON(entry.Response)
}
