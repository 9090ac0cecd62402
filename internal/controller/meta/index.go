package meta

import "github.com/gofiber/fiber/v2"

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "folio-stats: LeetCode statistics for the portfolio site",
			"routes":  []string{"/api/stats", "/api/leetcode"},
		})
	})
}
