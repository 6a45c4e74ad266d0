package handler

import "github.com/gofiber/fiber/v2"

// StagingPurger drops staged copies of provider files.
type StagingPurger interface {
	Purge()
}

// PurgeStagedFiles deletes every cached copy made for the external viewer.
// Later opens of provider files copy them again.
//
// @Summary  Purge staged copies
// @Tags     files
// @Success  204
// @Router   /files/staged [delete]
func PurgeStagedFiles(staging StagingPurger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		staging.Purge()
		return c.SendStatus(fiber.StatusNoContent)
	}
}
