package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"fileview/internal/filetype"
	"fileview/internal/model"
	"fileview/internal/service"
)

// OpenFile opens a file in an external application and, on success,
// records it in the recent files list.
//
// @Summary  Open a file
// @Tags     files
// @Accept   json
// @Param    file body model.FileDescriptor true "File to open"
// @Success  204
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  422 {object} errorPayload
// @Failure  503 {object} errorPayload
// @Router   /files/open [post]
func OpenFile(opener service.FileOpener, recent service.RecentFilesStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d model.FileDescriptor
		if err := c.BodyParser(&d); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if d.URI == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri is required")
		}
		d = filetype.Normalize(d)

		if err := opener.Open(c.UserContext(), d); err != nil {
			return writeFileError(c, err)
		}

		if recent != nil {
			if _, err := recent.SaveRecentFile(c.UserContext(), d); err != nil {
				slog.WarnContext(c.UserContext(), "recent_files_save_failed",
					"request_id", requestIDFromCtx(c), "uri", d.URI, "error", err.Error())
			}
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
