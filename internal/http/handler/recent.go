package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"fileview/internal/filetype"
	"fileview/internal/model"
	"fileview/internal/service"
)

// recentFileView adds display labels to a stored descriptor.
type recentFileView struct {
	model.FileDescriptor
	SizeLabel     string `json:"sizeLabel"`
	OpenedAtLabel string `json:"openedAtLabel,omitempty"`
}

// RecentFilesResponse is the list envelope of the recent files endpoints.
type RecentFilesResponse struct {
	Items []recentFileView `json:"data"`
	Total int              `json:"total"`
}

func newRecentFilesResponse(files []model.FileDescriptor, now time.Time) RecentFilesResponse {
	items := make([]recentFileView, 0, len(files))
	for _, f := range files {
		v := recentFileView{FileDescriptor: f, SizeLabel: filetype.FormatSize(f.Size)}
		if f.OpenedAt != nil {
			v.OpenedAtLabel = filetype.FormatOpenedAt(*f.OpenedAt, now)
		}
		items = append(items, v)
	}
	return RecentFilesResponse{Items: items, Total: len(items)}
}

// ListRecentFiles returns the recent files, newest first.
//
// @Summary  List recent files
// @Tags     recent-files
// @Produce  json
// @Success  200 {object} RecentFilesResponse
// @Failure  500 {object} errorPayload
// @Router   /recent-files [get]
func ListRecentFiles(store service.RecentFilesStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := store.GetRecentFiles(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(newRecentFilesResponse(files, time.Now()))
	}
}

// SaveRecentFile records a file as just opened.
//
// @Summary  Record a recent file
// @Tags     recent-files
// @Accept   json
// @Produce  json
// @Param    file body model.FileDescriptor true "Opened file"
// @Success  201 {object} RecentFilesResponse
// @Failure  400 {object} errorPayload
// @Router   /recent-files [post]
func SaveRecentFile(store service.RecentFilesStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d model.FileDescriptor
		if err := c.BodyParser(&d); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if d.URI == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri is required")
		}

		files, err := store.SaveRecentFile(c.UserContext(), filetype.Normalize(d))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(newRecentFilesResponse(files, time.Now()))
	}
}

// ClearRecentFile removes one URI from the list.
//
// @Summary  Remove a recent file
// @Tags     recent-files
// @Produce  json
// @Param    uri query string true "File URI"
// @Success  200 {object} RecentFilesResponse
// @Failure  400 {object} errorPayload
// @Router   /recent-files [delete]
func ClearRecentFile(store service.RecentFilesStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uri := c.Query("uri")
		if uri == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri is required")
		}

		files, err := store.ClearRecentFile(c.UserContext(), uri)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(newRecentFilesResponse(files, time.Now()))
	}
}

// ClearAllRecentFiles empties the list.
//
// @Summary  Clear recent files
// @Tags     recent-files
// @Success  204
// @Router   /recent-files/all [delete]
func ClearAllRecentFiles(store service.RecentFilesStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.ClearAllRecentFiles(c.UserContext()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
