package handler

import (
	"github.com/gofiber/fiber/v2"

	"fileview/internal/filetype"
	"fileview/internal/model"
)

// classifyResponse is a profile plus whether the name maps to a known type.
type classifyResponse struct {
	model.FileTypeProfile
	Extension string `json:"extension"`
	Supported bool   `json:"supported"`
}

// ListFileTypes returns the registry table in display order.
//
// @Summary  List supported file types
// @Tags     file-types
// @Produce  json
// @Success  200 {array} model.FileTypeProfile
// @Router   /file-types [get]
func ListFileTypes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(filetype.Profiles())
	}
}

// ClassifyFile classifies a file name by extension.
//
// @Summary  Classify a file name
// @Tags     file-types
// @Produce  json
// @Param    name query string true "File name"
// @Success  200 {object} classifyResponse
// @Failure  400 {object} errorPayload
// @Router   /file-types/classify [get]
func ClassifyFile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")
		if name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
		}
		return c.JSON(classifyResponse{
			FileTypeProfile: filetype.Classify(name),
			Extension:       filetype.Extension(name),
			Supported:       filetype.IsSupported(name),
		})
	}
}

// DescribeFile turns a picked file into a descriptor.
//
// @Summary  Describe a picked file
// @Tags     files
// @Accept   json
// @Produce  json
// @Param    file body model.RawFile true "Picked file"
// @Success  200 {object} model.FileDescriptor
// @Failure  400 {object} errorPayload
// @Router   /files/describe [post]
func DescribeFile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var raw model.RawFile
		if err := c.BodyParser(&raw); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if raw.URI == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri is required")
		}
		return c.JSON(filetype.Describe(raw))
	}
}
