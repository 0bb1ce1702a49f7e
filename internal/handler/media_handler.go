package handler

import (
	"github.com/gofiber/fiber/v2"

	"swasthya-admin/internal/middleware"
	"swasthya-admin/internal/service/media"
)

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadIcon accepts a multipart icon file and returns the public URL to
// store on a node.
func (h *MediaHandler) UploadIcon(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read file")
	}
	defer file.Close()

	url, err := h.mediaService.UploadIcon(
		c.Context(),
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
