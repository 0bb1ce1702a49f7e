package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/middleware"
	"swasthya-admin/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var vertical *domain.Vertical
	if raw := c.Query("vertical"); raw != "" {
		v, ok := domain.ParseVertical(raw)
		if !ok {
			return middleware.BadRequest("Unknown algorithm vertical: " + raw)
		}
		vertical = &v
	}

	result, err := h.notifService.List(c.Context(), vertical, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	record, err := h.notifService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	if record == nil {
		return middleware.NotFound("Notification not found")
	}

	return c.Status(fiber.StatusOK).JSON(record)
}
