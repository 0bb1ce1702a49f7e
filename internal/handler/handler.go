package handler

import (
	"github.com/gofiber/fiber/v2"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/middleware"
	"swasthya-admin/internal/service"
)

type Handlers struct {
	Algorithm    *AlgorithmHandler
	Notification *NotificationHandler
	Media        *MediaHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Algorithm:    NewAlgorithmHandler(services.Tree, services.Audience, services.Node, services.Dispatch),
		Notification: NewNotificationHandler(services.Notification),
		Media:        NewMediaHandler(services.Media),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
	params.Validate()
	return params
}

func getVertical(c *fiber.Ctx) (domain.Vertical, error) {
	vertical, ok := domain.ParseVertical(c.Params("vertical"))
	if !ok {
		return "", middleware.BadRequest("Unknown algorithm vertical: " + c.Params("vertical"))
	}
	return vertical, nil
}
