package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"swasthya-admin/internal/domain"
	"swasthya-admin/internal/middleware"
	"swasthya-admin/internal/service/audience"
	"swasthya-admin/internal/service/dispatch"
	"swasthya-admin/internal/service/node"
	"swasthya-admin/internal/service/tree"
)

type AlgorithmHandler struct {
	treeService     tree.Service
	audienceService audience.Service
	nodeService     node.Service
	dispatchService dispatch.Service
}

func NewAlgorithmHandler(treeService tree.Service, audienceService audience.Service, nodeService node.Service, dispatchService dispatch.Service) *AlgorithmHandler {
	return &AlgorithmHandler{
		treeService:     treeService,
		audienceService: audienceService,
		nodeService:     nodeService,
		dispatchService: dispatchService,
	}
}

// GetTree is the subscriber-facing localized subtree view.
func (h *AlgorithmHandler) GetTree(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	nodeID, err := uuid.Parse(c.Params("nodeId"))
	if err != nil {
		return middleware.BadRequest("Invalid node ID")
	}

	resolved, err := h.treeService.ResolveTree(c.Context(), vertical, nodeID, c.Query("lang"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resolved)
}

// GetAllTrees resolves every activated root's subtree in the vertical.
func (h *AlgorithmHandler) GetAllTrees(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	trees, err := h.treeService.ResolveAllRootTrees(c.Context(), vertical, c.Query("lang"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(trees)
}

// GetVisibleRoots lists the activated roots the subscriber is targeted by.
func (h *AlgorithmHandler) GetVisibleRoots(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	subscriberID, err := uuid.Parse(c.Params("subscriberId"))
	if err != nil {
		return middleware.BadRequest("Invalid subscriber ID")
	}

	roots, err := h.audienceService.VisibleRoots(c.Context(), vertical, subscriberID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(roots)
}

// ListRoots is the raw, unlocalized authoring view over root nodes.
func (h *AlgorithmHandler) ListRoots(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	roots, err := h.treeService.ListRoots(c.Context(), vertical)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(roots)
}

func (h *AlgorithmHandler) ListNodes(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	result, err := h.nodeService.List(c.Context(), vertical, getPaginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AlgorithmHandler) GetNode(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	nodeID, err := uuid.Parse(c.Params("nodeId"))
	if err != nil {
		return middleware.BadRequest("Invalid node ID")
	}

	found, err := h.nodeService.GetByID(c.Context(), vertical, nodeID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *AlgorithmHandler) CreateNode(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	adminID, err := middleware.GetAdminID(c)
	if err != nil {
		return err
	}

	var input domain.CreateNodeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	created, err := h.nodeService.Create(c.Context(), vertical, adminID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *AlgorithmHandler) UpdateNode(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	adminID, err := middleware.GetAdminID(c)
	if err != nil {
		return err
	}

	nodeID, err := uuid.Parse(c.Params("nodeId"))
	if err != nil {
		return middleware.BadRequest("Invalid node ID")
	}

	var input domain.UpdateNodeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	updated, err := h.nodeService.Update(c.Context(), vertical, nodeID, adminID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *AlgorithmHandler) SetActivated(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	nodeID, err := uuid.Parse(c.Params("nodeId"))
	if err != nil {
		return middleware.BadRequest("Invalid node ID")
	}

	var body struct {
		Activated bool `json:"activated"`
	}
	if err := c.BodyParser(&body); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.nodeService.SetActivated(c.Context(), vertical, nodeID, body.Activated); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *AlgorithmHandler) DeleteNode(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	nodeID, err := uuid.Parse(c.Params("nodeId"))
	if err != nil {
		return middleware.BadRequest("Invalid node ID")
	}

	// The delete endpoint is the one place a node is removed for real;
	// everything else toggles deleted_at or activated.
	if c.Query("soft") == "true" {
		if err := h.nodeService.SoftDelete(c.Context(), vertical, nodeID); err != nil {
			return err
		}
	} else {
		if err := h.nodeService.HardDelete(c.Context(), vertical, nodeID); err != nil {
			return err
		}
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

// Notify triggers the initial-notification fan-out for a node.
func (h *AlgorithmHandler) Notify(c *fiber.Ctx) error {
	vertical, err := getVertical(c)
	if err != nil {
		return err
	}

	adminID, err := middleware.GetAdminID(c)
	if err != nil {
		return err
	}

	nodeID, err := uuid.Parse(c.Params("nodeId"))
	if err != nil {
		return middleware.BadRequest("Invalid node ID")
	}

	result, err := h.dispatchService.Dispatch(c.Context(), vertical, nodeID, adminID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
