package handler

import (
	"ppe-inventory-ws/internal/model"
	"ppe-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	workflow service.WorkflowService
}

func NewRequestHandler(workflow service.WorkflowService) *RequestHandler {
	return &RequestHandler{workflow: workflow}
}

// GetRequests lists dispense requests, optionally filtered by status
// GET /api/v1/requests?status=Pending
func (h *RequestHandler) GetRequests(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" {
		requests, err := h.workflow.GetRequestsByStatus(model.RequestStatus(status))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch requests"})
		}
		return c.JSON(requests)
	}

	requests, err := h.workflow.GetAllRequests()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch requests"})
	}
	return c.JSON(requests)
}

// GetRequest returns one request with its lines
// GET /api/v1/requests/:id
func (h *RequestHandler) GetRequest(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	request, err := h.workflow.GetRequestByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Request not found"})
	}
	return c.JSON(request)
}

// SubmitRequest creates a Pending dispense request
// POST /api/v1/requests
func (h *RequestHandler) SubmitRequest(c *fiber.Ctx) error {
	var in service.SubmitInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.workflow.SubmitRequest(&in, getUserEmail(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Request submitted", "data": request})
}

// ApproveRequest moves Pending -> Approved and decrements stock
// POST /api/v1/requests/:id/approve
func (h *RequestHandler) ApproveRequest(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var body struct {
		Items []service.ApprovedLine `json:"items"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, skipped, err := h.workflow.ApproveRequest(id, body.Items, getUserEmail(c))
	if err != nil {
		if err == service.ErrRequestNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Request approved", "data": request, "skipped": skipped})
}

// RejectRequest moves Pending -> Rejected
// POST /api/v1/requests/:id/reject
func (h *RequestHandler) RejectRequest(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, err := h.workflow.RejectRequest(id, body.Reason, getUserEmail(c))
	if err != nil {
		if err == service.ErrRequestNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Request rejected", "data": request})
}

// ConfirmPickup moves Approved -> Completed
// POST /api/v1/requests/:id/pickup
func (h *RequestHandler) ConfirmPickup(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	request, err := h.workflow.ConfirmPickup(id, getUserEmail(c))
	if err != nil {
		if err == service.ErrRequestNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Pickup confirmed", "data": request})
}

// WalkInDispense creates a Completed request and decrements stock atomically
// POST /api/v1/walkin
func (h *RequestHandler) WalkInDispense(c *fiber.Ctx) error {
	var in service.WalkInInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	request, skipped, err := h.workflow.WalkInDispense(&in, getUserEmail(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Walk-in dispense recorded", "data": request, "skipped": skipped})
}
