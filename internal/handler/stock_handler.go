package handler

import (
	"ppe-inventory-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	workflow service.WorkflowService
}

func NewStockHandler(workflow service.WorkflowService) *StockHandler {
	return &StockHandler{workflow: workflow}
}

// ReceiveStock records a stock-in and increments quantities
// POST /api/v1/stock/receive
func (h *StockHandler) ReceiveStock(c *fiber.Ctx) error {
	var in service.ReceiveInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	logEntry, skipped, err := h.workflow.ReceiveStock(&in, getUserEmail(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock received", "data": logEntry, "skipped": skipped})
}

// AdjustStock applies a single-item manual correction
// POST /api/v1/stock/adjust
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	var in service.AdjustInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	item, err := h.workflow.AdjustStock(&in, getUserEmail(c))
	if err != nil {
		if err == service.ErrItemNotFound {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": item})
}

// StockTake applies bulk absolute counts
// POST /api/v1/stock/take
func (h *StockHandler) StockTake(c *fiber.Ctx) error {
	var body struct {
		Counts []service.StockCount `json:"counts"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	skipped, err := h.workflow.StockTake(body.Counts, getUserEmail(c))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Stock take recorded", "skipped": skipped})
}

// GetReceiveLogs lists stock-in history
// GET /api/v1/stock/receive-logs
func (h *StockHandler) GetReceiveLogs(c *fiber.Ctx) error {
	logs, err := h.workflow.GetReceiveLogs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch receive logs"})
	}
	return c.JSON(logs)
}

// GetAdjustLogs lists adjustment history
// GET /api/v1/stock/adjust-logs
func (h *StockHandler) GetAdjustLogs(c *fiber.Ctx) error {
	logs, err := h.workflow.GetAdjustLogs()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch adjust logs"})
	}
	return c.JSON(logs)
}
