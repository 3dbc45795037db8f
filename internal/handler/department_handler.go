package handler

import (
	"ppe-inventory-ws/internal/model"
	"ppe-inventory-ws/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// DepartmentHandler is a thin CRUD surface over the department picklist; it
// takes the repository directly, there is no business logic to wrap.
type DepartmentHandler struct {
	deptRepo repository.DepartmentRepository
}

func NewDepartmentHandler(deptRepo repository.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{deptRepo: deptRepo}
}

// GetDepartments returns the picklist
// GET /api/v1/departments
func (h *DepartmentHandler) GetDepartments(c *fiber.Ctx) error {
	depts, err := h.deptRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch departments"})
	}
	return c.JSON(depts)
}

// CreateDepartment adds a picklist entry
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if body.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	if existing, _ := h.deptRepo.FindByName(body.Name); existing != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Department already exists"})
	}

	dept := &model.Department{Name: body.Name}
	dept.CreatedBy = getUserEmail(c)
	dept.UpdatedBy = getUserEmail(c)
	if err := h.deptRepo.Create(dept); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create department"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Department created", "data": dept})
}

// DeleteDepartment removes a picklist entry by name. Requests keep whatever
// department text they were created with.
// DELETE /api/v1/departments/:name
func (h *DepartmentHandler) DeleteDepartment(c *fiber.Ctx) error {
	name := c.Params("name")
	if _, err := h.deptRepo.FindByName(name); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Department not found"})
	}

	if err := h.deptRepo.DeleteByName(name, getUserEmail(c)); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete department"})
	}

	return c.JSON(fiber.Map{"message": "Department deleted"})
}
