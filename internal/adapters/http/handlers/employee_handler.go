package handlers

import (
	"errors"
	"strconv"

	"staffdesk/internal/core/domain"
	"staffdesk/internal/core/services"
	"staffdesk/internal/pkg/logger"
	"staffdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const employeeNotFoundMessage = "Employee not found"

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	log             logger.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService, log logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		log:             log,
	}
}

// Index lists all employees
// @Summary List employees
// @Description Get every employee record
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.DataResponse{data=[]models.Employee}
// @Failure 401 {object} response.MessageResponse
// @Router /employees [get]
func (h *EmployeeHandler) Index(c *fiber.Ctx) error {
	employees, err := h.employeeService.List(c.Context())
	if err != nil {
		return serverError(c, h.log, "list employees failed", err)
	}

	return response.Success(c, employees)
}

// Store creates a new employee
// @Summary Create employee
// @Description Validate and store a new employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.EmployeeInput true "Employee data"
// @Success 201 {object} response.DataResponse{data=models.Employee}
// @Failure 401 {object} response.MessageResponse
// @Failure 422 {object} response.ValidationResponse
// @Router /employees [post]
func (h *EmployeeHandler) Store(c *fiber.Ctx) error {
	var input services.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Create(c.Context(), input)
	if err != nil {
		return h.handleError(c, "create employee failed", err)
	}

	return response.Created(c, employee)
}

// Show returns one employee
// @Summary Get employee
// @Description Get an employee by ID
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.DataResponse{data=models.Employee}
// @Failure 401 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Show(c *fiber.Ctx) error {
	id, ok := employeeID(c)
	if !ok {
		return response.NotFound(c, employeeNotFoundMessage)
	}

	employee, err := h.employeeService.Get(c.Context(), id)
	if err != nil {
		return h.handleError(c, "get employee failed", err)
	}

	return response.Success(c, employee)
}

// Update replaces an employee's fields
// @Summary Update employee
// @Description Replace every editable field of an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.EmployeeInput true "Employee data"
// @Success 200 {object} response.DataResponse{data=models.Employee}
// @Failure 401 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Failure 422 {object} response.ValidationResponse
// @Router /employees/{id} [put]
// @Router /employees/{id} [patch]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, ok := employeeID(c)
	if !ok {
		return response.NotFound(c, employeeNotFoundMessage)
	}

	var input services.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.Context(), id, input)
	if err != nil {
		return h.handleError(c, "update employee failed", err)
	}

	return response.Success(c, employee)
}

// Destroy deletes an employee
// @Summary Delete employee
// @Description Permanently delete an employee
// @Tags Employees
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 204
// @Failure 401 {object} response.MessageResponse
// @Failure 404 {object} response.MessageResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Destroy(c *fiber.Ctx) error {
	id, ok := employeeID(c)
	if !ok {
		return response.NotFound(c, employeeNotFoundMessage)
	}

	if err := h.employeeService.Delete(c.Context(), id); err != nil {
		return h.handleError(c, "delete employee failed", err)
	}

	return response.NoContent(c)
}

func (h *EmployeeHandler) handleError(c *fiber.Ctx, msg string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.ValidationFailed(c, verr)
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return response.NotFound(c, employeeNotFoundMessage)
	default:
		return serverError(c, h.log, msg, err)
	}
}

// employeeID parses the :id route parameter
func employeeID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
