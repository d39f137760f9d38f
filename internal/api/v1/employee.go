package v1

import (
	"net/http"

	"github.com/drivestack/drivestack/internal/api/dto"
	ierr "github.com/drivestack/drivestack/internal/errors"
	"github.com/drivestack/drivestack/internal/logger"
	"github.com/drivestack/drivestack/internal/service"
	"github.com/drivestack/drivestack/internal/types"
	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	service service.EmployeeService
	log     *logger.Logger
}

func NewEmployeeHandler(service service.EmployeeService, log *logger.Logger) *EmployeeHandler {
	return &EmployeeHandler{service: service, log: log}
}

// @Summary Create an employee
// @Description Link a user account to the tenant as an employee
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param employee body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateEmployee(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get an employee
// @Description Get an employee
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	resp, err := h.service.GetEmployee(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List employees
// @Description List employees
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param filter query types.EmployeeFilter false "Filter"
// @Success 200 {object} dto.ListEmployeesResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var filter types.EmployeeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListEmployees(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update an employee
// @Description Update an employee's role, status, or permission overrides
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param employee body dto.UpdateEmployeeRequest true "Employee"
// @Success 200 {object} dto.EmployeeResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateEmployee(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
