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

type ContractHandler struct {
	service service.ContractService
	log     *logger.Logger
}

func NewContractHandler(service service.ContractService, log *logger.Logger) *ContractHandler {
	return &ContractHandler{service: service, log: log}
}

// @Summary Create a contract
// @Description Open a new rental contract with a snapshotted distance allowance
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contract body dto.CreateContractRequest true "Contract"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /contracts [post]
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateContract(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a contract
// @Description Get a contract
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Success 200 {object} dto.ContractResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /contracts/{id} [get]
func (h *ContractHandler) GetContract(c *gin.Context) {
	resp, err := h.service.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List contracts
// @Description List contracts
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param filter query types.ContractFilter false "Filter"
// @Success 200 {object} dto.ListContractsResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /contracts [get]
func (h *ContractHandler) ListContracts(c *gin.Context) {
	var filter types.ContractFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListContracts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Complete a contract
// @Description Complete an active contract and settle the overage charge
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Param completion body dto.CompleteContractRequest true "Completion"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /contracts/{id}/complete [post]
func (h *ContractHandler) CompleteContract(c *gin.Context) {
	var req dto.CompleteContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CompleteContract(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Extend a contract
// @Description Move the end date of an active contract forward
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Param extension body dto.ExtendContractRequest true "Extension"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /contracts/{id}/extend [post]
func (h *ContractHandler) ExtendContract(c *gin.Context) {
	var req dto.ExtendContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ExtendContract(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a contract
// @Description Cancel an active contract with an audit reason
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Param cancellation body dto.CancelContractRequest true "Cancellation"
// @Success 200 {object} dto.ContractResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /contracts/{id}/cancel [post]
func (h *ContractHandler) CancelContract(c *gin.Context) {
	var req dto.CancelContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CancelContract(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Estimate overage
// @Description Preview the overage charge for a candidate end odometer
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Param estimate body dto.EstimateOverageRequest true "Estimate"
// @Success 200 {object} dto.OverageBreakdown
// @Failure 400 {object} ierr.ErrorResponse
// @Router /contracts/{id}/overage-estimate [post]
func (h *ContractHandler) EstimateOverage(c *gin.Context) {
	var req dto.EstimateOverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.EstimateOverage(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
