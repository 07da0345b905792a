package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/application/service"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"github.com/quotecraft/quotecraft-api/internal/presentation/http/dto/response"
	"github.com/quotecraft/quotecraft-api/pkg/pagination"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// CreateQuotationRequest represents the create quotation request body
type CreateQuotationRequest struct {
	CustomerName  string   `json:"customer_name" binding:"required"`
	RateUSDToILS  float64  `json:"rate_usd_to_ils"`
	RateEURToILS  float64  `json:"rate_eur_to_ils"`
	MarginPercent *float64 `json:"margin_percent"`
	DayRateILS    *float64 `json:"day_rate_ils"`
	UseMSRP       bool     `json:"use_msrp"`
	Note          *string  `json:"note"`
	SystemNames   []string `json:"system_names"`
}

// UpdateParametersRequest represents a header-level parameter update. Omitted
// fields are left unchanged.
type UpdateParametersRequest struct {
	Version       int      `json:"version" binding:"required"`
	CustomerName  *string  `json:"customer_name"`
	Note          *string  `json:"note"`
	RateUSDToILS  *float64 `json:"rate_usd_to_ils"`
	RateEURToILS  *float64 `json:"rate_eur_to_ils"`
	MarginPercent *float64 `json:"margin_percent"`
	DayRateILS    *float64 `json:"day_rate_ils"`
	UseMSRP       *bool    `json:"use_msrp"`
}

// UpdateStatusRequest represents a status change request
type UpdateStatusRequest struct {
	Status int `json:"status"`
}

// List handles listing quotations
// @Summary List Quotations
// @Description Get the authenticated user's quotations with pagination and filtering
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Success 200 {object} response.APIResponse
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	var status *enum.QuotationStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.QuotationStatus(parsed)
			status = &st
		}
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), *userID, &repository.QuotationFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search: c.Query("search"),
		Status: status,
		Number: c.Query("number"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Get handles getting a single quotation with its full tree
// @Summary Get Quotation
// @Description Get a quotation by ID with its systems and items
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Description Create a new draft quotation at version 1
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateQuotationRequest true "Quotation data"
// @Success 201 {object} response.APIResponse
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateQuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.quotationService.Create(c.Request.Context(), service.CreateQuotationInput{
		OwnerID:       *userID,
		CustomerName:  req.CustomerName,
		RateUSDToILS:  req.RateUSDToILS,
		RateEURToILS:  req.RateEURToILS,
		MarginPercent: req.MarginPercent,
		DayRateILS:    req.DayRateILS,
		UseMSRP:       req.UseMSRP,
		Note:          req.Note,
		SystemNames:   req.SystemNames,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// UpdateParameters handles header-level pricing parameter updates
// @Summary Update Quotation Parameters
// @Description Update header parameters and recalculate affected items
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body UpdateParametersRequest true "Parameter changes"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/parameters [put]
func (h *QuotationHandler) UpdateParameters(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req UpdateParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.quotationService.UpdateParameters(c.Request.Context(), service.UpdateParametersInput{
		ID:            id,
		Version:       req.Version,
		CustomerName:  req.CustomerName,
		Note:          req.Note,
		RateUSDToILS:  req.RateUSDToILS,
		RateEURToILS:  req.RateEURToILS,
		MarginPercent: req.MarginPercent,
		DayRateILS:    req.DayRateILS,
		UseMSRP:       req.UseMSRP,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

// NewVersion handles creating a new version of a quotation
// @Summary New Quotation Version
// @Description Copy the quotation tree into a new draft version
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} response.APIResponse
// @Router /quotations/{id}/versions [post]
func (h *QuotationHandler) NewVersion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.NewVersion(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation version created successfully", quotation)
}

// UpdateStatus handles quotation status changes
// @Summary Update Quotation Status
// @Description Move a quotation to a new lifecycle status
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/status [put]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.quotationService.UpdateStatus(c.Request.Context(), id, enum.QuotationStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation status updated successfully", nil)
}

// Delete handles deleting a quotation
// @Summary Delete Quotation
// @Description Delete a quotation with its systems and items
// @Tags quotations
// @Security BearerAuth
// @Param id path string true "Quotation ID"
// @Success 204
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
