package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/application/service"
	"github.com/quotecraft/quotecraft-api/internal/domain/entity"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/internal/domain/repository"
	"github.com/quotecraft/quotecraft-api/internal/presentation/http/dto/response"
	"github.com/quotecraft/quotecraft-api/pkg/pagination"
)

// CatalogHandler handles component, assembly and labor type HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ComponentRequest represents a component create or update request
type ComponentRequest struct {
	Manufacturer string  `json:"manufacturer" binding:"required"`
	PartNumber   string  `json:"part_number" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Cost         float64 `json:"cost"`
	Currency     string  `json:"currency" binding:"required"`

	MSRPPrice              *float64 `json:"msrp_price"`
	MSRPCurrency           *string  `json:"msrp_currency"`
	PartnerDiscountPercent *float64 `json:"partner_discount_percent"`

	Active *bool `json:"active"`
}

// AssemblyRequest represents an assembly create or update request
type AssemblyRequest struct {
	Name        string                  `json:"name" binding:"required"`
	Description string                  `json:"description"`
	Currency    string                  `json:"currency" binding:"required"`
	Members     []AssemblyMemberRequest `json:"members"`
}

// AssemblyMemberRequest represents one member row of an assembly
type AssemblyMemberRequest struct {
	ComponentID string  `json:"component_id" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required"`
}

// ReplaceMembersRequest represents a wholesale member list replacement
type ReplaceMembersRequest struct {
	Members []AssemblyMemberRequest `json:"members"`
}

// LaborTypeRequest represents a labor type create or update request
type LaborTypeRequest struct {
	Name        string   `json:"name" binding:"required"`
	Subtype     string   `json:"subtype"`
	IsInternal  bool     `json:"is_internal"`
	DayRate     *float64 `json:"day_rate"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
}

func catalogParams(c *gin.Context) *repository.CatalogFilterParams {
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
	return &repository.CatalogFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}
}

func (r *ComponentRequest) toEntity() *entity.Component {
	component := &entity.Component{
		Manufacturer: r.Manufacturer,
		PartNumber:   r.PartNumber,
		Name:         r.Name,
		Description:  r.Description,
		Cost:         r.Cost,
		Currency:     enum.Currency(r.Currency),
		MSRPPrice:    r.MSRPPrice,

		PartnerDiscountPercent: r.PartnerDiscountPercent,
		Active:                 true,
	}
	if r.MSRPCurrency != nil {
		cur := enum.Currency(*r.MSRPCurrency)
		component.MSRPCurrency = &cur
	}
	if r.Active != nil {
		component.Active = *r.Active
	}
	return component
}

// ListComponents handles listing catalog components
// @Summary List Components
// @Description Get catalog components with pagination and search
// @Tags catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /components [get]
func (h *CatalogHandler) ListComponents(c *gin.Context) {
	result, err := h.catalogService.ListComponents(c.Request.Context(), catalogParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Components retrieved successfully", result)
}

// GetComponent handles getting a single component
func (h *CatalogHandler) GetComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	component, err := h.catalogService.GetComponent(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Component retrieved successfully", component)
}

// CreateComponent handles creating a component
func (h *CatalogHandler) CreateComponent(c *gin.Context) {
	var req ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	component := req.toEntity()
	if err := h.catalogService.CreateComponent(c.Request.Context(), component); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Component created successfully", component)
}

// UpdateComponent handles updating a component
func (h *CatalogHandler) UpdateComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	var req ComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	component := req.toEntity()
	component.ID = id
	if err := h.catalogService.UpdateComponent(c.Request.Context(), component); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Component updated successfully", component)
}

// DeleteComponent handles deleting a component
func (h *CatalogHandler) DeleteComponent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid component ID")
		return
	}

	if err := h.catalogService.DeleteComponent(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAssemblies handles listing catalog assemblies
func (h *CatalogHandler) ListAssemblies(c *gin.Context) {
	result, err := h.catalogService.ListAssemblies(c.Request.Context(), catalogParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Assemblies retrieved successfully", result)
}

// GetAssembly handles getting an assembly with its members and live roll-up
func (h *CatalogHandler) GetAssembly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	assembly, rollup, err := h.catalogService.GetAssembly(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Assembly retrieved successfully", gin.H{
		"assembly": assembly,
		"rollup":   rollup,
	})
}

// CreateAssembly handles creating an assembly
func (h *CatalogHandler) CreateAssembly(c *gin.Context) {
	var req AssemblyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	members, err := parseMembers(req.Members)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	assembly := &entity.Assembly{
		Name:        req.Name,
		Description: req.Description,
		Currency:    enum.Currency(req.Currency),
		Members:     members,
	}
	if err := h.catalogService.CreateAssembly(c.Request.Context(), assembly); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Assembly created successfully", assembly)
}

// UpdateAssembly handles updating an assembly header
func (h *CatalogHandler) UpdateAssembly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	var req AssemblyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	assembly := &entity.Assembly{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Currency:    enum.Currency(req.Currency),
	}
	if err := h.catalogService.UpdateAssembly(c.Request.Context(), assembly); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Assembly updated successfully", assembly)
}

// ReplaceMembers handles replacing an assembly's member list
func (h *CatalogHandler) ReplaceMembers(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	var req ReplaceMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	members, err := parseMembers(req.Members)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.catalogService.ReplaceMembers(c.Request.Context(), id, members); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Assembly members replaced successfully", nil)
}

// DeleteAssembly handles deleting an assembly
func (h *CatalogHandler) DeleteAssembly(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid assembly ID")
		return
	}

	if err := h.catalogService.DeleteAssembly(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListLaborTypes handles listing catalog labor types
func (h *CatalogHandler) ListLaborTypes(c *gin.Context) {
	result, err := h.catalogService.ListLaborTypes(c.Request.Context(), catalogParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Labor types retrieved successfully", result)
}

// GetLaborType handles getting a single labor type
func (h *CatalogHandler) GetLaborType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid labor type ID")
		return
	}

	laborType, err := h.catalogService.GetLaborType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Labor type retrieved successfully", laborType)
}

// CreateLaborType handles creating a labor type
func (h *CatalogHandler) CreateLaborType(c *gin.Context) {
	var req LaborTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	laborType := req.toEntity()
	if err := h.catalogService.CreateLaborType(c.Request.Context(), laborType); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Labor type created successfully", laborType)
}

// UpdateLaborType handles updating a labor type
func (h *CatalogHandler) UpdateLaborType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid labor type ID")
		return
	}

	var req LaborTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	laborType := req.toEntity()
	laborType.ID = id
	if err := h.catalogService.UpdateLaborType(c.Request.Context(), laborType); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Labor type updated successfully", laborType)
}

// DeleteLaborType handles deleting a labor type
func (h *CatalogHandler) DeleteLaborType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid labor type ID")
		return
	}

	if err := h.catalogService.DeleteLaborType(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (r *LaborTypeRequest) toEntity() *entity.LaborType {
	currency := enum.CurrencyILS
	if r.Currency != "" {
		currency = enum.Currency(r.Currency)
	}
	return &entity.LaborType{
		Name:        r.Name,
		Subtype:     r.Subtype,
		IsInternal:  r.IsInternal,
		DayRate:     r.DayRate,
		Currency:    currency,
		Description: r.Description,
	}
}

func parseMembers(rows []AssemblyMemberRequest) ([]entity.AssemblyComponent, error) {
	members := make([]entity.AssemblyComponent, 0, len(rows))
	for _, row := range rows {
		componentID, err := uuid.Parse(row.ComponentID)
		if err != nil {
			return nil, errors.New("Invalid component ID in members")
		}
		members = append(members, entity.AssemblyComponent{
			ComponentID: componentID,
			Quantity:    row.Quantity,
		})
	}
	return members, nil
}
