package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/quotecraft/quotecraft-api/internal/application/service"
	"github.com/quotecraft/quotecraft-api/internal/domain/enum"
	"github.com/quotecraft/quotecraft-api/internal/presentation/http/dto/response"
)

// ItemHandler handles system and line item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// AddItemRequest represents the add item request body. Either a catalog
// reference (item_type + ref_id) or custom item data must be provided.
type AddItemRequest struct {
	SystemID string  `json:"system_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`

	ItemType string  `json:"item_type"`
	RefID    *string `json:"ref_id"`

	Name        string   `json:"name"`
	Description string   `json:"description"`
	Cost        *float64 `json:"cost"`
	Currency    string   `json:"currency"`

	MarginPercent *float64 `json:"margin_percent"`
	UseMSRP       *bool    `json:"use_msrp"`
}

// UpdateItemRequest represents a line item edit. Omitted fields are left
// unchanged; the clear flags reset an override to the quotation default.
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`

	MarginPercent      *float64 `json:"margin_percent"`
	ClearMarginPercent bool     `json:"clear_margin_percent"`
	UseMSRP            *bool    `json:"use_msrp"`
	ClearUseMSRP       bool     `json:"clear_use_msrp"`

	UnitPrice *float64 `json:"unit_price"`
}

// MoveItemRequest represents a reposition request
type MoveItemRequest struct {
	Position int `json:"position" binding:"required"`
}

// SystemRequest represents a system create or rename request
type SystemRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddItem handles adding a line item to a quotation system
// @Summary Add Item
// @Description Add a catalog-referenced or custom line item to a system
// @Tags items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body AddItemRequest true "Item data"
// @Success 201 {object} response.APIResponse
// @Router /quotations/{id}/items [post]
func (h *ItemHandler) AddItem(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	systemID, err := uuid.Parse(req.SystemID)
	if err != nil {
		response.BadRequest(c, "Invalid system ID")
		return
	}

	input := service.AddItemInput{
		QuotationID:   quotationID,
		SystemID:      systemID,
		Quantity:      req.Quantity,
		MarginPercent: req.MarginPercent,
		UseMSRP:       req.UseMSRP,
	}

	if req.RefID != nil {
		refID, err := uuid.Parse(*req.RefID)
		if err != nil {
			response.BadRequest(c, "Invalid catalog reference ID")
			return
		}
		input.Ref = &service.CatalogRef{
			ItemType: enum.ItemType(req.ItemType),
			ID:       refID,
		}
	} else {
		if req.Cost == nil {
			response.BadRequest(c, "Custom item requires a cost")
			return
		}
		input.Custom = &service.CustomItemInput{
			Name:        req.Name,
			Description: req.Description,
			Cost:        *req.Cost,
			Currency:    enum.Currency(req.Currency),
		}
	}

	result, err := h.itemService.AddItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.IncompleteAssembly {
		response.SuccessWithWarning(c, 201, "Item added successfully",
			"Assembly has missing components; the item was added as a frozen custom snapshot", result.Quotation)
		return
	}
	response.Created(c, "Item added successfully", result.Quotation)
}

// UpdateItem handles editing a line item
// @Summary Update Item
// @Description Edit a line item's quantity, overrides or price
// @Tags items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param itemId path string true "Item ID"
// @Param request body UpdateItemRequest true "Item changes"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/items/{itemId} [put]
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.itemService.UpdateItem(c.Request.Context(), service.UpdateItemInput{
		QuotationID:        quotationID,
		ItemID:             itemID,
		Name:               req.Name,
		Description:        req.Description,
		Quantity:           req.Quantity,
		MarginPercent:      req.MarginPercent,
		ClearMarginPercent: req.ClearMarginPercent,
		UseMSRP:            req.UseMSRP,
		ClearUseMSRP:       req.ClearUseMSRP,
		UnitPrice:          req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", quotation)
}

// DeleteItem handles removing a line item
// @Summary Delete Item
// @Description Remove a line item and renumber the remaining ones
// @Tags items
// @Security BearerAuth
// @Param id path string true "Quotation ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/items/{itemId} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	quotation, err := h.itemService.DeleteItem(c.Request.Context(), quotationID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", quotation)
}

// MoveItem handles repositioning a line item within its system
// @Summary Move Item
// @Description Move a line item to a new 1-based position
// @Tags items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param itemId path string true "Item ID"
// @Param request body MoveItemRequest true "Target position"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/items/{itemId}/position [put]
func (h *ItemHandler) MoveItem(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}
	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.itemService.MoveItem(c.Request.Context(), quotationID, itemID, req.Position)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item moved successfully", quotation)
}

// AddSystem handles adding a system to a quotation
// @Summary Add System
// @Description Append a named system to the quotation
// @Tags systems
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body SystemRequest true "System data"
// @Success 201 {object} response.APIResponse
// @Router /quotations/{id}/systems [post]
func (h *ItemHandler) AddSystem(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req SystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.itemService.AddSystem(c.Request.Context(), quotationID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "System added successfully", quotation)
}

// RenameSystem handles renaming a system
// @Summary Rename System
// @Description Change a system's display name
// @Tags systems
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param systemId path string true "System ID"
// @Param request body SystemRequest true "System data"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/systems/{systemId} [put]
func (h *ItemHandler) RenameSystem(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}
	systemID, err := uuid.Parse(c.Param("systemId"))
	if err != nil {
		response.BadRequest(c, "Invalid system ID")
		return
	}

	var req SystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.itemService.RenameSystem(c.Request.Context(), quotationID, systemID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "System renamed successfully", quotation)
}

// DeleteSystem handles removing a system with its items
// @Summary Delete System
// @Description Remove a system and all of its items
// @Tags systems
// @Security BearerAuth
// @Param id path string true "Quotation ID"
// @Param systemId path string true "System ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/systems/{systemId} [delete]
func (h *ItemHandler) DeleteSystem(c *gin.Context) {
	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}
	systemID, err := uuid.Parse(c.Param("systemId"))
	if err != nil {
		response.BadRequest(c, "Invalid system ID")
		return
	}

	quotation, err := h.itemService.DeleteSystem(c.Request.Context(), quotationID, systemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "System deleted successfully", quotation)
}
