package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/orderstatus/internal/domain/errors"
	"github.com/polkiloo/orderstatus/internal/domain/model"
	"github.com/polkiloo/orderstatus/internal/server/http/dto"
)

const orderIDParam = "orderId"

// OrderStatusHandler manages order status endpoints.
type OrderStatusHandler struct {
	facade OrderStatusFacade
}

// NewOrderStatusHandler constructs OrderStatusHandler.
func NewOrderStatusHandler(facade OrderStatusFacade) *OrderStatusHandler {
	return &OrderStatusHandler{facade: facade}
}

// Get handles GET /orderstatus/:orderId.
func (h *OrderStatusHandler) Get(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	record, err := h.facade.OrderStatus(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}

	text, err := record.Render()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: domainErrors.ErrInternal.Error()})
		return
	}
	c.String(http.StatusOK, text)
}

// Update handles PUT /orderstatus/:orderId.
func (h *OrderStatusHandler) Update(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.facade.UpdateOrderStatus(c.Request.Context(), orderID, status); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param(orderIDParam))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "order id must be a valid uuid"})
		return uuid.Nil, false
	}
	return orderID, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrOrderStatusNotFound):
		c.String(http.StatusNotFound, err.Error())
	case errors.Is(err, domainErrors.ErrInvalidOrder), errors.Is(err, domainErrors.ErrUnknownStatus):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrDuplicateOrder):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: domainErrors.ErrInternal.Error()})
	}
}
