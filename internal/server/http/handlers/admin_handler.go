package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/server/http/dto"
	"github.com/cyna-app/commerce/internal/usecase"
)

// AdminHandler serves the administrative order surface.
type AdminHandler struct {
	facade AdminFacade
	logger *slog.Logger
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{facade: facade, logger: logger}
}

// List handles GET /api/admin/orders.
func (h *AdminHandler) List(c *gin.Context) {
	orders, page, err := h.facade.AllOrders(c.Request.Context(), usecase.ListQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderList(orders, page))
}

// Get handles GET /api/admin/orders/:id. The stored snapshot is enriched
// with live provider state; a provider failure degrades to the snapshot.
func (h *AdminHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	detail, err := h.facade.Order(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	response := dto.AdminOrderDetailResponse{OrderDetailResponse: toDetailResponse(detail)}

	intent, err := h.facade.CheckPayment(c.Request.Context(), detail.PaymentRef)
	if err != nil {
		h.logger.Warn("live payment state unavailable",
			slog.String("payment_ref", detail.PaymentRef),
			slog.String("error", err.Error()),
		)
	} else {
		response.Provider = &dto.ProviderStateResponse{
			Status:   string(intent.Status),
			Amount:   intent.Amount,
			Currency: intent.Currency,
		}
	}

	c.JSON(http.StatusOK, response)
}

// UpdateStatus handles PATCH /api/admin/orders/:id.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	status := model.OrderStatus(req.Status)
	if !status.Known() {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.UpdateOrderStatus(c.Request.Context(), id, status, req.Version)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderImmutable), errors.Is(err, domainErrors.ErrVersionConflict):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Refund handles POST /api/admin/orders/:id/refund.
func (h *AdminHandler) Refund(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.RefundOrder(c.Request.Context(), id, req.Amount, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderNotPaid):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrUpstreamUnavailable):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Annotate handles POST /api/admin/orders/:id/annotate.
func (h *AdminHandler) Annotate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Key == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.AnnotateOrder(c.Request.Context(), id, req.Key, req.Value); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
