package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/server/http/dto"
	"github.com/cyna-app/commerce/internal/server/http/middleware"
	"github.com/cyna-app/commerce/internal/usecase"
)

// CheckoutHandler opens payment sessions for carts.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Checkout handles POST /api/cart/checkout. Authentication is optional:
// anonymous carts create ownerless orders.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var owner *int64
	if val, ok := c.Get(middleware.IdentityContextKey); ok {
		if identity, ok := val.(model.Identity); ok && identity.UserID != 0 {
			owner = &identity.UserID
		}
	}

	order, err := h.facade.Checkout(c.Request.Context(), owner, toCheckoutRequest(req))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart), errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrUpstreamUnavailable):
			c.Status(http.StatusBadGateway)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		OrderID:    order.ID,
		PaymentRef: order.PaymentRef,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Status:     string(order.Status),
	})
}

func toCheckoutRequest(req dto.CheckoutRequest) usecase.CheckoutRequest {
	items := make([]usecase.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.CheckoutItem{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			ServiceSlug: item.ServiceSlug,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	var metadata model.Metadata
	for key, val := range req.Metadata {
		metadata.Annotate(key, val)
	}

	return usecase.CheckoutRequest{
		Items:           items,
		Currency:        req.Currency,
		BillingAddress:  fromAddressPayload(req.BillingAddress, model.AddressKindBilling),
		ShippingAddress: fromAddressPayload(req.ShippingAddress, model.AddressKindShipping),
		Metadata:        metadata,
	}
}

func fromAddressPayload(addr *dto.AddressResponse, kind model.AddressKind) *model.Address {
	if addr == nil {
		return nil
	}
	return &model.Address{
		Kind:       kind,
		Company:    addr.Company,
		FirstName:  addr.FirstName,
		LastName:   addr.LastName,
		Line1:      addr.Line1,
		Line2:      addr.Line2,
		City:       addr.City,
		PostalCode: addr.PostalCode,
		Region:     addr.Region,
		Country:    addr.Country,
		Phone:      addr.Phone,
	}
}
