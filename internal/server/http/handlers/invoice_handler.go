package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/server/http/dto"
)

// InvoiceHandler serves printable invoices for paid orders.
type InvoiceHandler struct {
	facade OrderFacade
}

// NewInvoiceHandler constructs InvoiceHandler.
func NewInvoiceHandler(facade OrderFacade) *InvoiceHandler {
	return &InvoiceHandler{facade: facade}
}

// Get handles GET /api/user/orders/:id/invoice.
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	invoice, err := h.facade.Invoice(c.Request.Context(), CurrentIdentity(c), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrForbidden):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrOrderNotPaid):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toInvoiceResponse(invoice))
}

func toInvoiceResponse(invoice *model.InvoiceView) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		Number:  invoice.Number,
		Date:    invoice.Date,
		DueDate: invoice.DueDate,
		Order: dto.InvoiceOrderResponse{
			ID:         invoice.Order.ID,
			PaymentRef: invoice.Order.PaymentRef,
			Status:     string(invoice.Order.Status),
			StatusInfo: toStatusInfo(invoice.Order.StatusInfo),
			Currency:   invoice.Order.Currency,
			CreatedAt:  invoice.Order.CreatedAt,
			UpdatedAt:  invoice.Order.UpdatedAt,
		},
		Customer:        toCustomerResponse(invoice.Customer),
		BillingAddress:  toAddressResponse(invoice.BillingAddress),
		ShippingAddress: toAddressResponse(invoice.ShippingAddress),
		PaymentMethod:   toPaymentMethodResponse(invoice.PaymentMethod),
		Items:           toItemResponses(invoice.Items),
		Financial: dto.InvoiceFinancialResponse{
			SubtotalHT: invoice.Financial.SubtotalHT,
			VATAmount:  invoice.Financial.VATAmount,
			TotalTTC:   invoice.Financial.TotalTTC,
			VATRate:    invoice.Financial.VATRate,
			Currency:   invoice.Financial.Currency,
		},
		Formatted: dto.InvoiceAmountsResponse{
			SubtotalHT: invoice.Formatted.SubtotalHT,
			VATAmount:  invoice.Formatted.VATAmount,
			TotalTTC:   invoice.Formatted.TotalTTC,
		},
	}
}
