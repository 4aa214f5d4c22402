package usecase

import (
	"context"
	"fmt"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/domain/repository"
	"github.com/cyna-app/commerce/internal/pkg/money"
)

// invoiceNumberFormat yields numbers like CYNA-2026-00000042.
const invoiceNumberFormat = "CYNA-%d-%08d"

// InvoiceUseCase assembles printable invoices from paid orders. Invoices are
// pure read projections and are never stored.
type InvoiceUseCase struct {
	orders  repository.OrderRepository
	vatRate money.Rate
}

// NewInvoiceUseCase constructs InvoiceUseCase.
func NewInvoiceUseCase(orders repository.OrderRepository, vatRate money.Rate) *InvoiceUseCase {
	return &InvoiceUseCase{orders: orders, vatRate: vatRate}
}

// BuildInvoice derives the invoice view of a paid order. Ownership is checked
// before any order data leaves this method; unpaid orders have no invoice.
func (u *InvoiceUseCase) BuildInvoice(ctx context.Context, requester model.Identity, orderID int64) (*model.InvoiceView, error) {
	detail, err := u.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin() {
		if detail.UserID == nil || *detail.UserID != requester.UserID {
			return nil, domainErrors.ErrForbidden
		}
	}

	if detail.Status.Canonical() != model.OrderStatusPaid {
		return nil, domainErrors.ErrOrderNotPaid
	}

	breakdown, err := money.Compute(detail.Amount, u.vatRate)
	if err != nil {
		return nil, err
	}

	return &model.InvoiceView{
		Number: fmt.Sprintf(invoiceNumberFormat, detail.CreatedAt.Year(), detail.ID),
		// Payment is captured at checkout, so the invoice is due on the
		// order date itself.
		Date:    detail.CreatedAt,
		DueDate: detail.CreatedAt,
		Order: model.InvoiceOrderInfo{
			ID:         detail.ID,
			PaymentRef: detail.PaymentRef,
			Status:     detail.Status,
			StatusInfo: detail.Status.Info(),
			Currency:   detail.Currency,
			CreatedAt:  detail.CreatedAt,
			UpdatedAt:  detail.UpdatedAt,
		},
		Customer:        detail.Customer,
		BillingAddress:  detail.BillingAddress,
		ShippingAddress: detail.ShippingAddress,
		PaymentMethod:   detail.PaymentMethod,
		Items:           detail.Items,
		Financial: model.InvoiceFinancial{
			SubtotalHT: breakdown.HT,
			VATAmount:  breakdown.VAT,
			TotalTTC:   breakdown.TTC,
			VATRate:    u.vatRate.Float(),
			Currency:   detail.Currency,
		},
		Formatted: model.InvoiceAmounts{
			SubtotalHT: money.FormatMinor(breakdown.HT, detail.Currency),
			VATAmount:  money.FormatMinor(breakdown.VAT, detail.Currency),
			TotalTTC:   money.FormatMinor(breakdown.TTC, detail.Currency),
		},
	}, nil
}
