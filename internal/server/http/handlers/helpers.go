package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cyna-app/commerce/internal/domain/model"
	"github.com/cyna-app/commerce/internal/server/http/dto"
	"github.com/cyna-app/commerce/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return model.Identity{}
	}
	identity, _ := val.(model.Identity)
	return identity
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func toStatusInfo(info model.StatusInfo) dto.StatusInfoResponse {
	return dto.StatusInfoResponse{
		Label:       info.Label,
		Description: info.Description,
		NextSteps:   info.NextSteps,
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         order.ID,
		PaymentRef: order.PaymentRef,
		Amount:     order.Amount,
		Currency:   order.Currency,
		Status:     string(order.Status),
		StatusInfo: toStatusInfo(order.Status.Info()),
		Metadata:   order.Metadata.Flatten(),
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func toPagination(p model.Pagination) dto.PaginationResponse {
	return dto.PaginationResponse{
		Page:            p.Page,
		Limit:           p.Limit,
		TotalCount:      p.TotalCount,
		TotalPages:      p.TotalPages,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}

func toOrderList(orders []model.Order, p model.Pagination) dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	return dto.OrderListResponse{Orders: items, Pagination: toPagination(p)}
}

func toItemResponses(items []model.OrderItem) []dto.OrderItemResponse {
	out := make([]dto.OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.OrderItemResponse{
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			ServiceSlug: item.ServiceSlug,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		})
	}
	return out
}

func toAddressResponse(addr *model.Address) *dto.AddressResponse {
	if addr == nil {
		return nil
	}
	return &dto.AddressResponse{
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

func toPaymentMethodResponse(pm *model.PaymentMethod) *dto.PaymentMethodResponse {
	if pm == nil {
		return nil
	}
	return &dto.PaymentMethodResponse{
		Type:     pm.Type,
		Brand:    pm.Brand,
		LastFour: pm.LastFour,
		Label:    pm.Label,
	}
}

func toCustomerResponse(customer *model.Customer) *dto.CustomerResponse {
	if customer == nil {
		return nil
	}
	return &dto.CustomerResponse{ID: customer.ID, Name: customer.Name, Email: customer.Email}
}

func toDetailResponse(detail *model.OrderDetail) dto.OrderDetailResponse {
	return dto.OrderDetailResponse{
		OrderResponse:   toOrderResponse(detail.Order),
		Customer:        toCustomerResponse(detail.Customer),
		BillingAddress:  toAddressResponse(detail.BillingAddress),
		ShippingAddress: toAddressResponse(detail.ShippingAddress),
		PaymentMethod:   toPaymentMethodResponse(detail.PaymentMethod),
		Items:           toItemResponses(detail.Items),
	}
}
