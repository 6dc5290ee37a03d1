package payapi

import (
	"time"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
)

type amountDTO struct {
	Value    int64  `json:"value"`
	Currency string `json:"currency"`
}

func (a *amountDTO) toDomain() *domain.Amount {
	if a == nil {
		return nil
	}
	amt := domain.NewAmount(a.Value, a.Currency)
	return &amt
}

type statusDTO struct {
	Code   int    `json:"code"`
	Action string `json:"action"`
}

type paymentDTO struct {
	ID            string           `json:"id"`
	PaymentMethod paymentMethodRef `json:"paymentMethod"`
	Amount        amountDTO        `json:"amount"`
	Status        statusDTO        `json:"status"`
}

// orderResponse covers the order core answers and the transaction status answer.
type orderResponse struct {
	ID               string            `json:"id"`
	ServiceID        string            `json:"serviceId"`
	ServiceCode      string            `json:"serviceCode"`
	Description      string            `json:"description"`
	Reference        string            `json:"reference"`
	OrderID          string            `json:"orderId"`
	Type             string            `json:"type"`
	Status           statusDTO         `json:"status"`
	Amount           amountDTO         `json:"amount"`
	AuthorizedAmount *amountDTO        `json:"authorizedAmount"`
	CapturedAmount   *amountDTO        `json:"capturedAmount"`
	AmountRefunded   *amountDTO        `json:"amountRefunded"`
	PaymentMethod    *paymentMethodRef `json:"paymentMethod"`
	Payments         []paymentDTO      `json:"payments"`
	CheckoutData     map[string]any    `json:"checkoutData"`
	Integration      integrationRef    `json:"integration"`
	Links            map[string]string `json:"links"`

	CreatedAt   string `json:"createdAt"`
	ModifiedAt  string `json:"modifiedAt"`
	ExpiresAt   string `json:"expiresAt"`
	CompletedAt string `json:"completedAt"`
}

func (r *orderResponse) toDomain() *domain.OrderSnapshot {
	snap := &domain.OrderSnapshot{
		ID:               r.ID,
		ServiceID:        r.ServiceID,
		Description:      r.Description,
		Reference:        r.Reference,
		OrderID:          r.OrderID,
		Type:             r.Type,
		Status:           domain.OrderStatus{Code: r.Status.Code, Name: r.Status.Action},
		Amount:           domain.NewAmount(r.Amount.Value, r.Amount.Currency),
		AuthorizedAmount: r.AuthorizedAmount.toDomain(),
		CapturedAmount:   r.CapturedAmount.toDomain(),
		RefundedAmount:   r.AmountRefunded.toDomain(),
		CheckoutData:     r.CheckoutData,
		TestMode:         r.Integration.Test,
		Links:            r.Links,
		CreatedAt:        parseTime(r.CreatedAt),
		ModifiedAt:       parseTime(r.ModifiedAt),
		ExpiresAt:        parseTime(r.ExpiresAt),
		CompletedAt:      parseTime(r.CompletedAt),
	}
	if snap.ServiceID == "" {
		snap.ServiceID = r.ServiceCode
	}

	for _, p := range r.Payments {
		snap.Payments = append(snap.Payments, domain.Payment{
			ID:            p.ID,
			PaymentMethod: domain.PaymentMethod{ID: p.PaymentMethod.ID},
			Amount:        domain.NewAmount(p.Amount.Value, p.Amount.Currency),
			Status:        domain.OrderStatus{Code: p.Status.Code, Name: p.Status.Action},
		})
	}

	switch {
	case len(snap.Payments) > 0:
		snap.PaymentProfileID = snap.Payments[0].PaymentMethod.ID
	case r.PaymentMethod != nil:
		snap.PaymentProfileID = r.PaymentMethod.ID
	}

	return snap
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

type createOrderRequest struct {
	domain.OrderCreateRequest
	PaymentMethod *paymentMethodRef `json:"paymentMethod,omitempty"`
	Integration   *integrationRef   `json:"integration,omitempty"`
}

type paymentMethodRef struct {
	ID int64 `json:"id"`
}

type integrationRef struct {
	Test bool `json:"test"`
}

type captureAmountBody struct {
	Amount int64 `json:"amount"`
}

type captureProductsBody struct {
	Products []domain.CaptureProduct `json:"products"`
}

type refundBody struct {
	Amount      domain.Amount `json:"amount"`
	Description string        `json:"description,omitempty"`
}
