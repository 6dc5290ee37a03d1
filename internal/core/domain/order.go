package domain

import (
	"strings"
	"time"
)

// OrderStatus is the raw (code, name) pair reported upstream.
type OrderStatus struct {
	Code int    `json:"code"`
	Name string `json:"action"`
}

type PaymentMethod struct {
	ID int64 `json:"id"`
}

type Payment struct {
	ID            string        `json:"id"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Amount        Amount        `json:"amount"`
	Status        OrderStatus   `json:"status"`
}

// OrderSnapshot is the reconciled view of an order or transaction.
type OrderSnapshot struct {
	ID               string         `json:"id"`
	ServiceID        string         `json:"serviceId,omitempty"`
	Description      string         `json:"description,omitempty"`
	Reference        string         `json:"reference"`
	OrderID          string         `json:"orderId"`
	Type             string         `json:"type,omitempty"`
	Status           OrderStatus    `json:"status"`
	Amount           Amount         `json:"amount"`
	AuthorizedAmount *Amount        `json:"authorizedAmount,omitempty"`
	CapturedAmount   *Amount        `json:"capturedAmount,omitempty"`
	RefundedAmount   *Amount        `json:"refundedAmount,omitempty"`
	PaymentProfileID int64          `json:"paymentProfileId,omitempty"`
	Payments         []Payment      `json:"payments,omitempty"`
	CheckoutData     map[string]any `json:"checkoutData,omitempty"`
	TestMode         bool           `json:"testMode"`

	Links map[string]string `json:"links,omitempty"`

	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	ModifiedAt  *time.Time `json:"modifiedAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// SnapshotFromPayload builds the snapshot trusted directly from a verified notification.
func SnapshotFromPayload(p NotificationPayload) *OrderSnapshot {
	snap := &OrderSnapshot{
		ID:               p.PayOrderID,
		Reference:        p.Reference,
		OrderID:          p.OrderID,
		Type:             p.Type,
		Amount:           NewAmount(p.Amount, p.Currency),
		PaymentProfileID: p.PaymentProfile,
		CheckoutData:     p.CheckoutData,
		Status:           OrderStatus{Name: p.InternalStateName},
	}
	if p.InternalStateID != nil {
		snap.Status.Code = *p.InternalStateID
	}
	if p.AmountAuthorized != 0 {
		a := NewAmount(p.AmountAuthorized, p.Currency)
		snap.AuthorizedAmount = &a
	}
	if p.AmountCaptured != 0 {
		a := NewAmount(p.AmountCaptured, p.Currency)
		snap.CapturedAmount = &a
	}
	return snap
}

// PendingSnapshot carries nothing but the PENDING status.
func PendingSnapshot(code int) *OrderSnapshot {
	return &OrderSnapshot{
		Status: OrderStatus{Code: code, Name: string(StatusPending)},
	}
}

// State classifies the snapshot's status code.
func (o *OrderSnapshot) State() (PayStatus, error) {
	return Classify(o.Status.Code)
}

func (o *OrderSnapshot) is(s PayStatus) bool {
	state, err := o.State()
	return err == nil && state == s
}

func (o *OrderSnapshot) IsPaid() bool           { return o.is(StatusPaid) }
func (o *OrderSnapshot) IsPending() bool        { return o.is(StatusPending) }
func (o *OrderSnapshot) IsCancelled() bool      { return o.is(StatusCancel) }
func (o *OrderSnapshot) IsPartialPayment() bool { return o.is(StatusPartialPayment) }
func (o *OrderSnapshot) IsAuthorized() bool     { return o.is(StatusAuthorize) }
func (o *OrderSnapshot) IsBeingVerified() bool  { return o.is(StatusVerify) }
func (o *OrderSnapshot) IsRefundedFully() bool  { return o.is(StatusRefund) }
func (o *OrderSnapshot) IsRefundedPartial() bool {
	return o.is(StatusPartialRefund)
}

func (o *OrderSnapshot) IsRefunded(allowPartial bool) bool {
	if o.IsRefundedFully() {
		return true
	}
	return allowPartial && o.IsRefundedPartial()
}

// IsChargeBack looks at the status name, chargebacks share codes with other states upstream.
func (o *OrderSnapshot) IsChargeBack() bool {
	return o.Status.Name == string(StatusChargeback)
}

func (o *OrderSnapshot) IsFastCheckout() bool {
	return strings.EqualFold(o.Type, FastCheckoutType)
}

func (o *OrderSnapshot) IsTestmode() bool {
	return o.TestMode
}

func (o *OrderSnapshot) PaymentURL() string {
	return o.Links["redirect"]
}

func (o *OrderSnapshot) StatusURL() string {
	return o.Links["status"]
}

// PaymentMethod returns the first payment's method id, falling back to the payment profile.
func (o *OrderSnapshot) PaymentMethod() int64 {
	if len(o.Payments) > 0 {
		return o.Payments[0].PaymentMethod.ID
	}
	return o.PaymentProfileID
}

func (o *OrderSnapshot) AmountRefunded() Amount {
	if o.RefundedAmount == nil {
		return NewAmount(0, o.Amount.Currency)
	}
	return *o.RefundedAmount
}
