package domain

// Optimize switches a create request to the fast checkout flow.
type Optimize struct {
	Flow            string `json:"flow"`
	ShippingAddress bool   `json:"shippingAddress"`
	BillingAddress  bool   `json:"billingAddress"`
	ContactDetails  bool   `json:"contactDetails"`
}

type Notification struct {
	Type      string `json:"type" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
}

type TransferField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type OrderCreateRequest struct {
	ServiceID       string          `json:"serviceId" validate:"required"`
	Description     string          `json:"description,omitempty" validate:"max=32"`
	Reference       string          `json:"reference,omitempty" validate:"omitempty,alphanum,max=64"`
	Amount          Amount          `json:"amount"`
	ReturnURL       string          `json:"returnUrl" validate:"required,url"`
	ExchangeURL     string          `json:"exchangeUrl,omitempty" validate:"omitempty,url"`
	PaymentMethodID int64           `json:"-"`
	ExpiresAt       string          `json:"expire,omitempty"`
	TestMode        bool            `json:"-"`
	Optimize        *Optimize       `json:"optimize,omitempty"`
	Notification    *Notification   `json:"notification,omitempty"`
	TransferData    []TransferField `json:"transferData,omitempty"`
}

// EnableFastCheckout asks upstream to collect the given customer details during checkout.
func (r *OrderCreateRequest) EnableFastCheckout(shipping, billing, contact bool) {
	r.Optimize = &Optimize{
		Flow:            "fastCheckout",
		ShippingAddress: shipping,
		BillingAddress:  billing,
		ContactDetails:  contact,
	}
}

type CaptureAmountRequest struct {
	OrderID string `json:"-" validate:"required"`
	Amount  int64  `json:"amount" validate:"gt=0"`
}

type CaptureProduct struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

type CaptureProductsRequest struct {
	OrderID  string           `json:"-" validate:"required"`
	Products []CaptureProduct `json:"products" validate:"required,min=1,dive"`
}

type RefundRequest struct {
	TransactionID string `json:"-" validate:"required"`
	Amount        Amount `json:"amount"`
	Description   string `json:"description,omitempty" validate:"max=32"`
}
