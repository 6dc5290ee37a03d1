package exchange_test

import (
	"testing"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/core/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredPaid = `{
  "type": "order",
  "object": {
    "orderId": "51234567-1234-1234-1234-123456789012",
    "reference": "REF-42",
    "type": "payment_based_checkout",
    "status": {"code": 100, "action": "PAID"},
    "amount": {"value": 1250, "currency": "USD"},
    "capturedAmount": {"value": 1250},
    "authorizedAmount": {"value": 0},
    "checkoutData": {"customer": {"email": "a@b.nl"}},
    "payments": [
      {"paymentMethod": {"id": 10}},
      {"paymentMethod": {"id": 436}}
    ],
    "stats": {"extra1": "x1", "domainId": "WU-1"}
  }
}`

func TestNormalize_Legacy(t *testing.T) {
	in := exchange.Input{Params: map[string]any{
		"action":             "NEW_PPT",
		"payment_profile_id": "10",
		"order_id":           "1234567890X1a2b3",
		"extra1":             "REF-1",
		"extra2":             "other",
	}}

	p, err := exchange.Normalize(in, "")

	require.NoError(t, err)
	assert.True(t, p.IsLegacy())
	assert.Equal(t, "new_ppt", p.Action)
	assert.Equal(t, int64(10), p.PaymentProfile)
	assert.Equal(t, "1234567890X1a2b3", p.PayOrderID)
	assert.Equal(t, "REF-1", p.Reference)
	assert.Equal(t, "REF-1", p.OrderID)
	assert.Nil(t, p.InternalStateID)
	assert.Empty(t, p.InternalStateName)
	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, "other", p.Extra(2))
}

func TestNormalize_LegacyCustomReferenceKey(t *testing.T) {
	in := exchange.Input{Params: map[string]any{
		"action":   "cancel",
		"order_id": "123",
		"extra1":   "ignored",
		"extra3":   "REF-3",
	}}

	p, err := exchange.Normalize(in, "extra3")

	require.NoError(t, err)
	assert.Equal(t, "REF-3", p.Reference)
	assert.Nil(t, p.InternalStateID)
}

func TestNormalize_LegacyPostedAsJSON(t *testing.T) {
	in := exchange.Input{Body: []byte(`{"action":"new_ppt","order_id":"987","extra1":"R"}`)}

	p, err := exchange.Normalize(in, "")

	require.NoError(t, err)
	assert.True(t, p.IsLegacy())
	assert.Equal(t, "987", p.PayOrderID)
}

func TestNormalize_Structured(t *testing.T) {
	p, err := exchange.Normalize(exchange.Input{Body: []byte(structuredPaid)}, "")

	require.NoError(t, err)
	assert.True(t, p.IsStructured())
	assert.Equal(t, "51234567-1234-1234-1234-123456789012", p.PayOrderID)
	assert.Equal(t, "REF-42", p.Reference)
	assert.Equal(t, "REF-42", p.OrderID)
	assert.Equal(t, "payment_based_checkout", p.Type)
	require.NotNil(t, p.InternalStateID)
	assert.Equal(t, 100, *p.InternalStateID)
	assert.Equal(t, "PAID", p.InternalStateName)
	assert.Equal(t, domain.EventPaid, p.Action)
	assert.Equal(t, int64(1250), p.Amount)
	assert.Equal(t, int64(1250), p.AmountCaptured)
	assert.Equal(t, int64(0), p.AmountAuthorized)
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, int64(10), p.PaymentProfile)
	assert.NotNil(t, p.CheckoutData["customer"])
	assert.True(t, p.IsFastCheckout())
	assert.True(t, p.IsTguTransaction())
	assert.Equal(t, "x1", p.Extra(1))
	assert.Equal(t, "WU-1", p.DomainID())
}

func TestNormalize_StructuredActionDerivation(t *testing.T) {
	cases := []struct {
		code   int
		name   string
		action string
	}{
		{100, "PAID", "new_ppt"},
		{95, "AUTHORIZE", "new_ppt"},
		{20, "PENDING", "pending"},
		{-90, "CANCEL", "cancel"},
		{-81, "REFUND", "refund"},
	}

	for _, tc := range cases {
		params := map[string]any{"object": map[string]any{
			"orderId": "5X",
			"status":  map[string]any{"code": tc.code, "action": tc.name},
		}}

		p, err := exchange.Normalize(exchange.Input{Params: params}, "")

		require.NoError(t, err)
		assert.Equal(t, tc.action, p.Action, "code %d", tc.code)
	}
}

func TestNormalize_StructuredDefaults(t *testing.T) {
	body := `{"type":"order","object":{"orderId":"5A","status":{"code":"20","action":"PENDING"}}}`

	p, err := exchange.Normalize(exchange.Input{Body: []byte(body)}, "")

	require.NoError(t, err)
	assert.Equal(t, "EUR", p.Currency)
	assert.Equal(t, int64(0), p.Amount)
	assert.Equal(t, int64(0), p.PaymentProfile)
	assert.Nil(t, p.CheckoutData)
	require.NotNil(t, p.InternalStateID)
	assert.Equal(t, 20, *p.InternalStateID)
}

func TestNormalize_Errors(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		_, err := exchange.Normalize(exchange.Input{Body: []byte("  \n")}, "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeEmptyPayload))
	})

	t.Run("nothing at all", func(t *testing.T) {
		_, err := exchange.Normalize(exchange.Input{}, "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeEmptyPayload))
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := exchange.Normalize(exchange.Input{Body: []byte("{nope")}, "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMalformedPayload))
	})

	t.Run("type other than order", func(t *testing.T) {
		_, err := exchange.Normalize(exchange.Input{Body: []byte(`{"type":"refund","object":{"id":"1"}}`)}, "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMalformedPayload))
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := exchange.Normalize(exchange.Input{Body: []byte(`{"type":"order"}`)}, "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMalformedPayload))
	})

	t.Run("empty object", func(t *testing.T) {
		_, err := exchange.Normalize(exchange.Input{Params: map[string]any{"object": map[string]any{}}}, "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeMalformedPayload))
	})

	t.Run("empty action falls through to body", func(t *testing.T) {
		_, err := exchange.Normalize(exchange.Input{Params: map[string]any{"action": ""}}, "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeEmptyPayload))
	})
}
