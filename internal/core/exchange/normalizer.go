package exchange

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
)

const DefaultReferenceKey = "extra1"

// Normalize turns an inbound notification into a NotificationPayload.
//
// A non-empty top-level "action" selects the legacy flat shape. Anything else
// is a structured order notification, taken from Params["object"] when the
// caller already parsed it, or decoded from the raw body otherwise.
func Normalize(in Input, referenceKey string) (domain.NotificationPayload, error) {
	if referenceKey == "" {
		referenceKey = DefaultReferenceKey
	}

	if asString(in.Params["action"]) != "" {
		return normalizeLegacy(in.Params, referenceKey), nil
	}

	if obj, ok := in.Params["object"]; ok {
		return normalizeStructured(map[string]any{"object": obj})
	}

	body := bytes.TrimSpace(in.Body)
	if len(body) == 0 {
		return domain.NotificationPayload{}, domain.NewEmptyPayloadError()
	}

	raw, err := decode(body)
	if err != nil {
		return domain.NotificationPayload{}, domain.NewMalformedPayloadError("invalid json body", err)
	}

	// legacy senders occasionally post the flat shape as json
	if asString(raw["action"]) != "" {
		return normalizeLegacy(raw, referenceKey), nil
	}

	if t := asString(raw["type"]); t != "order" {
		return domain.NotificationPayload{}, domain.NewMalformedPayloadError("cannot handle exchange type "+strconv.Quote(t), nil)
	}

	return normalizeStructured(raw)
}

func normalizeLegacy(params map[string]any, referenceKey string) domain.NotificationPayload {
	ref := asString(params[referenceKey])

	return domain.NotificationPayload{
		Action:         strings.ToLower(asString(params["action"])),
		PaymentProfile: asInt64(params["payment_profile_id"]),
		PayOrderID:     asString(params["order_id"]),
		OrderID:        ref,
		Reference:      ref,
		Amount:         asInt64(params["amount"]),
		Currency:       domain.DefaultCurrency,
		Raw:            params,
		Source:         domain.SourceLegacy,
	}
}

func normalizeStructured(raw map[string]any) (domain.NotificationPayload, error) {
	obj := asMap(raw["object"])
	if len(obj) == 0 {
		return domain.NotificationPayload{}, domain.NewMalformedPayloadError("object empty", nil)
	}

	status := asMap(obj["status"])
	amount := asMap(obj["amount"])

	p := domain.NotificationPayload{
		Type:              asString(obj["type"]),
		PayOrderID:        asString(obj["orderId"]),
		OrderID:           asString(obj["reference"]),
		Reference:         asString(obj["reference"]),
		Amount:            asInt64(amount["value"]),
		AmountCaptured:    asInt64(asMap(obj["capturedAmount"])["value"]),
		AmountAuthorized:  asInt64(asMap(obj["authorizedAmount"])["value"]),
		Currency:          asString(amount["currency"]),
		InternalStateName: asString(status["action"]),
		CheckoutData:      asMap(obj["checkoutData"]),
		Raw:               raw,
		Source:            domain.SourceStructured,
	}
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}

	if payments, ok := obj["payments"].([]any); ok && len(payments) > 0 {
		p.PaymentProfile = asInt64(asMap(asMap(payments[0])["paymentMethod"])["id"])
	}

	if code, ok := asInt(status["code"]); ok {
		p.InternalStateID = &code
	}

	if p.InternalStateID != nil && domain.IsPaidEvent(*p.InternalStateID) {
		p.Action = domain.EventPaid
	} else {
		p.Action = strings.ToLower(p.InternalStateName)
	}

	return p, nil
}

func decode(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func asInt64(v any) int64 {
	n, _ := asInt(v)
	return int64(n)
}
