package domain

import (
	"fmt"
	"strings"
)

// PayloadSource tells which notification shape populated a NotificationPayload.
type PayloadSource int

const (
	SourceLegacy PayloadSource = iota + 1
	SourceStructured
)

func (s PayloadSource) String() string {
	switch s {
	case SourceLegacy:
		return "legacy"
	case SourceStructured:
		return "structured"
	default:
		return "unknown"
	}
}

const FastCheckoutType = "payment_based_checkout"

// NotificationPayload is the canonical form of an inbound exchange notification.
// It is handed out by value and never modified after normalization.
type NotificationPayload struct {
	Type             string
	Amount           int64
	AmountCaptured   int64
	AmountAuthorized int64
	Currency         string
	Reference        string
	Action           string
	PaymentProfile   int64
	PayOrderID       string
	OrderID          string

	// InternalStateID is nil for legacy notifications.
	InternalStateID   *int
	InternalStateName string

	CheckoutData map[string]any
	Raw          map[string]any
	Source       PayloadSource
}

func (p NotificationPayload) IsLegacy() bool {
	return p.Source == SourceLegacy
}

func (p NotificationPayload) IsStructured() bool {
	return p.Source == SourceStructured
}

func (p NotificationPayload) IsFastCheckout() bool {
	return strings.EqualFold(p.Type, FastCheckoutType)
}

// IsTguTransaction reports whether the upstream order id belongs to the structured-era order core.
func (p NotificationPayload) IsTguTransaction() bool {
	return strings.HasPrefix(p.PayOrderID, "5")
}

// Extra returns extra1, extra2 or extra3. The direct key wins over the one nested in stats.
func (p NotificationPayload) Extra(n int) string {
	if n < 1 || n > 3 {
		return ""
	}
	key := fmt.Sprintf("extra%d", n)
	body := p.extensionBody()

	if v := stringValue(body[key]); v != "" {
		return v
	}
	if stats, ok := body["stats"].(map[string]any); ok {
		return stringValue(stats[key])
	}
	return ""
}

// Stats returns the stats block of the notification, or nil.
func (p NotificationPayload) Stats() map[string]any {
	stats, _ := p.extensionBody()["stats"].(map[string]any)
	return stats
}

func (p NotificationPayload) DomainID() string {
	return stringValue(p.Stats()["domainId"])
}

func (p NotificationPayload) extensionBody() map[string]any {
	if p.IsStructured() {
		if obj, ok := p.Raw["object"].(map[string]any); ok {
			return obj
		}
	}
	return p.Raw
}

// State classifies InternalStateID. Legacy payloads carry no state code and always fail.
func (p NotificationPayload) State() (PayStatus, error) {
	if p.InternalStateID == nil {
		return "", NewMalformedPayloadError("payload carries no status code", nil)
	}
	return Classify(*p.InternalStateID)
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
