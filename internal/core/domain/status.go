package domain

// PayStatus is the semantic state derived from an upstream numeric status code
type PayStatus string

const (
	StatusPending        PayStatus = "PENDING"
	StatusPaid           PayStatus = "PAID"
	StatusCancel         PayStatus = "CANCEL"
	StatusDenied         PayStatus = "DENIED"
	StatusVoid           PayStatus = "VOID"
	StatusAuthorize      PayStatus = "AUTHORIZE"
	StatusPartialPayment PayStatus = "PARTIAL_PAYMENT"
	StatusPartlyCaptured PayStatus = "PARTLY_CAPTURED"
	StatusVerify         PayStatus = "VERIFY"
	StatusConfirmed      PayStatus = "CONFIRMED"
	StatusRefund         PayStatus = "REFUND"
	StatusPartialRefund  PayStatus = "PARTIAL_REFUND"
	StatusChargeback     PayStatus = "CHARGEBACK"
)

// EventPaid is the action name given to notifications that completed a payment profile transaction.
const EventPaid = "new_ppt"

var negativeStatuses = map[int]PayStatus{
	-70: StatusChargeback,
	-71: StatusChargeback,
	-72: StatusRefund,
	-81: StatusRefund,
	-82: StatusPartialRefund,
	-61: StatusVoid,
	-63: StatusDenied,
	-64: StatusDenied,
}

var positiveStatuses = map[int]PayStatus{
	20:  StatusPending,
	25:  StatusPending,
	50:  StatusPending,
	90:  StatusPending,
	98:  StatusPending,
	75:  StatusConfirmed,
	76:  StatusConfirmed,
	80:  StatusPartialPayment,
	85:  StatusVerify,
	95:  StatusAuthorize,
	97:  StatusPartlyCaptured,
	100: StatusPaid,
}

// Classify maps an upstream status code to its semantic state.
//
// Negative codes never fail: anything not listed explicitly is a cancellation.
// Non-negative codes form an allow-list, an unlisted one returns an UNKNOWN_STATUS error.
func Classify(code int) (PayStatus, error) {
	if code < 0 {
		if s, ok := negativeStatuses[code]; ok {
			return s, nil
		}
		return StatusCancel, nil
	}

	if s, ok := positiveStatuses[code]; ok {
		return s, nil
	}
	return "", NewUnknownStatusError(code)
}

// IsPaidEvent reports whether a status code completes a payment profile transaction.
func IsPaidEvent(code int) bool {
	return code == 100 || code == 95
}

func (s PayStatus) String() string {
	return string(s)
}
