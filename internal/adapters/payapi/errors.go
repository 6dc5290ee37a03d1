package payapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is returned for every non-2xx answer of the payment API.
type APIError struct {
	StatusCode int
	PayCode    string
	Message    string
	Friendly   string
}

func (e *APIError) Error() string {
	if e.PayCode != "" {
		return fmt.Sprintf("pay api error %s: %s (status: %d)", e.PayCode, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("pay api error: %s (status: %d)", e.Message, e.StatusCode)
}

// FriendlyMessage is the message safe to show to end users, empty when the API sent none.
func (e *APIError) FriendlyMessage() string {
	return e.Friendly
}

// IsRetryable reports whether the upstream failure is worth another delivery.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

type violation struct {
	PropertyPath string `json:"propertyPath"`
	Message      string `json:"message"`
	Code         string `json:"code"`
}

type errorResponse struct {
	Code            string      `json:"code"`
	Type            string      `json:"type"`
	Title           string      `json:"title"`
	Detail          string      `json:"detail"`
	Message         string      `json:"message"`
	FriendlyMessage string      `json:"friendlyMessage"`
	Violations      []violation `json:"violations"`
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("unexpected status %d", status)
		}
		return apiErr
	}

	apiErr.PayCode = resp.Code
	apiErr.Friendly = resp.FriendlyMessage

	switch {
	case resp.Detail != "":
		apiErr.Message = resp.Detail
	case resp.Message != "":
		apiErr.Message = resp.Message
	case len(resp.Violations) > 0:
		parts := make([]string, 0, len(resp.Violations))
		for _, v := range resp.Violations {
			if v.PropertyPath != "" {
				parts = append(parts, v.PropertyPath+": "+v.Message)
			} else {
				parts = append(parts, v.Message)
			}
		}
		apiErr.Message = strings.Join(parts, "; ")
		if apiErr.PayCode == "" {
			apiErr.PayCode = resp.Violations[0].Code
		}
	case resp.Title != "":
		apiErr.Message = resp.Title
	default:
		apiErr.Message = fmt.Sprintf("unexpected status %d", status)
	}

	return apiErr
}
