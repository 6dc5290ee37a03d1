package exchange

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Acknowledgement is what the upstream sender needs to hear to stop retrying.
type Acknowledgement struct {
	Result  bool
	Message string
}

type signedResponse struct {
	Result      bool   `json:"result"`
	Description string `json:"description"`
}

// FormatResponse renders the acknowledgement body: JSON on signed channels,
// "TRUE| msg" or "FALSE| msg" otherwise.
func FormatResponse(success bool, message string, signed bool) string {
	message = normalizeMessage(message)

	if signed {
		b, err := json.Marshal(signedResponse{Result: success, Description: message})
		if err != nil {
			return `{"result":false,"description":""}`
		}
		return string(b)
	}

	if success {
		return "TRUE| " + message
	}
	return "FALSE| " + message
}

// normalizeMessage upper-cases the first character and lower-cases the rest.
func normalizeMessage(msg string) string {
	if msg == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + strings.ToLower(msg[size:])
}
