package exchange_test

import (
	"encoding/json"
	"testing"

	"github.com/DanielPopoola/payorder-sdk/internal/core/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResponse_Unsigned(t *testing.T) {
	assert.Equal(t, "FALSE| Error occurred", exchange.FormatResponse(false, "error occurred", false))
	assert.Equal(t, "TRUE| Processed paid. order: ref-1", exchange.FormatResponse(true, "Processed paid. Order: REF-1", false))
	assert.Equal(t, "TRUE| Some msg", exchange.FormatResponse(true, "SoMe MSG", false))
	assert.Equal(t, "TRUE| ", exchange.FormatResponse(true, "", false))
}

func TestFormatResponse_Signed(t *testing.T) {
	out := exchange.FormatResponse(true, "oK", true)

	var decoded struct {
		Result      bool   `json:"result"`
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.True(t, decoded.Result)
	assert.Equal(t, "Ok", decoded.Description)
	assert.JSONEq(t, `{"result":false,"description":"Signing request failed"}`,
		exchange.FormatResponse(false, "signing request failed", true))
}

func TestFormatResponse_Unicode(t *testing.T) {
	assert.Equal(t, "TRUE| Één bericht", exchange.FormatResponse(true, "éÉN BERICHT", false))
}
