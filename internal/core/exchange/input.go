package exchange

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// Input is everything an exchange needs from the inbound request.
// The body is read exactly once, when the Input is built.
type Input struct {
	Headers http.Header
	Body    []byte
	// Params holds flat legacy parameters, or a pre-parsed structured payload.
	Params map[string]any
}

var ErrBodyTooLarge = errors.New("request body too large")

// FromRequest reads the request body into the Input and merges query and
// form-encoded parameters into Params.
func FromRequest(r *http.Request, maxBytes int64) (Input, error) {
	in := Input{
		Headers: r.Header.Clone(),
		Params:  make(map[string]any),
	}

	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
		if err != nil {
			return Input{}, fmt.Errorf("read body: %w", err)
		}
		if int64(len(body)) > maxBytes {
			return Input{}, ErrBodyTooLarge
		}
		in.Body = body
	}

	mergeValues(in.Params, r.URL.Query())

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" && len(in.Body) > 0 {
		form, err := url.ParseQuery(string(in.Body))
		if err != nil {
			return Input{}, fmt.Errorf("parse form: %w", err)
		}
		mergeValues(in.Params, form)
	}

	return in, nil
}

func mergeValues(dst map[string]any, values url.Values) {
	for k, v := range values {
		if len(v) > 0 {
			dst[k] = v[len(v)-1]
		}
	}
}
