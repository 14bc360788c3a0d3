package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dimfeld/httptreemux/v5"
)

// validator is implemented by request models that know how to check
// themselves once decoded.
type validator interface {
	Validate() error
}

// Param returns the web call parameters from the request.
func Param(r *http.Request, key string) string {
	m := httptreemux.ContextParams(r.Context())
	return m[key]
}

// Decode reads the body of an HTTP request looking for a JSON document. The
// body is decoded into the provided value. If the provided value implements
// the validator interface, it is validated after decoding.
func Decode(r *http.Request, val any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(val); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if v, ok := val.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// ErrPayloadTooLarge is returned when a request body is over the limit.
var ErrPayloadTooLarge = errors.New("payload too large")

// ReadBody returns the raw body of the request. A body larger than the
// specified limit is an ErrPayloadTooLarge error.
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read payload: %w", err)
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrPayloadTooLarge, limit)
	}

	return data, nil
}
