package binder

import (
	"net/http"
	"net/textproto"
)

// Header creates a binder for request header values.
//
// Struct tags:
//   - `header:"X-Client-Version"` binds to that header
//   - `header:"-"` skips the field
//
// Header name matching is case-insensitive.
func Header() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values := make(map[string][]string)
		collect := func(name string) {
			if _, done := values[name]; done {
				return
			}
			if vals := r.Header.Values(textproto.CanonicalMIMEHeaderKey(name)); len(vals) > 0 {
				values[name] = vals
			}
		}
		if err := forEachTaggedField(v, "header", collect, ErrInvalidHeader); err != nil {
			return err
		}
		return bindToStruct(v, "header", values, ErrInvalidHeader)
	}
}
