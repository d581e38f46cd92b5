package binder

import "net/http"

// Query creates a query parameter binder.
//
// Struct tags:
//   - `query:"name"` binds to query parameter "name"
//   - `query:"-"` skips the field
//
// Supported types: string, ints, uints, floats, bool, slices of those for
// multi-value parameters, and pointers for optional fields.
//
//	type SearchRequest struct {
//		Query string   `query:"q"`
//		Page  int      `query:"page"`
//		Tags  []string `query:"tags"` // ?tags=go&tags=web or ?tags=go,web
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
