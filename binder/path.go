package binder

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/viewkit/views"
)

// Path creates a path parameter binder using the provided extractor, for
// router-managed parameters.
//
// Struct tags:
//   - `path:"name"` binds to path parameter "name"
//   - `path:"-"` skips the field
//
// Example with chi:
//
//	r.Get("/users/{id}", viewkit.Wrap(h, viewkit.WithBinders(
//		binder.Path(chi.URLParam),
//		binder.Query(),
//	)))
func Path(extractor func(r *http.Request, fieldName string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}
		return bindPath(r, v, func(name string) string { return extractor(r, name) })
	}
}

// MultiViewPath binds the trailing path segments of a multi-view match.
// Fields address segments positionally:
//
//	// request /users/42/edit matched against multi-view /users
//	type UserRequest struct {
//		ID     string `path:"0"`
//		Action string `path:"1"`
//	}
func MultiViewPath() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		params := views.PathParams(r.Context())
		return bindPath(r, v, func(name string) string {
			i, err := strconv.Atoi(name)
			if err != nil || i < 0 || i >= len(params) {
				return ""
			}
			return params[i]
		})
	}
}

func bindPath(r *http.Request, v any, lookup func(name string) string) error {
	values := make(map[string][]string)
	collect := func(name string) {
		if _, done := values[name]; done {
			return
		}
		if val := lookup(name); val != "" {
			values[name] = []string{val}
		}
	}

	// Walk the struct's path tags to know which names to extract.
	if err := forEachTaggedField(v, "path", collect, ErrInvalidPath); err != nil {
		return err
	}
	return bindToStruct(v, "path", values, ErrInvalidPath)
}
