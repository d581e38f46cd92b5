package views

import "context"

type contextKey struct{ name string }

var (
	pathParamsKey   = &contextKey{"views.path_params"}
	originalPathKey = &contextKey{"views.original_path"}
)

// WithPathParams stores multi-view trailing path segments in the context.
func WithPathParams(ctx context.Context, params []string) context.Context {
	return context.WithValue(ctx, pathParamsKey, params)
}

// PathParams returns the multi-view trailing path segments for the request,
// in order. It returns nil when the request did not match a multi-view.
func PathParams(ctx context.Context) []string {
	params, _ := ctx.Value(pathParamsKey).([]string)
	return params
}

// PathParam returns the i-th trailing path segment, or "" when absent.
func PathParam(ctx context.Context, i int) string {
	params := PathParams(ctx)
	if i < 0 || i >= len(params) {
		return ""
	}
	return params[i]
}

// WithOriginalPath records the request path as the client sent it, before the
// middleware rewrote it to the physical resource.
func WithOriginalPath(ctx context.Context, p string) context.Context {
	return context.WithValue(ctx, originalPathKey, p)
}

// OriginalPath returns the request path as the client sent it, or "" when the
// request was not rewritten.
func OriginalPath(ctx context.Context) string {
	p, _ := ctx.Value(originalPathKey).(string)
	return p
}
