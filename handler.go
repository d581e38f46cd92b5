package viewkit

import (
	"errors"
	"net/http"
)

// HandlerFunc provides type-safe HTTP request handling with custom context
// support. C must implement Context, R can be any request type; R is bound
// from the request by the configured binders before the handler runs.
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response renders itself to an http.ResponseWriter. Implementations set
// headers, status code, and body. Render errors are routed to the error
// handler.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind parses an HTTP request into a typed value. Each binder should only
// process the struct tags it owns, so binders compose.
type Bind func(r *http.Request, v any) error

// ErrorHandler handles errors from binding or rendering.
type ErrorHandler[C Context] func(ctx C, err error)

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

type wrapConfig[C Context, R any] struct {
	binders        []Bind
	errorHandler   ErrorHandler[C]
	contextFactory func(http.ResponseWriter, *http.Request) C
}

// WithBinders appends request binders applied in order.
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binders = append(c.binders, binders...)
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithContextFactory sets a custom context factory so handlers can receive
// application-specific context types without assertions.
func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if f != nil {
			c.contextFactory = f
		}
	}
}

// defaultErrorHandler writes HTTPError codes verbatim, renders aggregated
// validation failures as 422, and falls back to 500.
func defaultErrorHandler[C Context](ctx C, err error) {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		http.Error(ctx.ResponseWriter(), httpErr.Key, httpErr.Code)
		return
	}
	var valErr ValidationError
	if errors.As(err, &valErr) {
		http.Error(ctx.ResponseWriter(), valErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
//
//	h := viewkit.HandlerFunc[viewkit.Context, SearchRequest](...)
//	r.Get("/search", viewkit.Wrap(h, viewkit.WithBinders(binder.Query())))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{
		errorHandler: defaultErrorHandler[C],
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var ctx C
		if cfg.contextFactory != nil {
			ctx = cfg.contextFactory(w, r)
		} else {
			// The default factory only satisfies the base Context interface.
			// Custom context types must provide their own factory.
			c, ok := NewContext(w, r).(C)
			if !ok {
				http.Error(w, "context factory required for custom context type", http.StatusInternalServerError)
				return
			}
			ctx = c
		}

		var req R
		for _, bind := range cfg.binders {
			if bind == nil {
				continue
			}
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		resp := h(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, errors.New("handler returned nil response"))
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
