package viewkit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/viewkit"
)

type mockResponse struct {
	statusCode int
	body       string
	renderErr  error
}

func (m mockResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if m.renderErr != nil {
		return m.renderErr
	}
	w.WriteHeader(m.statusCode)
	w.Write([]byte(m.body))
	return nil
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("basic handler", func(t *testing.T) {
		t.Parallel()
		handler := viewkit.HandlerFunc[viewkit.Context, string](func(ctx viewkit.Context, req string) viewkit.Response {
			assert.NotNil(t, ctx)
			assert.Equal(t, "", req)
			return mockResponse{statusCode: http.StatusOK, body: "success"}
		})

		rec := httptest.NewRecorder()
		viewkit.Wrap(handler)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", rec.Body.String())
	})

	t.Run("render error", func(t *testing.T) {
		t.Parallel()
		handler := viewkit.HandlerFunc[viewkit.Context, string](func(ctx viewkit.Context, req string) viewkit.Response {
			return mockResponse{renderErr: errors.New("render failed")}
		})

		rec := httptest.NewRecorder()
		viewkit.Wrap(handler)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "render failed")
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		handler := viewkit.HandlerFunc[viewkit.Context, string](func(ctx viewkit.Context, req string) viewkit.Response {
			return nil
		})

		rec := httptest.NewRecorder()
		viewkit.Wrap(handler)(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "nil response")
	})

	t.Run("binders run in order", func(t *testing.T) {
		t.Parallel()
		type testRequest struct {
			First  string
			Second string
		}

		first := func(r *http.Request, v any) error {
			v.(*testRequest).First = "a"
			return nil
		}
		second := func(r *http.Request, v any) error {
			req := v.(*testRequest)
			req.Second = req.First + "b"
			return nil
		}

		handler := viewkit.HandlerFunc[viewkit.Context, testRequest](func(ctx viewkit.Context, req testRequest) viewkit.Response {
			assert.Equal(t, "ab", req.Second)
			return mockResponse{statusCode: http.StatusOK, body: req.Second}
		})

		rec := httptest.NewRecorder()
		viewkit.Wrap(handler, viewkit.WithBinders[viewkit.Context, testRequest](first, second))(
			rec, httptest.NewRequest(http.MethodPost, "/test", nil))

		assert.Equal(t, "ab", rec.Body.String())
	})

	t.Run("binder error stops handling", func(t *testing.T) {
		t.Parallel()
		bindErr := errors.New("binding failed")
		handlerCalled := false

		bind := func(r *http.Request, v any) error { return bindErr }
		handler := viewkit.HandlerFunc[viewkit.Context, string](func(ctx viewkit.Context, req string) viewkit.Response {
			handlerCalled = true
			return mockResponse{statusCode: http.StatusOK}
		})

		var seen error
		rec := httptest.NewRecorder()
		viewkit.Wrap(handler,
			viewkit.WithBinders[viewkit.Context, string](bind),
			viewkit.WithErrorHandler[viewkit.Context, string](func(ctx viewkit.Context, err error) {
				seen = err
				ctx.ResponseWriter().WriteHeader(http.StatusBadRequest)
			}),
		)(rec, httptest.NewRequest(http.MethodPost, "/test", nil))

		assert.False(t, handlerCalled)
		assert.Equal(t, bindErr, seen)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("http error rendered with its code", func(t *testing.T) {
		t.Parallel()
		bind := func(r *http.Request, v any) error { return viewkit.ErrNotFound }
		handler := viewkit.HandlerFunc[viewkit.Context, string](func(ctx viewkit.Context, req string) viewkit.Response {
			return mockResponse{statusCode: http.StatusOK}
		})

		rec := httptest.NewRecorder()
		viewkit.Wrap(handler, viewkit.WithBinders[viewkit.Context, string](bind))(
			rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("validation error rendered as 422", func(t *testing.T) {
		t.Parallel()
		verr := viewkit.NewValidationError()
		verr.Add("name", "name is required")

		bind := func(r *http.Request, v any) error { return verr }
		handler := viewkit.HandlerFunc[viewkit.Context, string](func(ctx viewkit.Context, req string) viewkit.Response {
			return mockResponse{statusCode: http.StatusOK}
		})

		rec := httptest.NewRecorder()
		viewkit.Wrap(handler, viewkit.WithBinders[viewkit.Context, string](bind))(
			rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "name is required")
	})

	t.Run("custom context factory", func(t *testing.T) {
		t.Parallel()
		created := false
		factory := func(w http.ResponseWriter, r *http.Request) viewkit.Context {
			created = true
			return viewkit.NewContext(w, r)
		}

		handler := viewkit.HandlerFunc[viewkit.Context, string](func(ctx viewkit.Context, req string) viewkit.Response {
			return mockResponse{statusCode: http.StatusOK, body: "ok"}
		})

		rec := httptest.NewRecorder()
		viewkit.Wrap(handler, viewkit.WithContextFactory[viewkit.Context, string](factory))(
			rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.True(t, created)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	key := viewkit.NewContextKey("user")
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	ctx := viewkit.NewContext(httptest.NewRecorder(), req)
	assert.Empty(t, viewkit.ContextValue[string](ctx, key))

	type user struct{ ID int }
	req = req.WithContext(context.WithValue(req.Context(), key, &user{ID: 7}))
	ctx = viewkit.NewContext(httptest.NewRecorder(), req)

	got := viewkit.ContextValue[*user](ctx, key)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.ID)
}
