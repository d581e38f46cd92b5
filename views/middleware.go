package views

import (
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// Middleware returns HTTP middleware implementing the view URL policy.
// For each request path, in order:
//
//  1. An explicit request for the welcome file redirects to its folder, so
//     the same content is not reachable at two URLs.
//  2. An extensionless path naming a scanned view is forwarded to the
//     physical resource; under multi-view roots, trailing segments become
//     path parameters.
//  3. An extensioned request for a scanned view is canonicalized, blocked,
//     or passed through per Config.ExtensionAction.
//  4. A direct request into a public scan root is blocked, redirected to the
//     canonical URL, or passed through per Config.PathAction.
//  5. Anything else continues unmodified.
func Middleware(cache *Cache, cfg Config) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	if cfg.DispatchMethod == DoFilter {
		// DO_FILTER is retained for configuration compatibility only.
		slog.Warn("views: dispatch method DO_FILTER is deprecated, using FORWARD")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := r.URL.Path

			if target, ok := welcomeRedirect(cache, cfg, p); ok {
				redirect(w, r, target)
				return
			}

			if path.Ext(p) == "" {
				if physical, ok := cache.Resolve(p); ok {
					forward(w, r, next, physical, nil)
					return
				}
				if physical, _, params, ok := cache.ResolveMultiView(p); ok {
					forward(w, r, next, physical, params)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if physical, ok := cache.Resolve(p); ok && canonicalized(cfg, physical) {
				switch cfg.ExtensionAction {
				case RedirectToExtensionless:
					redirect(w, r, stripExtension(p))
				case Send404:
					http.NotFound(w, r)
				default:
					forward(w, r, next, physical, nil)
				}
				return
			}

			if canonical, ok := cache.Snapshot().UnderPublicRoot(p); ok {
				switch cfg.PathAction {
				case RedirectToScanned:
					redirect(w, r, canonical)
				case ProceedPath:
					next.ServeHTTP(w, r)
				default:
					http.NotFound(w, r)
				}
				return
			}

			if strings.HasPrefix(strings.ToUpper(p), "/WEB-INF/") || strings.HasPrefix(strings.ToUpper(p), "/META-INF/") {
				// Protected roots are never directly servable, whatever the
				// configured path action.
				http.NotFound(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// canonicalized reports whether extension-policy handling applies to a
// resource. Views under the well-known WEB-INF directory are always
// canonical; others only when configured so.
func canonicalized(cfg Config, physical string) bool {
	return cfg.ScannedViewsAlwaysExtensionless || strings.HasPrefix(physical, WebInfViews)
}

// welcomeRedirect reports whether the request explicitly names the welcome
// file of a folder, and the folder path to redirect to.
func welcomeRedirect(cache *Cache, cfg Config, p string) (string, bool) {
	if cfg.WelcomeFile == "" {
		return "", false
	}
	base := path.Base(p)
	if stripExtension(base) != cfg.WelcomeFile {
		return "", false
	}
	if _, ok := cache.Resolve(stripExtension(p)); !ok {
		return "", false
	}
	dir := strings.TrimSuffix(p, base)
	if dir == "" {
		dir = "/"
	}
	return dir, true
}

// redirect issues the permanent redirect used for URL canonicalization,
// preserving the original query string.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

// forward rewrites the request to the physical resource and hands it to the
// next handler, recording the original path and any multi-view parameters.
func forward(w http.ResponseWriter, r *http.Request, next http.Handler, physical string, params []string) {
	ctx := WithOriginalPath(r.Context(), r.URL.Path)
	if params != nil {
		ctx = WithPathParams(ctx, params)
	}
	r2 := r.Clone(ctx)
	r2.URL.Path = physical
	next.ServeHTTP(w, r2)
}
