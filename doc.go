// Package viewkit serves server-rendered views through clean, extensionless
// URLs and binds typed, validated request parameters for the handlers behind
// those views.
//
// The toolkit has three layers:
//
//   - views: scans one or more webroot directories for view templates at
//     startup and installs middleware that maps extensionless request paths
//     to the physical resources, canonicalizes extensioned requests, and
//     blocks direct access to protected roots.
//   - param and binder: resolve named request parameters (query, form,
//     multi-view path segments, headers) into typed values through a staged
//     convert/validate pipeline that aggregates failures into user-facing
//     messages instead of aborting on the first error.
//   - the root package: a small type-safe handler surface (Context,
//     HandlerFunc, Response, Wrap) and a Router helper that assembles the
//     middleware stack on chi.
//
// Basic usage:
//
//	cfg := views.Config{Enabled: true, ScanPaths: "/, /WEB-INF/faces-views/*.xhtml"}
//	cache := views.NewDirCache(webroot, cfg)
//
//	r := chi.NewRouter()
//	r.Use(views.Middleware(cache, cfg))
//	r.Handle("/*", templateHandler)
//
// Handlers receive already-bound request types:
//
//	type AddUserRequest struct {
//		Name string `form:"name"`
//		Team string `query:"team"`
//	}
//
//	h := viewkit.HandlerFunc[viewkit.Context, AddUserRequest](
//		func(ctx viewkit.Context, req AddUserRequest) viewkit.Response {
//			return viewkit.Redirect("/users")
//		},
//	)
//	r.Post("/users/add", viewkit.Wrap(h, viewkit.WithBinders(binder.Form(), binder.Query())))
package viewkit
