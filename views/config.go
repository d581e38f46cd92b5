// Package views maps extensionless request URLs to physical view template
// resources discovered by scanning one or more webroot directories.
//
// A scan builds an immutable lookup table (see Cache) that the Middleware
// consults per request: extensionless paths are forwarded to the physical
// resource, extensioned requests for scanned views are canonicalized or
// blocked by policy, and direct requests into protected roots are rejected.
package views

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WebInfViews is the well-known directory that is always scanned in addition
// to any configured scan paths. Resources under it are only reachable through
// their extensionless logical path.
const WebInfViews = "/WEB-INF/faces-views/"

// ExtensionAction is the policy applied when a request uses the extensioned
// form of a view that was scanned extensionless.
type ExtensionAction int

const (
	// RedirectToExtensionless permanently redirects to the extensionless URL.
	RedirectToExtensionless ExtensionAction = iota
	// Send404 responds with 404 Not Found.
	Send404
	// Proceed lets the request continue unmodified.
	Proceed
)

// UnmarshalText parses an ExtensionAction from its configuration spelling.
// Unknown values are a configuration error and abort startup.
func (a *ExtensionAction) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "", "REDIRECT_TO_EXTENSIONLESS":
		*a = RedirectToExtensionless
	case "SEND_404":
		*a = Send404
	case "PROCEED":
		*a = Proceed
	default:
		return fmt.Errorf("%w: extension action %q", ErrInvalidConfig, text)
	}
	return nil
}

func (a ExtensionAction) String() string {
	switch a {
	case Send404:
		return "SEND_404"
	case Proceed:
		return "PROCEED"
	default:
		return "REDIRECT_TO_EXTENSIONLESS"
	}
}

// PathAction is the policy applied when a request directly targets a resource
// under a public scan root instead of its canonical extensionless URL.
type PathAction int

const (
	// Send404Path responds with 404 Not Found.
	Send404Path PathAction = iota
	// RedirectToScanned permanently redirects to the canonical extensionless URL.
	RedirectToScanned
	// ProceedPath lets the request continue unmodified.
	ProceedPath
)

func (a *PathAction) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "", "SEND_404":
		*a = Send404Path
	case "REDIRECT_TO_SCANNED_EXTENSIONLESS":
		*a = RedirectToScanned
	case "PROCEED":
		*a = ProceedPath
	default:
		return fmt.Errorf("%w: path action %q", ErrInvalidConfig, text)
	}
	return nil
}

func (a PathAction) String() string {
	switch a {
	case RedirectToScanned:
		return "REDIRECT_TO_SCANNED_EXTENSIONLESS"
	case ProceedPath:
		return "PROCEED"
	default:
		return "SEND_404"
	}
}

// DispatchMethod selects how a matched extensionless request reaches the view
// handler. DoFilter is accepted for compatibility and normalized to Forward.
type DispatchMethod int

const (
	Forward DispatchMethod = iota
	DoFilter
)

// yaml.v3 does not consult encoding.TextUnmarshaler, so the enums delegate
// explicitly for deployment-file loading.
func (a *ExtensionAction) UnmarshalYAML(value *yaml.Node) error { return a.UnmarshalText([]byte(value.Value)) }
func (a *PathAction) UnmarshalYAML(value *yaml.Node) error      { return a.UnmarshalText([]byte(value.Value)) }
func (d *DispatchMethod) UnmarshalYAML(value *yaml.Node) error  { return d.UnmarshalText([]byte(value.Value)) }

func (d *DispatchMethod) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "", "FORWARD":
		*d = Forward
	case "DO_FILTER":
		*d = DoFilter
	default:
		return fmt.Errorf("%w: dispatch method %q", ErrInvalidConfig, text)
	}
	return nil
}

// Config holds the views subsystem configuration. Fields are loadable from
// environment variables through pkg/config or from a YAML deployment file
// through LoadFile.
type Config struct {
	// Enabled turns the whole subsystem on. When false, Middleware is a
	// pass-through.
	Enabled bool `env:"VIEWS_ENABLED" envDefault:"true" yaml:"enabled"`

	// ScanPaths is a comma-separated list of webroot-relative directories to
	// scan. Each entry optionally carries a "/*.ext" suffix restricting the
	// scan to one extension, or a "/*" suffix enabling multi-view matching
	// for views under it. WebInfViews is always scanned in addition.
	ScanPaths string `env:"VIEWS_SCAN_PATHS" envDefault:"/" yaml:"scan_paths"`

	// ScannedViewsAlwaysExtensionless forces canonicalization of every
	// scanned view, not only those found under WebInfViews.
	ScannedViewsAlwaysExtensionless bool `env:"VIEWS_ALWAYS_EXTENSIONLESS" envDefault:"true" yaml:"scanned_views_always_extensionless"`

	ExtensionAction ExtensionAction `env:"VIEWS_EXTENSION_ACTION" yaml:"extension_action"`
	PathAction      PathAction      `env:"VIEWS_PATH_ACTION" yaml:"path_action"`
	DispatchMethod  DispatchMethod  `env:"VIEWS_DISPATCH_METHOD" yaml:"dispatch_method"`

	// WelcomeFile is the extensionless logical name of the directory default
	// document (e.g. "index"). Explicit requests for it redirect to the
	// folder path so the same content is not served at two URLs.
	WelcomeFile string `env:"VIEWS_WELCOME_FILE" envDefault:"index" yaml:"welcome_file"`

	// DevelopmentMode makes cache misses trigger one rescan, so newly added
	// view files are picked up without a restart.
	DevelopmentMode bool `env:"VIEWS_DEVELOPMENT_MODE" envDefault:"false" yaml:"development_mode"`
}

// LoadFile reads a Config from a YAML deployment file. Enum fields use the
// same spellings as the environment variables; unknown values fail fast.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	var cfg Config
	cfg.Enabled = true
	cfg.ScannedViewsAlwaysExtensionless = true
	if cfg.ScanPaths == "" {
		cfg.ScanPaths = "/"
	}
	if cfg.WelcomeFile == "" {
		cfg.WelcomeFile = "index"
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Root is one parsed scan-path specifier.
type Root struct {
	// Path is the normalized webroot-relative directory, always starting and
	// ending with "/".
	Path string
	// Ext restricts the scan to files with this extension (including the
	// dot), empty for all extensions.
	Ext string
	// MultiViews marks views under this root as accepting trailing path
	// parameters.
	MultiViews bool
}

// Public reports whether the root is directly reachable by clients. The bare
// webroot and container-internal directories are not public.
func (r Root) Public() bool {
	if r.Path == "/" {
		return false
	}
	upper := strings.ToUpper(r.Path)
	return !strings.HasPrefix(upper, "/WEB-INF/") && !strings.HasPrefix(upper, "/META-INF/")
}

// ParseScanPaths splits and normalizes the configured scan-path list and
// appends the always-scanned WebInfViews root. Duplicate roots collapse to
// the first occurrence.
func ParseScanPaths(spec string) []Root {
	var roots []Root
	seen := make(map[string]bool)

	add := func(r Root) {
		if !seen[r.Path] {
			seen[r.Path] = true
			roots = append(roots, r)
		}
	}

	for _, raw := range strings.Split(spec, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		root := Root{}
		if strings.HasSuffix(raw, "/*") {
			root.MultiViews = true
			raw = strings.TrimSuffix(raw, "/*")
		} else if i := strings.LastIndex(raw, "/*."); i >= 0 && !strings.Contains(raw[i+2:], "/") {
			root.Ext = raw[i+2:]
			raw = raw[:i]
		}
		root.Path = normalizeRoot(raw)
		add(root)
	}

	add(Root{Path: WebInfViews})
	return roots
}

// normalizeRoot ensures a root path starts and ends with "/". It is
// idempotent.
func normalizeRoot(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
