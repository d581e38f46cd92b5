// Package param resolves named request parameters into typed, converted,
// and validated values through a strictly ordered pipeline:
//
//  1. resolve the parameter name and its human-readable label;
//  2. fetch the raw submitted strings from the configured source (query or
//     form field, positional multi-view path segment, or header);
//  3. optionally treat empty submissions as absent (process-wide toggle,
//     read once from the environment);
//  4. convert every raw value, collecting per-value failures as messages
//     instead of aborting at the first;
//  5. coerce to the declared shape: Resolve yields a scalar, ResolveAll a
//     slice; absent input yields the zero value;
//  6. run the required-presence check, then rule validation (skippable per
//     value and globally), then any per-value validator functions;
//  7. on any failure the outcome is invalid: the resolved value is forced
//     to zero and the error aggregates every message, localized when a
//     translator is configured.
//
// Failures never surface as transport errors; they come back as a
// viewkit.ValidationError keyed by the parameter name, for rendering
// against the originating field.
package param

import (
	"github.com/dmitrymomot/viewkit/pkg/config"
	"github.com/dmitrymomot/viewkit/pkg/i18n"
	"github.com/dmitrymomot/viewkit/pkg/validator"
)

// Source selects where a parameter's raw values come from.
type Source int

const (
	// SourceQuery reads URL query values, falling back to form fields for
	// POST submissions.
	SourceQuery Source = iota
	// SourceForm reads urlencoded form fields only.
	SourceForm
	// SourcePath reads a positional multi-view path segment (see
	// views.PathParams).
	SourcePath
	// SourceHeader reads request header values, for inputs computed on the
	// client and delivered alongside the request.
	SourceHeader
)

// Value describes one named request parameter of type T.
// Construct with New and configure through options; Resolve runs the
// pipeline against a request.
type Value[T any] struct {
	name  string
	label string

	source    Source
	pathIndex int

	required      bool
	emptyAsAbsent *bool
	skipRules     bool

	converter  func(raw string) (T, error)
	rules      func(label string, v T) []validator.Rule
	validators []func(v T) error

	translator *i18n.Translator
}

// Option configures a Value.
type Option[T any] func(*Value[T])

// New creates a parameter definition. The label defaults to the name.
func New[T any](name string, opts ...Option[T]) *Value[T] {
	p := &Value[T]{
		name:  name,
		label: name,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithLabel sets the human-readable label used in error messages.
func WithLabel[T any](label string) Option[T] {
	return func(p *Value[T]) {
		if label != "" {
			p.label = label
		}
	}
}

// FromForm reads the parameter from form fields only.
func FromForm[T any]() Option[T] {
	return func(p *Value[T]) { p.source = SourceForm }
}

// FromPath reads the parameter from the i-th multi-view path segment.
func FromPath[T any](i int) Option[T] {
	return func(p *Value[T]) {
		p.source = SourcePath
		p.pathIndex = i
	}
}

// FromHeader reads the parameter from the request header named by the
// parameter name.
func FromHeader[T any]() Option[T] {
	return func(p *Value[T]) { p.source = SourceHeader }
}

// Required makes absent input a validation failure.
func Required[T any]() Option[T] {
	return func(p *Value[T]) { p.required = true }
}

// EmptyAsAbsent overrides the process-wide empty-submission toggle for this
// parameter.
func EmptyAsAbsent[T any](v bool) Option[T] {
	return func(p *Value[T]) { p.emptyAsAbsent = &v }
}

// WithConverter sets an explicit converter, replacing the one inferred from
// T.
func WithConverter[T any](fn func(raw string) (T, error)) Option[T] {
	return func(p *Value[T]) {
		if fn != nil {
			p.converter = fn
		}
	}
}

// WithRules attaches rule validation. The function receives the label and
// the converted value and returns the rules to apply.
func WithRules[T any](fn func(label string, v T) []validator.Rule) Option[T] {
	return func(p *Value[T]) { p.rules = fn }
}

// WithoutRules skips rule validation for this parameter even when rules are
// attached, mirroring per-instance validation bypass.
func WithoutRules[T any]() Option[T] {
	return func(p *Value[T]) { p.skipRules = true }
}

// WithValidator appends a per-value validator run after rule validation.
// Returned errors become messages against the parameter.
func WithValidator[T any](fn func(v T) error) Option[T] {
	return func(p *Value[T]) {
		if fn != nil {
			p.validators = append(p.validators, fn)
		}
	}
}

// WithTranslator localizes produced messages through the translator, using
// the request's negotiated locale.
func WithTranslator[T any](t *i18n.Translator) Option[T] {
	return func(p *Value[T]) { p.translator = t }
}

// Env holds the process-wide pipeline toggles. Values are read once and
// cached by pkg/config.
type Env struct {
	// EmptySubmittedAsAbsent normalizes empty submitted strings to absent
	// values before conversion.
	EmptySubmittedAsAbsent bool `env:"PARAM_EMPTY_AS_ABSENT" envDefault:"true"`
	// SkipRuleValidation disables rule validation globally, for deployments
	// that handle constraint checking elsewhere.
	SkipRuleValidation bool `env:"PARAM_SKIP_RULE_VALIDATION" envDefault:"false"`
}

func settings() Env {
	var e Env
	// The defaults apply when the environment is unreadable.
	if err := config.Load(&e); err != nil {
		return Env{EmptySubmittedAsAbsent: true}
	}
	return e
}
