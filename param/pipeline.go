package param

import (
	"context"
	"net/http"
	"net/textproto"

	"github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/pkg/validator"
	"github.com/dmitrymomot/viewkit/views"
)

// Resolve runs the pipeline and returns the parameter as a scalar. With
// multiple submitted values the first one wins. Absent input yields T's zero
// value; the error, when non-nil, is always a viewkit.ValidationError.
func (p *Value[T]) Resolve(r *http.Request) (T, error) {
	var zero T
	converted, errs := p.resolve(r)
	if !errs.IsEmpty() {
		return zero, errs
	}
	if len(converted) == 0 {
		return zero, nil
	}
	return converted[0], nil
}

// ResolveAll runs the pipeline and returns every submitted value in order.
// Absent input yields a nil slice.
func (p *Value[T]) ResolveAll(r *http.Request) ([]T, error) {
	converted, errs := p.resolve(r)
	if !errs.IsEmpty() {
		return nil, errs
	}
	return converted, nil
}

// resolve is the staged pipeline shared by Resolve and ResolveAll. Failures
// accumulate; a non-empty result error means the value must not be used.
func (p *Value[T]) resolve(r *http.Request) ([]T, viewkit.ValidationError) {
	ctx := r.Context()
	errs := viewkit.NewValidationError()
	env := settings()

	raws := p.raw(r)

	emptyAsAbsent := env.EmptySubmittedAsAbsent
	if p.emptyAsAbsent != nil {
		emptyAsAbsent = *p.emptyAsAbsent
	}
	if emptyAsAbsent {
		kept := raws[:0:0]
		for _, raw := range raws {
			if raw != "" {
				kept = append(kept, raw)
			}
		}
		raws = kept
	}

	// Conversion failures are collected per value; remaining values still
	// convert so the user sees every problem at once.
	var converted []T
	for _, raw := range raws {
		v, err := p.convert(raw)
		if err != nil {
			errs.Add(p.name, p.message(ctx, "param.invalid_value",
				p.label+" has an invalid value: "+err.Error(),
				map[string]any{"label": p.label, "value": raw}))
			continue
		}
		converted = append(converted, v)
	}

	if p.required && len(raws) == 0 {
		errs.Add(p.name, p.message(ctx, "validation.required",
			p.label+" is required",
			map[string]any{"field": p.label}))
	}

	if p.rules != nil && !p.skipRules && !env.SkipRuleValidation {
		for _, v := range converted {
			p.addValidationMessages(ctx, errs, validator.Apply(p.rules(p.label, v)...))
		}
	}

	for _, v := range converted {
		for _, validate := range p.validators {
			p.addValidationMessages(ctx, errs, validate(v))
		}
	}

	if !errs.IsEmpty() {
		// An invalid outcome never yields a partial value.
		return nil, errs
	}
	return converted, errs
}

// raw retrieves the submitted strings for the configured source.
func (p *Value[T]) raw(r *http.Request) []string {
	switch p.source {
	case SourceForm:
		_ = r.ParseForm()
		return r.PostForm[p.name]
	case SourcePath:
		if seg := views.PathParam(r.Context(), p.pathIndex); seg != "" {
			return []string{seg}
		}
		return nil
	case SourceHeader:
		return r.Header.Values(textproto.CanonicalMIMEHeaderKey(p.name))
	default:
		// Query and form fields share one namespace, as submitted request
		// parameters do.
		_ = r.ParseForm()
		return r.Form[p.name]
	}
}

// addValidationMessages folds an error from rule or custom validation into
// the aggregate, localizing rule errors that carry translation keys.
func (p *Value[T]) addValidationMessages(ctx context.Context, errs viewkit.ValidationError, err error) {
	if err == nil {
		return
	}
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		for _, verr := range verrs {
			if p.translator != nil && verr.TranslationKey != "" {
				errs.Add(p.name, p.translator.T(ctx, verr.TranslationKey, verr.TranslationValues))
			} else {
				errs.Add(p.name, verr.Message)
			}
		}
		return
	}
	errs.Add(p.name, err.Error())
}

func (p *Value[T]) message(ctx context.Context, key, fallback string, values map[string]any) string {
	if p.translator != nil {
		return p.translator.T(ctx, key, values)
	}
	return fallback
}
