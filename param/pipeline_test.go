package param_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/viewkit"
	"github.com/dmitrymomot/viewkit/param"
	"github.com/dmitrymomot/viewkit/pkg/i18n"
	"github.com/dmitrymomot/viewkit/pkg/validator"
	"github.com/dmitrymomot/viewkit/views"
)

func get(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestResolveScalar(t *testing.T) {
	t.Parallel()

	page := param.New[int]("page")

	v, err := page.Resolve(get("/?page=3"))
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestResolveAbsentYieldsZeroValue(t *testing.T) {
	t.Parallel()

	page := param.New[int]("page")

	v, err := page.Resolve(get("/"))
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestResolveAllOrdered(t *testing.T) {
	t.Parallel()

	tags := param.New[string]("tags")

	vs, err := tags.ResolveAll(get("/?tags=go&tags=web&tags=http"))
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web", "http"}, vs)
}

func TestConversionFailuresAggregate(t *testing.T) {
	t.Parallel()

	ids := param.New[int]("id")

	// Both bad values produce a message; conversion does not stop at the
	// first failure.
	_, err := ids.ResolveAll(get("/?id=x&id=7&id=y"))
	require.Error(t, err)

	var verr viewkit.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr["id"], 2)
}

func TestFailureForcesZeroValue(t *testing.T) {
	t.Parallel()

	id := param.New[int]("id",
		param.WithRules[int](func(label string, v int) []validator.Rule {
			return []validator.Rule{validator.Min(label, v, 10)}
		}))

	v, err := id.Resolve(get("/?id=3"))
	require.Error(t, err)
	assert.Zero(t, v, "an invalid outcome must not expose the converted value")
}

func TestRequired(t *testing.T) {
	t.Parallel()

	name := param.New[string]("name", param.Required[string]())

	_, err := name.Resolve(get("/"))
	require.Error(t, err)

	var verr viewkit.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("name"))

	v, err := name.Resolve(get("/?name=alex"))
	require.NoError(t, err)
	assert.Equal(t, "alex", v)
}

func TestEmptySubmittedTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	// The default toggle treats "" as absent, so a required empty
	// submission fails and an optional one yields the zero value.
	page := param.New[int]("page")
	v, err := page.Resolve(get("/?page="))
	require.NoError(t, err)
	assert.Zero(t, v)

	name := param.New[string]("name", param.Required[string]())
	_, err = name.Resolve(get("/?name="))
	assert.Error(t, err)
}

func TestEmptyAsAbsentOverride(t *testing.T) {
	t.Parallel()

	// With the per-parameter override off, the empty string reaches the
	// converter and fails for non-string targets.
	page := param.New[int]("page", param.EmptyAsAbsent[int](false))
	_, err := page.Resolve(get("/?page="))
	assert.Error(t, err)
}

func TestLabelUsedInMessages(t *testing.T) {
	t.Parallel()

	age := param.New[int]("a", param.WithLabel[int]("Age"), param.Required[int]())

	_, err := age.Resolve(get("/"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Age")
}

func TestRuleValidation(t *testing.T) {
	t.Parallel()

	age := param.New[int]("age",
		param.WithRules[int](func(label string, v int) []validator.Rule {
			return []validator.Rule{
				validator.Min(label, v, 18),
				validator.Max(label, v, 130),
			}
		}))

	_, err := age.Resolve(get("/?age=12"))
	require.Error(t, err)

	v, err := age.Resolve(get("/?age=30"))
	require.NoError(t, err)
	assert.Equal(t, 30, v)
}

func TestWithoutRulesSkipsRuleValidation(t *testing.T) {
	t.Parallel()

	age := param.New[int]("age",
		param.WithRules[int](func(label string, v int) []validator.Rule {
			return []validator.Rule{validator.Min(label, v, 18)}
		}),
		param.WithoutRules[int]())

	v, err := age.Resolve(get("/?age=12"))
	require.NoError(t, err)
	assert.Equal(t, 12, v)
}

func TestCustomValidator(t *testing.T) {
	t.Parallel()

	team := param.New[string]("team",
		param.WithValidator[string](func(v string) error {
			if strings.Contains(v, " ") {
				return errors.New("team must not contain spaces")
			}
			return nil
		}))

	_, err := team.Resolve(get("/?team=core%20infra"))
	require.Error(t, err)

	var verr viewkit.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "team must not contain spaces", verr.Get("team"))
}

func TestExplicitConverter(t *testing.T) {
	t.Parallel()

	upper := param.New[string]("code",
		param.WithConverter[string](func(raw string) (string, error) {
			return strings.ToUpper(raw), nil
		}))

	v, err := upper.Resolve(get("/?code=abc"))
	require.NoError(t, err)
	assert.Equal(t, "ABC", v)
}

func TestTimeConversion(t *testing.T) {
	t.Parallel()

	since := param.New[time.Time]("since")

	v, err := since.Resolve(get("/?since=2026-08-29"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), v)

	_, err = since.Resolve(get("/?since=yesterday"))
	assert.Error(t, err)
}

func TestPathSource(t *testing.T) {
	t.Parallel()

	id := param.New[int]("id", param.FromPath[int](0))

	r := get("/users/42/edit")
	r = r.WithContext(views.WithPathParams(r.Context(), []string{"42", "edit"}))

	v, err := id.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestHeaderSource(t *testing.T) {
	t.Parallel()

	version := param.New[string]("X-Client-Version", param.FromHeader[string]())

	r := get("/")
	r.Header.Set("X-Client-Version", "1.4.0")

	v, err := version.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", v)
}

func TestFormSource(t *testing.T) {
	t.Parallel()

	name := param.New[string]("name", param.FromForm[string]())

	r := httptest.NewRequest(http.MethodPost, "/?name=fromquery", strings.NewReader("name=fromform"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	v, err := name.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "fromform", v, "SourceForm must ignore the query string")
}

func TestLocalizedMessages(t *testing.T) {
	t.Parallel()

	translator, err := i18n.NewTranslator(map[string]map[string]string{
		"en": {"validation.required": "{field} is required"},
		"de": {"validation.required": "{field} ist erforderlich"},
	}, "en")
	require.NoError(t, err)

	name := param.New[string]("name",
		param.WithLabel[string]("Name"),
		param.Required[string](),
		param.WithTranslator[string](translator))

	r := get("/")
	r = r.WithContext(i18n.SetLocale(r.Context(), "de"))

	_, err = name.Resolve(r)
	require.Error(t, err)

	var verr viewkit.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name ist erforderlich", verr.Get("name"))
}
