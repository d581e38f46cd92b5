package param

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// convert turns one raw string into T, using the explicit converter when
// configured and a conversion inferred from T's kind otherwise.
func (p *Value[T]) convert(raw string) (T, error) {
	if p.converter != nil {
		return p.converter(raw)
	}
	return inferConvert[T](raw)
}

func inferConvert[T any](raw string) (T, error) {
	var zero T

	// time.Time has no useful reflect.Kind; accept RFC 3339 and plain dates.
	if _, ok := any(zero).(time.Time); ok {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if ts, err := time.Parse(layout, raw); err == nil {
				return any(ts).(T), nil
			}
		}
		return zero, fmt.Errorf("invalid timestamp %q", raw)
	}

	rv := reflect.New(reflect.TypeOf(zero)).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, rv.Type().Bits())
		if err != nil {
			return zero, fmt.Errorf("invalid integer %q", raw)
		}
		rv.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, rv.Type().Bits())
		if err != nil {
			return zero, fmt.Errorf("invalid unsigned integer %q", raw)
		}
		rv.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(raw, rv.Type().Bits())
		if err != nil {
			return zero, fmt.Errorf("invalid number %q", raw)
		}
		rv.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			switch strings.ToLower(raw) {
			case "on", "yes":
				b = true
			case "off", "no":
				b = false
			default:
				return zero, fmt.Errorf("invalid boolean %q", raw)
			}
		}
		rv.SetBool(b)

	default:
		return zero, fmt.Errorf("no converter for type %T", zero)
	}

	return rv.Interface().(T), nil
}
