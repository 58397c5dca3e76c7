package router

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Bind copies resolved parameter values into a struct so screens can
// take typed params instead of digging through a map. Fields bind by
// `param:"name"` tag, defaulting to the lower-cased field name; a tag
// of "-" skips the field.
//
// Supported field types:
//
//	string            string, enum or catch-all values (int values are formatted)
//	int, int8..int64  int values
//	[]string          a catch-all split on "/"
//	*string, *int64   optionals; left nil when the param is absent
//
// Absent params leave value fields at their zero value.
func Bind(p Params, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a non-nil struct pointer, got %T", target)
	}

	sv := v.Elem()
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("param")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		value, ok := p[name]
		if !ok {
			continue
		}
		if err := setField(sv.Field(i), value); err != nil {
			return fmt.Errorf("param %q: %w", name, err)
		}
	}
	return nil
}

func setField(f reflect.Value, value any) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(formatValue(value))
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := intValue(value)
		if err != nil {
			return err
		}
		if f.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, f.Type())
		}
		f.SetInt(n)
		return nil

	case reflect.Slice:
		if f.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", f.Type())
		}
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot split %T into %s", value, f.Type())
		}
		f.Set(reflect.ValueOf(strings.Split(s, "/")))
		return nil

	case reflect.Pointer:
		elem := reflect.New(f.Type().Elem())
		if err := setField(elem.Elem(), value); err != nil {
			return err
		}
		f.Set(elem)
		return nil

	default:
		return fmt.Errorf("unsupported field type %s", f.Type())
	}
}

func formatValue(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func intValue(value any) (int64, error) {
	switch t := value.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not an int", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot use %T as an int", value)
	}
}
