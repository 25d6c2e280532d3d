package specification

import (
	"reflect"
	"strings"
)

// resolveProperty reads a named property off an arbitrary candidate. It
// supports string-keyed maps and exported struct fields (matched by json tag,
// exact name, then case-insensitive name), dereferencing pointers and
// interfaces along the way. Dotted paths descend into nested values.
//
// The boolean result distinguishes "present" from "missing": a property that
// exists with a nil value resolves to (nil, true), while a nil candidate, a
// nil pointer on the path, or an unknown property resolves to (nil, false).
func resolveProperty(candidate any, property string) (any, bool) {
	if candidate == nil || property == "" {
		return nil, false
	}

	current := reflect.ValueOf(candidate)
	for _, segment := range strings.Split(property, ".") {
		next, ok := lookup(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}

	if !current.IsValid() || !current.CanInterface() {
		return nil, false
	}

	return current.Interface(), true
}

func lookup(v reflect.Value, segment string) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		key := reflect.ValueOf(segment).Convert(v.Type().Key())
		entry := v.MapIndex(key)
		if !entry.IsValid() {
			return reflect.Value{}, false
		}

		return entry, true
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			if tagName(field) == segment {
				return v.Field(i), true
			}
		}
		if field, ok := t.FieldByName(segment); ok && field.IsExported() {
			return v.FieldByIndex(field.Index), true
		}
		if field, ok := t.FieldByNameFunc(func(name string) bool { return strings.EqualFold(name, segment) }); ok &&
			field.IsExported() {
			return v.FieldByIndex(field.Index), true
		}

		return reflect.Value{}, false
	default:
		return reflect.Value{}, false
	}
}

func tagName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")

	return name
}

// isNilValue reports whether a resolved property value is nil, including
// typed nil pointers, maps and slices hiding inside an interface.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// asFloat converts any integer, unsigned or floating point value to float64.
func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// equalValues compares two values for equality, normalizing numeric kinds and
// named string types so that e.g. a custom status type equals its underlying
// string literal. Everything else falls back to deep equality.
func equalValues(a, b any) bool {
	if af, ok := asFloat(a); ok {
		bf, ok := asFloat(b)

		return ok && af == bf
	}
	if as, ok := asString(a); ok {
		bs, ok := asString(b)

		return ok && as == bs
	}

	return reflect.DeepEqual(a, b)
}

func asString(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}

	return "", false
}
