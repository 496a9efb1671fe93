package convert

import "reflect"

// Describe returns a readable name for t that includes its value family,
// e.g. "int16 (integer)" or "[]bool (list of boolean)".
func Describe(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if f := family(t); f != "" {
		return t.String() + " (" + f + ")"
	}
	return t.String()
}

func family(t reflect.Type) string {
	switch t {
	case decimalType:
		return "decimal"
	case bigIntType:
		return "big integer"
	case timeType:
		return "date-time"
	case bytesType:
		return ""
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "unsigned integer"
	case reflect.Float32, reflect.Float64:
		return "floating-point"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		if f := family(t.Elem()); f != "" {
			return "list of " + f
		}
		return "list"
	}
	return ""
}
