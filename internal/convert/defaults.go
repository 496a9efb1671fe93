package convert

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/KimNorgaard/go-docboost/multimap"
)

// TimeLayout is the layout used when a time is converted to a string.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	stringType          = reflect.TypeFor[string]()
	bytesType           = reflect.TypeFor[[]byte]()
	int32Type           = reflect.TypeFor[int32]()
	int64Type           = reflect.TypeFor[int64]()
	boolType            = reflect.TypeFor[bool]()
	timeType            = reflect.TypeFor[time.Time]()
	decimalType         = reflect.TypeFor[decimal.Decimal]()
	bigIntType          = reflect.TypeFor[*big.Int]()
	mapType             = reflect.TypeFor[*multimap.Map]()
	goMapType           = reflect.TypeFor[map[string]any]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func (s *Service) registerDefaults() {
	s.kinds[reflect.String] = toString
	s.kinds[reflect.Bool] = toBool
	for _, k := range []reflect.Kind{reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64} {
		s.kinds[k] = toInt
	}
	for _, k := range []reflect.Kind{reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64} {
		s.kinds[k] = toUint
	}
	s.kinds[reflect.Float32] = toFloat
	s.kinds[reflect.Float64] = toFloat

	s.to[timeType] = toTime
	s.to[decimalType] = toDecimal
	s.to[bigIntType] = toBigInt
	s.to[bytesType] = toBytes
	s.to[reflect.TypeFor[multimap.Int]()] = func(v any, dst reflect.Type) (any, error) {
		n, err := toInt(v, int32Type)
		if err != nil || n == nil {
			return n, err
		}
		return multimap.Int{Value: n.(int32)}, nil
	}
	s.to[reflect.TypeFor[multimap.Long]()] = func(v any, dst reflect.Type) (any, error) {
		n, err := toInt(v, int64Type)
		if err != nil || n == nil {
			return n, err
		}
		return multimap.Long{Value: n.(int64)}, nil
	}
	s.to[reflect.TypeFor[multimap.Bool]()] = func(v any, dst reflect.Type) (any, error) {
		b, err := toBool(v, boolType)
		if err != nil || b == nil {
			return b, err
		}
		return multimap.Bool{Value: b.(bool)}, nil
	}

	s.Register(goMapType, mapType, func(v any, _ reflect.Type) (any, error) {
		return fromGoMap(v.(map[string]any)), nil
	})
}

func toString(v any, dst reflect.Type) (any, error) {
	var str string
	switch x := v.(type) {
	case time.Time:
		str = x.Format(TimeLayout)
	case []byte:
		str = string(x)
	default:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
			str = rv.String()
			break
		}
		var err error
		str, err = cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
	}
	out := reflect.New(dst).Elem()
	out.SetString(str)
	return out.Interface(), nil
}

var errNotInteger = errors.New("convert: text is not a base-10 integer")

var boolWords = map[string]bool{
	"true": true, "on": true, "yes": true, "y": true, "1": true,
	"false": false, "off": false, "no": false, "n": false, "0": false,
}

func toBool(v any, dst reflect.Type) (any, error) {
	var b bool
	if str, ok := v.(string); ok {
		w, known := boolWords[strings.ToLower(strings.TrimSpace(str))]
		if !known {
			return nil, fmt.Errorf("convert: invalid boolean value %q", str)
		}
		b = w
	} else {
		var err error
		b, err = cast.ToBoolE(v)
		if err != nil {
			return nil, err
		}
	}
	out := reflect.New(dst).Elem()
	out.SetBool(b)
	return out.Interface(), nil
}

func toInt(v any, dst reflect.Type) (any, error) {
	var n int64
	switch x := v.(type) {
	case *big.Int:
		if !x.IsInt64() {
			return nil, fmt.Errorf("convert: integer value %s overflows %s", x, dst)
		}
		n = x.Int64()
	case decimal.Decimal:
		if !x.IsInteger() {
			return nil, fmt.Errorf("convert: decimal value %s is not an integer", x)
		}
		n = x.IntPart()
	case uint, uint64:
		u, err := cast.ToUint64E(x)
		if err != nil {
			return nil, err
		}
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("convert: integer value %d overflows %s", u, dst)
		}
		n = int64(u)
	case string:
		i, err := parseInteger(x)
		if err != nil {
			return nil, err
		}
		if !i.IsInt64() {
			return nil, fmt.Errorf("convert: integer value %s overflows %s", i, dst)
		}
		n = i.Int64()
	default:
		var err error
		n, err = cast.ToInt64E(v)
		if err != nil {
			return nil, err
		}
	}
	out := reflect.New(dst).Elem()
	if out.OverflowInt(n) {
		return nil, fmt.Errorf("convert: integer value %d overflows %s", n, dst)
	}
	out.SetInt(n)
	return out.Interface(), nil
}

func toUint(v any, dst reflect.Type) (any, error) {
	var n uint64
	switch x := v.(type) {
	case *big.Int:
		if !x.IsUint64() {
			return nil, fmt.Errorf("convert: integer value %s overflows %s", x, dst)
		}
		n = x.Uint64()
	case string:
		i, err := parseInteger(x)
		if err != nil {
			return nil, err
		}
		if !i.IsUint64() {
			return nil, fmt.Errorf("convert: integer value %s overflows %s", i, dst)
		}
		n = i.Uint64()
	default:
		var err error
		n, err = cast.ToUint64E(v)
		if err != nil {
			return nil, err
		}
	}
	out := reflect.New(dst).Elem()
	if out.OverflowUint(n) {
		return nil, fmt.Errorf("convert: integer value %d overflows %s", n, dst)
	}
	out.SetUint(n)
	return out.Interface(), nil
}

// parseInteger reads str as a base-10 integer. Surrounding space is ignored,
// leading zeros do not select another base, and an integral decimal such as
// "3.0" is accepted.
func parseInteger(str string) (*big.Int, error) {
	str = strings.TrimSpace(str)
	if i, ok := new(big.Int).SetString(str, 10); ok {
		return i, nil
	}
	d, err := decimal.NewFromString(str)
	if err != nil || !d.IsInteger() {
		return nil, errNotInteger
	}
	return d.BigInt(), nil
}

func toFloat(v any, dst reflect.Type) (any, error) {
	var f float64
	switch x := v.(type) {
	case decimal.Decimal:
		f = x.InexactFloat64()
	case *big.Int:
		f, _ = new(big.Float).SetInt(x).Float64()
	default:
		var err error
		f, err = cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
	}
	out := reflect.New(dst).Elem()
	if out.OverflowFloat(f) {
		return nil, fmt.Errorf("convert: float value %g overflows %s", f, dst)
	}
	out.SetFloat(f)
	return out.Interface(), nil
}

func toTime(v any, _ reflect.Type) (any, error) {
	t, err := cast.ToTimeE(v)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func toDecimal(v any, _ reflect.Type) (any, error) {
	switch x := v.(type) {
	case string:
		return decimal.NewFromString(strings.TrimSpace(x))
	case *big.Int:
		return decimal.NewFromBigInt(x, 0), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil, err
	}
	return decimal.NewFromInt(n), nil
}

func toBigInt(v any, dst reflect.Type) (any, error) {
	switch x := v.(type) {
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(x), 10)
		if !ok {
			return nil, fmt.Errorf("convert: invalid integer value %q", x)
		}
		return n, nil
	case decimal.Decimal:
		if !x.IsInteger() {
			return nil, fmt.Errorf("convert: decimal value %s is not an integer", x)
		}
		return x.BigInt(), nil
	case uint, uint64:
		u, err := cast.ToUint64E(x)
		if err != nil {
			return nil, err
		}
		return new(big.Int).SetUint64(u), nil
	case float32, float64:
		f, err := cast.ToFloat64E(x)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("convert: float value %g is not an integer", f)
		}
		n, _ := big.NewFloat(f).Int(nil)
		return n, nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil, err
	}
	return big.NewInt(n), nil
}

func toBytes(v any, _ reflect.Type) (any, error) {
	if str, ok := v.(string); ok {
		return []byte(str), nil
	}
	return nil, fmt.Errorf("convert: cannot convert %T to []byte", v)
}

func unmarshalText(str string, dst reflect.Type) (any, error) {
	p := reflect.New(dst)
	if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(str)); err != nil {
		return nil, err
	}
	return p.Elem().Interface(), nil
}

// fromGoMap copies a Go map into a multi-map. Go maps carry no order, so keys
// are sorted to keep the result deterministic.
func fromGoMap(src map[string]any) *multimap.Map {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	m := multimap.New()
	for _, k := range keys {
		v := src[k]
		if nested, ok := v.(map[string]any); ok && nested != nil {
			v = fromGoMap(nested)
		}
		m.Append(k, v)
	}
	return m
}
