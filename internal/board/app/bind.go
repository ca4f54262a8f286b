package app

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report payload keys, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

// bind decodes payload into P without coercion and validates it.
// keys lists the payload keys P requires; a nil value counts as missing.
func bind[P any](payload map[string]any, keys []string) (P, error) {
	var p P
	for _, k := range keys {
		if v, ok := payload[k]; !ok || v == nil {
			return p, newValidationError(k, ReasonMissingKey, nil)
		}
	}
	// Decode key by key first so a type error names the key it came from.
	for _, k := range keys {
		var probe P
		if err := decodeStrict(map[string]any{k: payload[k]}, &probe); err != nil {
			return p, newValidationError(k, ReasonInvalidType, err)
		}
	}
	if err := decodeStrict(payload, &p); err != nil {
		return p, newValidationError("", ReasonInvalidType, err)
	}
	if err := validateParams(p); err != nil {
		return p, err
	}
	return p, nil
}

func validateParams(p any) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return newValidationError(verrs[0].Field(), ReasonInvalidValue, err)
	}
	return newValidationError("", ReasonInvalidValue, err)
}

func decodeStrict(input map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: false,
		DecodeHook:       rejectLossyInt,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

// maxExactFloatInt is the largest magnitude below which every whole float64 is exact.
const maxExactFloatInt = 1 << 53

// rejectLossyInt stops mapstructure from truncating 3.5 into 3 or wrapping values that do
// not fit the target int. Whole floats within ±2^53 pass.
func rejectLossyInt(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}
	bits := to.Bits()
	maxInt := int64(math.MaxInt64)
	minInt := int64(math.MinInt64)
	if bits < 64 {
		maxInt = int64(1)<<(bits-1) - 1
		minInt = -int64(1) << (bits - 1)
	}
	switch from.Kind() {
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("expected integer, got %v", data)
		}
		if math.Abs(f) > maxExactFloatInt || f > float64(maxInt) || f < float64(minInt) {
			return nil, fmt.Errorf("integer %v out of range", data)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u := reflect.ValueOf(data).Uint(); u > uint64(maxInt) {
			return nil, fmt.Errorf("integer %v out of range", data)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i := reflect.ValueOf(data).Int(); i > maxInt || i < minInt {
			return nil, fmt.Errorf("integer %v out of range", data)
		}
	}
	return data, nil
}
