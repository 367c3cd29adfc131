package config

import (
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// PageOptions is the typed view of a page's merged option map.
type PageOptions struct {
	WindowScroll        bool   `mapstructure:"windowScroll"`
	BackgroundColor     string `mapstructure:"backgroundColor"`
	ReachBottom         bool   `mapstructure:"reachBottom"`
	ReachBottomDistance any    `mapstructure:"reachBottomDistance"`
	PullDownRefresh     bool   `mapstructure:"pullDownRefresh"`
}

// Distance returns the reach-bottom distance when it is a number.
func (p PageOptions) Distance() (float64, bool) {
	switch v := p.ReachBottomDistance.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	default:
		return 0, false
	}
}

// DecodePageOptions decodes a merged option map. Missing keys leave options
// disabled; unknown keys are ignored. Booleans follow script truthiness, so
// "yes", 1 and a non-empty map all enable an option.
func DecodePageOptions(raw map[string]any) (PageOptions, error) {
	var out PageOptions

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(truthyHook),
		Result:     &out,
	})
	if err != nil {
		return out, err
	}

	if err := dec.Decode(raw); err != nil {
		return out, fmt.Errorf("decoding page options: %w", err)
	}

	return out, nil
}

func truthyHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.Bool:
		return Truthy(data), nil
	case reflect.String:
		if data == nil {
			return "", nil
		}

		if _, ok := data.(string); !ok {
			return fmt.Sprint(data), nil
		}
	}

	return data, nil
}

// Truthy reports whether v would be truthy in script: false, nil, 0, NaN and
// the empty string are falsy; everything else is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0 && !math.IsNaN(x)
	default:
		return true
	}
}
