package quick

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/swforge/logsys"
)

// parseSpec builds a Spec from configuration strings. Each argument must
// be "key=value" where key matches a toml tag on logsys.Spec or its
// nested RotationConfig. Unset fields keep their defaults.
func parseSpec(args ...string) (logsys.Spec, error) {
	var spec logsys.Spec
	for _, arg := range args {
		key, value, err := parseKeyValue(arg)
		if err != nil {
			return logsys.Spec{}, fmt.Errorf("invalid config format: %s", arg)
		}

		if err := setValue(&spec, key, value); err != nil {
			return logsys.Spec{}, fmt.Errorf("config error: %s", err)
		}
	}
	return spec, nil
}

// parseKeyValue splits a configuration string into key and value parts.
// Input format must be "key=value". Leading and trailing spaces are
// removed from both parts.
func parseKeyValue(arg string) (string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(arg), "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid format")
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), nil
}

// setValue updates a Spec field using reflection. Field matching is
// case-insensitive against the toml tags; nested RotationConfig fields
// match by their own tags.
func setValue(spec *logsys.Spec, key, value string) error {
	key = strings.ToLower(key)

	if ok, err := setStructValue(reflect.ValueOf(spec).Elem(), key, value); ok || err != nil {
		return err
	}
	if ok, err := setStructValue(reflect.ValueOf(&spec.Rotation).Elem(), key, value); ok || err != nil {
		return err
	}
	return fmt.Errorf("unknown config key: %s", key)
}

func setStructValue(v reflect.Value, key, value string) (bool, error) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if tag := field.Tag.Get("toml"); tag != key {
			continue
		}
		f := v.Field(i)
		switch f.Kind() {
		case reflect.String:
			f.SetString(value)
		case reflect.Int:
			val, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return false, fmt.Errorf("invalid int value for %s: %s", key, value)
			}
			f.SetInt(val)
		case reflect.Bool:
			val, err := strconv.ParseBool(value)
			if err != nil {
				return false, fmt.Errorf("invalid bool value for %s: %s", key, value)
			}
			f.SetBool(val)
		default:
			return false, fmt.Errorf("unsupported config type for %s", key)
		}
		return true, nil
	}
	return false, nil
}
