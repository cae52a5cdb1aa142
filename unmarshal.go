// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package svcconf

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// UnmarshalError occurs when a service's effective configuration cannot
// be decoded into the caller's type.
type UnmarshalError struct {
	Service string
	Cause   error
}

// Error implements the [builtin.error] interface.
func (e UnmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal configuration for service %q: %s", e.Service, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e UnmarshalError) Unwrap() error {
	return e.Cause
}

// Unmarshal decodes the effective configuration of a service, as
// returned by [Store.ParsedConfig], into v. Struct fields are matched
// via the "config" tag. String values decode into types implementing
// [encoding.TextUnmarshaler], and both strings ("5s") and integers
// (nanoseconds) decode into [time.Duration].
func (s *Store) Unmarshal(service string, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		Result:           v,
		WeaklyTypedInput: true,
		DecodeHook: composeDecodeHooks(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}

	err = dec.Decode(s.ParsedConfig(service).Map())
	if err != nil {
		return UnmarshalError{Service: service, Cause: err}
	}
	return nil
}

var errInvalidDecodeCondition = errors.New("invalid decode condition")

func composeDecodeHooks(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if errors.Is(err, errInvalidDecodeCondition) {
				continue
			}
			return nil, err
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		s, ok := data.(string)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errInvalidDecodeCondition
		}
		err := u.UnmarshalText([]byte(s))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errInvalidDecodeCondition
		}

		switch x := data.(type) {
		case string:
			return time.ParseDuration(x)
		case int64:
			return time.Duration(x), nil
		default:
			return nil, errInvalidDecodeCondition
		}
	}
}
