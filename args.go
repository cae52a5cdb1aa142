// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package svcconf

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Args projects a service's configuration into a flat list of command
// line tokens, alternating "--key" and value, suitable for appending to
// a sub-process argument vector. Subscribed common values the service
// does not override come first, in common-configs list order, followed
// by the service's own settings in document order. An unknown service
// yields no tokens.
//
// A non-empty prefix keeps only keys starting with it and strips it
// from the emitted flag names.
func (s *Store) Args(service, prefix string) []string {
	base, ok := s.ownBase(service)
	if !ok {
		return nil
	}

	var args []string
	add := func(key string, value Value) {
		if prefix != "" && !strings.HasPrefix(key, prefix) {
			return
		}
		// the subscription directive is never a flag, even when it
		// arrives through the common section under a prefixed name
		if strings.HasSuffix(key, CommonConfigsKey) {
			return
		}
		args = append(args, "--"+strings.TrimPrefix(key, prefix), formatValue(value))
	}

	if common, ok := s.services[CommonService]; ok {
		for _, key := range subscribedKeys(base) {
			if _, ok := base.Get(key); ok {
				continue
			}
			if v, ok := common.Get(key); ok {
				add(key, v)
			}
		}
	}

	for _, key := range base.Keys() {
		v, _ := base.Get(key)
		add(key, v)
	}

	s.log.Info("projected service arguments",
		slog.String("service", service),
		slog.Any("args", args),
	)
	return args
}

// formatValue renders a configuration value as a single argument token.
// Objects re-encode as compact JSON; every other shape uses its plain
// string form, so lists are deliberately not JSON encoded.
func formatValue(v Value) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case *Object:
		b, err := x.MarshalJSON()
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
