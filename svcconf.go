// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package svcconf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
)

const (
	// EnvVar is the environment variable the process wide store is
	// loaded from. Its value must be a JSON object mapping service
	// names to service configuration objects.
	EnvVar = "DYNAMO_SERVICE_CONFIG"

	// CommonService is the reserved service name holding shared
	// default values other services may subscribe to.
	CommonService = "Common"

	// CommonConfigsKey is the reserved service config key listing the
	// common keys a service subscribes to. It never appears in
	// resolved configuration or projected arguments.
	CommonConfigsKey = "common-configs"

	// ServiceArgsKey is the reserved service config key holding
	// deployment metadata. It never appears in resolved configuration
	// or projected arguments.
	ServiceArgsKey = "ServiceArgs"
)

// Store is an immutable collection of per service configuration
// objects. Construct one with [Parse] or [FromEnv], or use the process
// wide [Instance].
type Store struct {
	services map[string]*Object

	log *slog.Logger
}

// Option configures a [Store] at construction time.
type Option func(*Store)

// LogHandler configures the slog.Handler the store logs through.
func LogHandler(h slog.Handler) Option {
	return func(s *Store) {
		s.log = slog.New(h)
	}
}

func newStore(services map[string]*Object, opts ...Option) *Store {
	if services == nil {
		services = make(map[string]*Object)
	}
	s := &Store{
		services: services,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InvalidConfigError occurs if a configuration blob is not valid JSON
// or is not a JSON object of service configuration objects.
type InvalidConfigError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid service configuration: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidConfigError) Unwrap() error {
	return e.Cause
}

// Parse constructs a Store from a JSON encoded configuration blob. The
// top level value must be an object and every service entry must itself
// be an object.
func Parse(b []byte, opts ...Option) (*Store, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, InvalidConfigError{Cause: err}
	}
	top, ok := v.(*Object)
	if !ok {
		return nil, InvalidConfigError{Cause: errors.New("top level value must be an object")}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, InvalidConfigError{Cause: errors.New("trailing data after configuration object")}
	}

	services := make(map[string]*Object, top.Len())
	for _, name := range top.keys {
		svc, ok := top.vals[name].(*Object)
		if !ok {
			return nil, InvalidConfigError{Cause: fmt.Errorf("service %q config must be an object", name)}
		}
		services[name] = svc
	}
	return newStore(services, opts...), nil
}

// FromEnv constructs a Store from the [EnvVar] environment variable.
// An unset variable yields an empty store. A malformed value also
// yields an empty store, with a diagnostic logged, so callers are never
// failed by a bad environment.
func FromEnv(opts ...Option) *Store {
	raw, ok := os.LookupEnv(EnvVar)
	if !ok || raw == "" {
		return newStore(nil, opts...)
	}

	s, err := Parse([]byte(raw), opts...)
	if err != nil {
		s = newStore(nil, opts...)
		s.log.Error(
			"failed to parse service configuration, continuing with none",
			slog.String("env_var", EnvVar),
			slog.String("error", err.Error()),
		)
	}
	return s
}

var instance = sync.OnceValue(func() *Store {
	return FromEnv()
})

// Instance returns the process wide Store, loading it from the
// environment on first call. The store is constructed at most once and
// is immutable afterwards, so Instance is safe for concurrent use.
func Instance() *Store {
	return instance()
}

// MissingConfigurationError occurs when [Store.Require] is called for a
// service or key which is absent from the store.
type MissingConfigurationError struct {
	Service string
	Key     string
}

// Error implements the [builtin.error] interface.
func (e MissingConfigurationError) Error() string {
	return fmt.Sprintf("%s.%s must be specified in configuration", e.Service, e.Key)
}

// Require returns the raw value stored under service and key. Unlike
// the projection methods it treats absence as an error, for callers
// which consider the setting mandatory.
func (s *Store) Require(service, key string) (Value, error) {
	svc, ok := s.services[service]
	if !ok {
		return nil, MissingConfigurationError{Service: service, Key: key}
	}
	v, ok := svc.Get(key)
	if !ok {
		return nil, MissingConfigurationError{Service: service, Key: key}
	}
	return v, nil
}

// Service returns a copy of the raw, unresolved configuration object
// for the named service, including reserved keys. The copy is shallow;
// nested values are shared with the store and must not be mutated.
func (s *Store) Service(name string) (*Object, bool) {
	svc, ok := s.services[name]
	if !ok {
		return nil, false
	}
	return svc.clone(), true
}

// Services returns the configured service names in sorted order.
func (s *Store) Services() []string {
	names := make([]string, 0, len(s.services))
	for name := range s.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
