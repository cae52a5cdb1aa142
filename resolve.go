// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package svcconf

// ParsedConfig returns the effective configuration for a service: its
// own settings plus any subscribed common values it does not override,
// with the reserved keys removed. An unknown service yields an empty
// object. The result is a pure projection of the store; calling it any
// number of times returns equal objects.
func (s *Store) ParsedConfig(service string) *Object {
	base, ok := s.ownBase(service)
	if !ok {
		return NewObject()
	}

	if common, ok := s.services[CommonService]; ok {
		for _, key := range subscribedKeys(base) {
			if _, ok := base.Get(key); ok {
				// own values always win over subscribed ones
				continue
			}
			if v, ok := common.Get(key); ok {
				base.Set(key, v)
			}
		}
	}

	base.Delete(CommonConfigsKey)
	return base
}

// ownBase returns a copy of the service's own configuration with the
// ServiceArgs metadata removed. Argument projection starts from this
// same base rather than from the merged result of ParsedConfig.
func (s *Store) ownBase(service string) (*Object, bool) {
	svc, ok := s.services[service]
	if !ok {
		return nil, false
	}
	base := svc.clone()
	base.Delete(ServiceArgsKey)
	return base, true
}

// subscribedKeys returns the common keys cfg subscribes to via its
// common-configs list, in list order. A missing or malformed list
// yields no keys.
func subscribedKeys(cfg *Object) []string {
	v, ok := cfg.Get(CommonConfigsKey)
	if !ok {
		return nil
	}
	list, ok := v.([]Value)
	if !ok {
		return nil
	}

	keys := make([]string, 0, len(list))
	for _, item := range list {
		if key, ok := item.(string); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
