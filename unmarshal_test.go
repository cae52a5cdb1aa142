// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package svcconf

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countUnmarshaler struct {
	N int
}

func (c *countUnmarshaler) UnmarshalText(b []byte) error {
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}
	c.N = n
	return nil
}

func TestStore_Unmarshal(t *testing.T) {
	t.Run("will decode the effective configuration", func(t *testing.T) {
		t.Run("if fields are tagged with config", func(t *testing.T) {
			s := parseTestStore(t, `{
				"Common": {"log_level": "info"},
				"Worker": {"common-configs": ["log_level"], "threads": 4, "ratio": 0.5}
			}`)

			var cfg struct {
				LogLevel string  `config:"log_level"`
				Threads  int     `config:"threads"`
				Ratio    float64 `config:"ratio"`
			}
			err := s.Unmarshal("Worker", &cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "info", cfg.LogLevel) {
				return
			}
			if !assert.Equal(t, 4, cfg.Threads) {
				return
			}
			if !assert.Equal(t, 0.5, cfg.Ratio) {
				return
			}
		})

		t.Run("if the service is unknown, leaving the target zero valued", func(t *testing.T) {
			s := parseTestStore(t, `{}`)

			var cfg struct {
				Threads int `config:"threads"`
			}
			err := s.Unmarshal("Worker", &cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Zero(t, cfg.Threads) {
				return
			}
		})
	})

	t.Run("will decode durations", func(t *testing.T) {
		t.Run("if the value is a string", func(t *testing.T) {
			s := parseTestStore(t, `{"Worker": {"timeout": "5s"}}`)

			var cfg struct {
				Timeout time.Duration `config:"timeout"`
			}
			err := s.Unmarshal("Worker", &cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, 5*time.Second, cfg.Timeout) {
				return
			}
		})

		t.Run("if the value is an integer of nanoseconds", func(t *testing.T) {
			s := parseTestStore(t, `{"Worker": {"timeout": 1000000000}}`)

			var cfg struct {
				Timeout time.Duration `config:"timeout"`
			}
			err := s.Unmarshal("Worker", &cfg)
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, time.Second, cfg.Timeout) {
				return
			}
		})
	})

	t.Run("will decode strings through TextUnmarshaler", func(t *testing.T) {
		s := parseTestStore(t, `{"Worker": {"count": "42"}}`)

		var cfg struct {
			Count countUnmarshaler `config:"count"`
		}
		err := s.Unmarshal("Worker", &cfg)
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Equal(t, 42, cfg.Count.N) {
			return
		}
	})

	t.Run("will return an error", func(t *testing.T) {
		t.Run("if a value cannot be coerced to the field type", func(t *testing.T) {
			s := parseTestStore(t, `{"Worker": {"threads": "lots"}}`)

			var cfg struct {
				Threads int `config:"threads"`
			}
			err := s.Unmarshal("Worker", &cfg)

			var uerr UnmarshalError
			if !assert.ErrorAs(t, err, &uerr) {
				return
			}
			if !assert.Equal(t, "Worker", uerr.Service) {
				return
			}
		})

		t.Run("if the duration string is malformed", func(t *testing.T) {
			s := parseTestStore(t, `{"Worker": {"timeout": "five seconds"}}`)

			var cfg struct {
				Timeout time.Duration `config:"timeout"`
			}
			err := s.Unmarshal("Worker", &cfg)
			if !assert.Error(t, err) {
				return
			}
		})
	})
}
