// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package svcconf provides a process wide store for service keyed
// configuration delivered through a single environment variable.
//
// The DYNAMO_SERVICE_CONFIG environment variable holds a JSON object
// mapping service names to their configuration objects:
//
//	{
//	  "Common": {"log_level": "info"},
//	  "Worker": {"common-configs": ["log_level"], "threads": 4}
//	}
//
// The reserved "Common" entry is a shared pool of defaults. A service
// opts into individual common keys by listing them under its
// "common-configs" key; a key the service sets itself is never
// overridden by a subscribed value. The "ServiceArgs" key carries
// deployment metadata and is excluded from every resolved view.
//
// # Usage
//
// The process wide store is loaded lazily, exactly once:
//
//	cfg := svcconf.Instance().ParsedConfig("Worker")
//
// or decoded straight into a struct:
//
//	var worker struct {
//	    LogLevel string `config:"log_level"`
//	    Threads  int    `config:"threads"`
//	}
//	err := svcconf.Instance().Unmarshal("Worker", &worker)
//
// A service's configuration can also be projected into command line
// arguments for launching a sub-process:
//
//	argv := svcconf.Instance().Args("Worker", "")
//	// ["--log_level", "info", "--threads", "4"]
//
// Tests and embedders can construct stores directly with [Parse] or
// [FromEnv] instead of going through the singleton.
package svcconf
