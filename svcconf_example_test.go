// Copyright (c) 2026 Dynamo Run and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package svcconf_test

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dynamo-run/svcconf"
)

const exampleBlob = `{
	"Common": {"log_level": "info"},
	"Worker": {"common-configs": ["log_level"], "threads": 4}
}`

func ExampleParse() {
	store, err := svcconf.Parse([]byte(exampleBlob))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(store.Services())
	// Output: [Common Worker]
}

func ExampleStore_ParsedConfig() {
	store, err := svcconf.Parse([]byte(exampleBlob))
	if err != nil {
		fmt.Println(err)
		return
	}

	b, err := json.Marshal(store.ParsedConfig("Worker"))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(string(b))
	// Output: {"threads":4,"log_level":"info"}
}

func ExampleStore_Args() {
	store, err := svcconf.Parse([]byte(exampleBlob))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(strings.Join(store.Args("Worker", ""), " "))
	// Output: --log_level info --threads 4
}

func ExampleStore_Unmarshal() {
	store, err := svcconf.Parse([]byte(exampleBlob))
	if err != nil {
		fmt.Println(err)
		return
	}

	var worker struct {
		LogLevel string `config:"log_level"`
		Threads  int    `config:"threads"`
	}
	err = store.Unmarshal("Worker", &worker)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%s %d\n", worker.LogLevel, worker.Threads)
	// Output: info 4
}
