// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	gostr "github.com/xhit/go-str2duration/v2"
)

// StringToDurationHookFunc - parses durations with the day and week units ("1d2h", "1w") as well as
// everything time.ParseDuration accepts.
func StringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		raw := data.(string)
		if raw == "" {
			return time.Duration(0), nil
		}
		d, err := gostr.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot parse duration \"%s\": %w", raw, err)
		}
		return d, nil
	}
}

// StringToSliceWithBracketHookFunc - decodes the JSON list form ["a", "b"] that environment
// variables might carry. Other strings are left for the next hook.
func StringToSliceWithBracketHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Kind,
		t reflect.Kind,
		data interface{}) (interface{}, error) {
		if f != reflect.String || t != reflect.Slice {
			return data, nil
		}

		raw := data.(string)
		if raw == "" {
			return []string{}, nil
		}
		var slice []string
		if err := json.Unmarshal([]byte(raw), &slice); err != nil {
			return data, nil
		}
		return slice, nil
	}
}

// DecodeHook - hooks used to decode the viper settings into the config.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		StringToDurationHookFunc(),
		StringToSliceWithBracketHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
