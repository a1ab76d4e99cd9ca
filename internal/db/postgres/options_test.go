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

package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_GetPgDSN(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		expected string
	}{
		{
			name:     "empty",
			opts:     Options{},
			expected: "",
		},
		{
			name:     "parts",
			opts:     Options{Host: "localhost", Port: 5433, UserName: "postgres", DbName: "app"},
			expected: "host=localhost port=5433 user=postgres dbname=app",
		},
		{
			name:     "default port",
			opts:     Options{Host: "localhost", Port: 5432, DbName: "app"},
			expected: "host=localhost dbname=app",
		},
		{
			name:     "uri",
			opts:     Options{Host: "ignored", DbName: "postgresql://user@db:5432/app"},
			expected: "postgresql://user@db:5432/app",
		},
		{
			name:     "keyword value",
			opts:     Options{Host: "ignored", DbName: "host=db dbname=app"},
			expected: "host=db dbname=app",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := tt.opts.GetPgDSN()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}
