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

package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	buf := new(bytes.Buffer)
	tr := New(buf)
	tr.Start(3)
	tr.Increment()
	tr.Increment()
	assert.Equal(t, int64(2), tr.Current())
	tr.Increment()
	tr.Finish()
	assert.Equal(t, int64(3), tr.Current())
	assert.NotEmpty(t, buf.String())
}

func TestTracker_NotStarted(t *testing.T) {
	tr := New(new(bytes.Buffer))
	tr.Increment()
	tr.Finish()
	assert.Equal(t, int64(1), tr.Current())
}
