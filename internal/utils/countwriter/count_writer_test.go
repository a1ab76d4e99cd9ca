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

package countwriter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopWriteCloser struct {
	bytes.Buffer
	closed bool
}

func (n *nopWriteCloser) Close() error {
	n.closed = true
	return nil
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 1, errors.New("disk full")
}

func (failingWriter) Close() error {
	return nil
}

func TestWriter(t *testing.T) {
	dst := &nopWriteCloser{}
	w := NewWriter(dst)
	_, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, int64(11), w.GetCount())
	assert.True(t, dst.closed)
	assert.Equal(t, "hello world", dst.String())
}

func TestWriter_PartialWrite(t *testing.T) {
	w := NewWriter(failingWriter{})
	_, err := w.Write([]byte("abc"))
	require.Error(t, err)
	assert.Equal(t, int64(1), w.GetCount())
}
