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

package report

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/greenmaskio/pgcatcheck/internal/utils/ioutils"
)

func testInconsistency() Event {
	return Event{
		Severity: SeverityInconsistency,
		Table:    "pg_class",
		Column:   "relnamespace",
		Value:    "99999",
		Row:      3,
		Message:  "no matching entry in pg_namespace",
		Identity: []Field{
			{Name: "oid", Value: "16384"},
			{Name: "relname", Value: "victim"},
		},
	}
}

func TestEvent_Headline(t *testing.T) {
	e := testInconsistency()
	assert.Equal(t, `pg_class row has invalid relnamespace "99999": no matching entry in pg_namespace`, e.Headline())
	assert.Equal(t, `oid="16384" relname="victim"`, e.IdentityString())

	rowLevel := NewEvent(SeverityInconsistency, "pg_class row duplicates existing key")
	assert.Equal(t, "pg_class row duplicates existing key", rowLevel.Headline())
	assert.Equal(t, NoRow, rowLevel.Row)
}

func TestSeverity_Text(t *testing.T) {
	for _, s := range []Severity{SeverityInconsistency, SeverityWarning, SeverityError} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var decoded Severity
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, s, decoded)
	}
	var s Severity
	require.Error(t, s.UnmarshalText([]byte("fatal")))
}

func TestTextSink(t *testing.T) {
	buf := new(bytes.Buffer)
	sink := NewTextSink(buf)
	sink.Record(testInconsistency())
	sink.Record(NewEvent(SeverityWarning, "can't identify class IDs: no pg_class data"))
	sink.Record(NewEvent(SeverityInconsistency, "pg_type row duplicates existing key"))

	expected := `notice: pg_class row has invalid relnamespace "99999": no matching entry in pg_namespace
row identity: oid="16384" relname="victim"
notice: pg_type row duplicates existing key
`
	assert.Equal(t, expected, buf.String())
}

func TestJSONSink(t *testing.T) {
	buf := new(bytes.Buffer)
	sink := NewJSONSink(buf)
	sink.Record(testInconsistency())
	sink.Record(NewEvent(SeverityError, "could not load table pg_proc: permission denied"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "inconsistency", first["severity"])
	assert.Equal(t, "relnamespace", first["column"])

	var second Event
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, SeverityError, second.Severity)
	assert.Equal(t, NoRow, second.Row)
}

func TestNewSink(t *testing.T) {
	s, err := NewSink("text", io.Discard)
	require.NoError(t, err)
	assert.IsType(t, &TextSink{}, s)
	s, err = NewSink("json", io.Discard)
	require.NoError(t, err)
	assert.IsType(t, &JSONSink{}, s)
	_, err = NewSink("xml", io.Discard)
	require.ErrorContains(t, err, "unknown report format")
}

func TestReporter_Summary(t *testing.T) {
	c := NewCollector()
	r := NewReporter(MultiSink{c, Discard})
	r.Report(testInconsistency())
	r.Report(testInconsistency())
	r.Warnf("pg_depend", "can't identify class IDs: columns missing from %s", "pg_depend")
	r.Errorf("", "could not determine database OID: %s", "timeout")

	s := r.Summary()
	assert.Equal(t, 2, s.Inconsistencies)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, ExitCodeFailure, s.ExitCode())
	assert.Equal(t, "done (2 inconsistencies, 1 warnings, 1 errors)", s.String())
	require.Len(t, s.Tables, 2)
	assert.Equal(t, "pg_class", s.Tables[0].Table)
	assert.Equal(t, 2, s.Tables[0].Inconsistencies)
	assert.Equal(t, 1, s.Tables[1].Warnings)

	require.Len(t, c.GetEvents(), 4)
	assert.Len(t, c.Filter(SeverityInconsistency), 2)
	assert.True(t, c.HasEvents())
}

func TestSummary_ExitCode(t *testing.T) {
	s := NewSummary()
	assert.Equal(t, ExitCodeOK, s.ExitCode())
	s.Add(testInconsistency())
	assert.Equal(t, ExitCodeInconsistencies, s.ExitCode())
	s.Add(NewEvent(SeverityWarning, "column pg_class.relrewrite is not supported by this server version"))
	assert.Equal(t, ExitCodeFailure, s.ExitCode())
}

func TestSummary_RenderTable(t *testing.T) {
	s := NewSummary()
	s.Add(NewEvent(SeverityWarning, "w"))
	e := testInconsistency()
	s.Add(e)
	e.Table = "pg_attribute"
	s.Add(e)
	s.Add(e)

	buf := new(bytes.Buffer)
	s.RenderTable(buf)
	out := buf.String()
	assert.Contains(t, out, "INCONSISTENCIES")
	assert.Less(t, strings.Index(out, "pg_attribute"), strings.Index(out, "pg_class"))
	assert.Contains(t, out, "TOTAL")
}

type objectPutterMock struct {
	name string
	data []byte
}

func (m *objectPutterMock) PutObject(ctx context.Context, filePath string, body io.Reader) error {
	m.name = filePath
	data, err := io.ReadAll(body)
	m.data = data
	return err
}

func testDocument(t *testing.T) *Document {
	d := NewDocument(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	d.FinishedAt = d.StartedAt.Add(time.Second)
	d.Database = "postgres"
	d.ServerVersion = 170000
	d.Flavor = "postgresql"
	c := NewCollector()
	r := NewReporter(c)
	r.Report(testInconsistency())
	d.Summary = r.Summary()
	d.Events = c.GetEvents()
	return d
}

func TestArchive_Json(t *testing.T) {
	d := testDocument(t)
	st := &objectPutterMock{}
	info, err := Archive(context.Background(), st, d, "json", false)
	require.NoError(t, err)
	assert.Equal(t, d.RunID.String()+".json", info.Name)
	assert.Equal(t, info.Name, st.name)
	assert.Equal(t, int64(len(st.data)), info.Size)
	assert.Equal(t, info.Size, info.StoredSize)

	var decoded Document
	require.NoError(t, json.Unmarshal(st.data, &decoded))
	assert.Equal(t, d.RunID, decoded.RunID)
	assert.Equal(t, 1, decoded.Summary.Inconsistencies)
	require.Len(t, decoded.Events, 1)
	assert.Equal(t, "99999", decoded.Events[0].Value)
}

func TestArchive_YamlCompressed(t *testing.T) {
	d := testDocument(t)
	st := &objectPutterMock{}
	info, err := Archive(context.Background(), st, d, "yaml", true)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(info.Name, ".yaml.gz"))
	assert.Equal(t, int64(len(st.data)), info.StoredSize)

	r, err := ioutils.NewGzipReader(io.NopCloser(bytes.NewReader(st.data)), true)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, d.RunID.String(), decoded["run_id"])
	assert.Equal(t, "postgresql", decoded["flavor"])
	assert.Equal(t, int64(len(data)), info.Size)
}

func TestArchive_UnknownFormat(t *testing.T) {
	_, err := Archive(context.Background(), &objectPutterMock{}, testDocument(t), "xml", false)
	require.ErrorContains(t, err, "unknown archive format")
}

type objectGetterMock struct {
	objects map[string][]byte
}

func (m *objectGetterMock) GetObject(ctx context.Context, filePath string) (io.ReadCloser, error) {
	data, ok := m.objects[filePath]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestLoadArchive(t *testing.T) {
	for _, tc := range []struct {
		format   string
		compress bool
	}{
		{format: "json"},
		{format: "yaml"},
		{format: "json", compress: true},
		{format: "yaml", compress: true},
	} {
		d := testDocument(t)
		st := &objectPutterMock{}
		info, err := Archive(context.Background(), st, d, tc.format, tc.compress)
		require.NoError(t, err)
		assert.True(t, IsArchiveName(info.Name))

		getter := &objectGetterMock{objects: map[string][]byte{info.Name: st.data}}
		loaded, err := LoadArchive(context.Background(), getter, info.Name)
		require.NoError(t, err, info.Name)
		assert.Equal(t, d.RunID, loaded.RunID)
		assert.Equal(t, "postgres", loaded.Database)
		assert.Equal(t, 1, loaded.Summary.Inconsistencies)
		require.Len(t, loaded.Events, 1)
		assert.Equal(t, SeverityInconsistency, loaded.Events[0].Severity)
	}
}

func TestLoadArchive_UnknownName(t *testing.T) {
	assert.False(t, IsArchiveName("notes.txt"))
	_, err := LoadArchive(context.Background(), &objectGetterMock{}, "notes.txt")
	require.ErrorContains(t, err, "unknown archive format")
}
