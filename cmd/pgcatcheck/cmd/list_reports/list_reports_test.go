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

package list_reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/storages"
	"github.com/greenmaskio/pgcatcheck/internal/storages/directory"
	"github.com/greenmaskio/pgcatcheck/internal/utils/testutils"
)

func archiveDocument(t *testing.T, st storages.Storager, database string, startedAt time.Time, compress bool) *report.Document {
	d := report.NewDocument(startedAt)
	d.FinishedAt = startedAt.Add(2 * time.Second)
	d.Database = database
	d.ServerVersion = 160002
	d.Flavor = "postgresql"
	r := report.NewReporter(report.Discard)
	r.Report(report.NewEvent(report.SeverityInconsistency, "pg_class row duplicates existing key"))
	d.Summary = r.Summary()
	_, err := report.Archive(context.Background(), st.SubStorage(database, true), d, "json", compress)
	require.NoError(t, err)
	return d
}

func TestListReports(t *testing.T) {
	ctx := context.Background()
	st, err := directory.NewStorage(&directory.Config{Path: t.TempDir()})
	require.NoError(t, err)

	older := archiveDocument(t, st, "postgres", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false)
	newer := archiveDocument(t, st, "app", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), true)
	require.NoError(t, st.PutObject(ctx, "notes.txt", bytes.NewBufferString("not a report")))

	buf := new(bytes.Buffer)
	require.NoError(t, listReports(ctx, st, buf))
	out := buf.String()
	assert.Contains(t, out, "16.2")
	assert.NotContains(t, out, "notes.txt")
	newerPos := strings.Index(out, newer.RunID.String())
	olderPos := strings.Index(out, older.RunID.String())
	require.NotEqual(t, -1, newerPos)
	require.NotEqual(t, -1, olderPos)
	assert.Less(t, newerPos, olderPos)
}

func TestListReports_BrokenObject(t *testing.T) {
	ctx := context.Background()
	st := &testutils.StorageMock{}
	st.On("ListDir", mock.Anything).Return([]string{"broken.json", "missing.json"}, []storages.Storager{}, nil)
	st.On("GetObject", mock.Anything, "broken.json").
		Return(io.NopCloser(bytes.NewBufferString("{")), nil)
	st.On("GetObject", mock.Anything, "missing.json").
		Return(nil, storages.ErrFileNotFound)

	buf := new(bytes.Buffer)
	require.NoError(t, listReports(ctx, st, buf))
	assert.NotContains(t, buf.String(), "broken")
	st.AssertExpectations(t)
}

func TestListReports_ListError(t *testing.T) {
	st := &testutils.StorageMock{}
	st.On("ListDir", mock.Anything).Return([]string(nil), []storages.Storager(nil), errors.New("access denied"))
	err := listReports(context.Background(), st, io.Discard)
	require.ErrorContains(t, err, "access denied")
}
