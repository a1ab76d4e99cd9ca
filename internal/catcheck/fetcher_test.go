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

package catcheck

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/resultset"
)

var queryRegexp = regexp.MustCompile(`^SELECT (.+) FROM pg_catalog\.(\w+)$`)

// memFetcher - serves catalog tables from memory. Unknown tables are empty, tables listed in
// failing return an error.
type memFetcher struct {
	tables  map[string]*resultset.ResultSet
	failing map[string]error
	queries []string
}

func newMemFetcher() *memFetcher {
	return &memFetcher{
		tables:  make(map[string]*resultset.ResultSet),
		failing: make(map[string]error),
	}
}

func (f *memFetcher) add(table string, columns []string, rows ...[]string) *memFetcher {
	rs := resultset.New(columns)
	for _, row := range rows {
		rs.Append(row...)
	}
	f.tables[table] = rs
	return f
}

func (f *memFetcher) Fetch(_ context.Context, query string) (*resultset.ResultSet, error) {
	f.queries = append(f.queries, query)
	m := queryRegexp.FindStringSubmatch(query)
	if m == nil {
		return nil, errors.New("unexpected query")
	}
	table := m[2]
	if err, ok := f.failing[table]; ok {
		return nil, err
	}
	var columns []string
	for _, c := range strings.Split(m[1], ", ") {
		name, _, _ := strings.Cut(c, "::")
		columns = append(columns, name)
	}
	res := resultset.New(columns)
	src, ok := f.tables[table]
	if !ok {
		return res, nil
	}
	for _, srcRow := range src.Rows {
		row := make([]string, len(columns))
		for i, name := range columns {
			if pos := src.ColumnIndex(name); pos != -1 {
				row[i] = srcRow[pos]
			}
		}
		res.Append(row...)
	}
	return res, nil
}

func (f *memFetcher) fetched(table string) int {
	var n int
	for _, q := range f.queries {
		if strings.HasSuffix(q, "FROM pg_catalog."+table) {
			n++
		}
	}
	return n
}

var testTarget = catalog.Target{Version: 170000, Flavor: catalog.FlavorPostgreSQL}

// audit - runs the audit over the fetcher and returns the collected events.
func audit(t *testing.T, target catalog.Target, databaseOID string, f *memFetcher, opts Options) (*report.Collector, *report.Reporter) {
	t.Helper()
	c := report.NewCollector()
	r := report.NewReporter(c)
	a, err := NewAuditor(target, databaseOID, f, r, opts)
	require.NoError(t, err)
	require.NoError(t, a.Audit(context.Background()))
	return c, r
}

func inconsistencies(c *report.Collector) []report.Event {
	return c.Filter(report.SeverityInconsistency)
}

func messages(events []report.Event) []string {
	res := make([]string, 0, len(events))
	for _, e := range events {
		res = append(res, e.Headline())
	}
	return res
}

// pgClassColumns - columns of the pg_class fixture. relnatts of the catalog rows is zero so
// the fixture needs no pg_attribute rows for them.
var pgClassColumns = []string{"oid", "relname", "relnamespace", "relkind", "relnatts"}

func catalogClassRows() [][]string {
	return [][]string{
		{"1259", "pg_class", "11", "r", "0"},
		{"1247", "pg_type", "11", "r", "0"},
		{"1249", "pg_attribute", "11", "r", "0"},
		{"2615", "pg_namespace", "11", "r", "0"},
		{"1260", "pg_authid", "11", "r", "0"},
	}
}
