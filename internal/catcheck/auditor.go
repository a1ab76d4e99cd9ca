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
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/resultset"
	"github.com/greenmaskio/pgcatcheck/internal/rowindex"
)

// Fetcher - runs the per table SELECT and returns the rows in text form.
type Fetcher interface {
	Fetch(ctx context.Context, query string) (*resultset.ResultSet, error)
}

// Prober - tries to read from the relation without fetching any row.
type Prober interface {
	Probe(ctx context.Context, schema, table string) error
}

// Progress - receives the number of tables to check and a notification per checked table.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

type Options struct {
	Selection Selection
	// SelectFromRelations - probe every table, TOAST table and materialized view with a zero row SELECT.
	SelectFromRelations bool
	// Prober - required when SelectFromRelations is set.
	Prober   Prober
	Progress Progress
}

// Auditor - drives the audit of a single database.
type Auditor struct {
	run     *Run
	fetcher Fetcher
	opts    Options
}

// NewAuditor - resolves the selection for the target and declares all table dependencies. Returned
// errors are configuration errors and nothing is fetched in that case.
func NewAuditor(
	target catalog.Target, databaseOID string, fetcher Fetcher, reporter *report.Reporter, opts Options,
) (*Auditor, error) {
	if opts.SelectFromRelations && opts.Prober == nil {
		return nil, fmt.Errorf("relation probe requires a prober")
	}
	r := NewRun(target, databaseOID, reporter)
	if err := r.Resolve(opts.Selection); err != nil {
		return nil, err
	}
	a := &Auditor{
		run:     r,
		fetcher: fetcher,
		opts:    opts,
	}
	if opts.SelectFromRelations {
		if err := a.prepareRelationProbe(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Run - exposes the resolved run state.
func (a *Auditor) Run() *Run {
	return a.run
}

// Audit - loads and checks every selected table. Inconsistencies and operational problems are
// reported to the reporter, the returned error is not nil only when the context is done.
func (a *Auditor) Audit(ctx context.Context) error {
	pending := a.run.prepareSchedule()
	log.Debug().Int("TablesCount", pending).Msg("tables to check")
	if a.opts.Progress != nil {
		a.opts.Progress.Start(pending)
		defer a.opts.Progress.Finish()
	}
	if err := a.run.schedule(ctx, a); err != nil {
		return err
	}
	if a.opts.SelectFromRelations {
		return a.probeRelations(ctx)
	}
	return nil
}

func (a *Auditor) load(ctx context.Context, t *Table) {
	query, ok := buildQuery(t)
	if !ok {
		log.Debug().Str("TableName", t.Name).Msg("table has no columns to fetch")
		return
	}
	log.Trace().Str("TableName", t.Name).Str("Query", query).Msg("executing query")
	rs, err := a.fetcher.Fetch(ctx, query)
	if err != nil {
		a.run.reporter.Errorf(t.Name, "could not load table %s: %s", t.Name, err)
		return
	}
	t.Data = rs
	a.buildIndex(t)
}

// buildIndex - indexes the loaded rows by the available key columns and reports duplicate keys.
func (a *Auditor) buildIndex(t *Table) {
	var keyCols []int
	for _, c := range t.Columns {
		if c.Available && c.Key && c.resultIndex != noColumn {
			keyCols = append(keyCols, c.resultIndex)
		}
	}
	if len(keyCols) == 0 {
		return
	}
	idx, err := rowindex.Build(t.Data, keyCols, func(row, existing int) {
		a.run.reportRow(t, nil, row, "%s row duplicates existing key", t.Name)
	})
	if err != nil {
		a.run.reporter.Errorf(t.Name, "could not index table %s: %s", t.Name, err)
		return
	}
	t.Index = idx
}

func (a *Auditor) check(ctx context.Context, t *Table) {
	if a.opts.Progress != nil {
		defer a.opts.Progress.Increment()
	}
	// Load failures are already reported
	if t.Data == nil {
		return
	}
	log.Debug().
		Str("TableName", t.Name).
		Int("RowsCount", t.Data.Len()).
		Msgf("checking table %s (%d rows)", t.Name, t.Data.Len())

	type columnCheck struct {
		c *Column
		v validator
	}
	var checks []columnCheck
	for _, c := range t.Columns {
		if !c.Checked() || c.Check == nil || c.resultIndex == noColumn {
			continue
		}
		v, err := validatorFor(c.Check.Kind)
		if err != nil {
			log.Warn().Err(err).Str("TableName", t.Name).Str("ColumnName", c.Name).Msg("skipping column")
			continue
		}
		checks = append(checks, columnCheck{c: c, v: v})
	}
	for row := 0; row < t.Data.Len(); row++ {
		for _, cc := range checks {
			cc.v.check(a.run, t, cc.c, row)
		}
	}
}
