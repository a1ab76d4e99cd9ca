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
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

const (
	ExitCodeOK              = 0
	ExitCodeInconsistencies = 1
	ExitCodeFailure         = 2
)

// TableStat - number of events per table.
type TableStat struct {
	Table           string `json:"table" yaml:"table"`
	Inconsistencies int    `json:"inconsistencies" yaml:"inconsistencies"`
	Warnings        int    `json:"warnings" yaml:"warnings"`
	Errors          int    `json:"errors" yaml:"errors"`
}

// Summary - counters of the recorded events.
type Summary struct {
	Inconsistencies int `json:"inconsistencies" yaml:"inconsistencies"`
	Warnings        int `json:"warnings" yaml:"warnings"`
	Errors          int `json:"errors" yaml:"errors"`
	// Tables - per table statistic in the order of the first event.
	Tables  []*TableStat `json:"tables,omitempty" yaml:"tables,omitempty"`
	byTable map[string]*TableStat
}

func NewSummary() *Summary {
	return &Summary{
		byTable: make(map[string]*TableStat),
	}
}

// Add - counts the event.
func (s *Summary) Add(e Event) {
	var ts *TableStat
	if e.Table != "" {
		if s.byTable == nil {
			s.byTable = make(map[string]*TableStat)
		}
		ts = s.byTable[e.Table]
		if ts == nil {
			ts = &TableStat{Table: e.Table}
			s.byTable[e.Table] = ts
			s.Tables = append(s.Tables, ts)
		}
	}
	switch e.Severity {
	case SeverityInconsistency:
		s.Inconsistencies++
		if ts != nil {
			ts.Inconsistencies++
		}
	case SeverityWarning:
		s.Warnings++
		if ts != nil {
			ts.Warnings++
		}
	case SeverityError:
		s.Errors++
		if ts != nil {
			ts.Errors++
		}
	}
}

// ExitCode - 0 when nothing was found, 1 when only inconsistencies were found and 2 when any
// warning or error was recorded.
func (s *Summary) ExitCode() int {
	switch {
	case s.Warnings > 0 || s.Errors > 0:
		return ExitCodeFailure
	case s.Inconsistencies > 0:
		return ExitCodeInconsistencies
	}
	return ExitCodeOK
}

func (s *Summary) String() string {
	return fmt.Sprintf("done (%d inconsistencies, %d warnings, %d errors)", s.Inconsistencies, s.Warnings, s.Errors)
}

// RenderTable - prints per table statistic.
func (s *Summary) RenderTable(w io.Writer) {
	stats := slices.Clone(s.Tables)
	slices.SortFunc(stats, func(a, b *TableStat) int {
		if a.Inconsistencies != b.Inconsistencies {
			return b.Inconsistencies - a.Inconsistencies
		}
		return cmp.Compare(a.Table, b.Table)
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"table", "inconsistencies", "warnings", "errors"})
	for _, ts := range stats {
		table.Append([]string{
			ts.Table,
			strconv.Itoa(ts.Inconsistencies),
			strconv.Itoa(ts.Warnings),
			strconv.Itoa(ts.Errors),
		})
	}
	table.SetFooter([]string{
		"total",
		strconv.Itoa(s.Inconsistencies),
		strconv.Itoa(s.Warnings),
		strconv.Itoa(s.Errors),
	})
	table.Render()
}
