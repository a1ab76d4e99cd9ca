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
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Reporter - counts every event and forwards it to the sink. Warnings and errors are logged as well.
type Reporter struct {
	sink    Sink
	summary *Summary
	mx      sync.Mutex
}

func NewReporter(sink Sink) *Reporter {
	if sink == nil {
		sink = Discard
	}
	return &Reporter{
		sink:    sink,
		summary: NewSummary(),
	}
}

func (r *Reporter) Report(e Event) {
	r.mx.Lock()
	r.summary.Add(e)
	r.mx.Unlock()

	var logEvent *zerolog.Event
	switch e.Severity {
	case SeverityWarning:
		logEvent = log.Warn()
	case SeverityError:
		logEvent = log.Error()
	}
	if logEvent != nil {
		if e.Table != "" {
			logEvent = logEvent.Str("TableName", e.Table)
		}
		if e.Column != "" {
			logEvent = logEvent.Str("ColumnName", e.Column)
		}
		logEvent.Msg(e.Headline())
	}
	r.sink.Record(e)
}

// Warnf - reports the warning related to the table. table might be empty.
func (r *Reporter) Warnf(table, format string, args ...any) {
	e := NewEvent(SeverityWarning, fmt.Sprintf(format, args...))
	e.Table = table
	r.Report(e)
}

// Errorf - reports the error related to the table. table might be empty.
func (r *Reporter) Errorf(table, format string, args ...any) {
	e := NewEvent(SeverityError, fmt.Sprintf(format, args...))
	e.Table = table
	r.Report(e)
}

// Summary - returns a snapshot of the counters.
func (r *Reporter) Summary() *Summary {
	r.mx.Lock()
	defer r.mx.Unlock()
	res := *r.summary
	res.Tables = make([]*TableStat, 0, len(r.summary.Tables))
	for _, ts := range r.summary.Tables {
		tsCopy := *ts
		res.Tables = append(res.Tables, &tsCopy)
	}
	res.byTable = nil
	return &res
}
