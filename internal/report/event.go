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
	"strings"
)

type Severity int

const (
	// SeverityInconsistency - an audit finding in the catalog data.
	SeverityInconsistency Severity = iota + 1
	// SeverityWarning - something prevented a part of the audit from being done properly.
	SeverityWarning
	// SeverityError - operational failure, for instance a table could not be loaded.
	SeverityError
)

const (
	SeverityInconsistencyName = "inconsistency"
	SeverityWarningName       = "warning"
	SeverityErrorName         = "error"
)

func (s Severity) String() string {
	switch s {
	case SeverityInconsistency:
		return SeverityInconsistencyName
	case SeverityWarning:
		return SeverityWarningName
	case SeverityError:
		return SeverityErrorName
	}
	return "unknown"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case SeverityInconsistencyName:
		*s = SeverityInconsistency
	case SeverityWarningName:
		*s = SeverityWarning
	case SeverityErrorName:
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity \"%s\"", string(text))
	}
	return nil
}

// NoRow - row number of the events that are not bound to a row.
const NoRow = -1

// Field - name="value" pair identifying the row.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Event - diagnostic produced by the audit.
type Event struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Table    string   `json:"table,omitempty" yaml:"table,omitempty"`
	// Column - checked column. Empty for row level findings (duplicate key, duplicate owner dependency).
	Column string `json:"column,omitempty" yaml:"column,omitempty"`
	// Value - the offending value of the Column.
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Row      int     `json:"row" yaml:"row"`
	Message  string  `json:"message" yaml:"message"`
	Identity []Field `json:"identity,omitempty" yaml:"identity,omitempty"`
}

// NewEvent - creates an event that is not bound to any row.
func NewEvent(severity Severity, msg string) Event {
	return Event{
		Severity: severity,
		Row:      NoRow,
		Message:  msg,
	}
}

// Headline - renders the first line of the event without the severity prefix.
func (e *Event) Headline() string {
	if e.Column != "" {
		return fmt.Sprintf("%s row has invalid %s \"%s\": %s", e.Table, e.Column, e.Value, e.Message)
	}
	return e.Message
}

// IdentityString - renders the row identity as name="value" pairs.
func (e *Event) IdentityString() string {
	parts := make([]string, 0, len(e.Identity))
	for _, f := range e.Identity {
		parts = append(parts, fmt.Sprintf("%s=\"%s\"", f.Name, f.Value))
	}
	return strings.Join(parts, " ")
}
