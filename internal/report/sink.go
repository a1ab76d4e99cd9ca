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
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	FormatText = "text"
	FormatJson = "json"
)

// Sink - destination of the diagnostic events.
type Sink interface {
	Record(e Event)
}

// NewSink - creates the sink for the output format.
func NewSink(format string, w io.Writer) (Sink, error) {
	switch format {
	case FormatText, "":
		return NewTextSink(w), nil
	case FormatJson:
		return NewJSONSink(w), nil
	}
	return nil, fmt.Errorf("unknown report format \"%s\"", format)
}

// TextSink - prints inconsistencies in the human-readable form. Warnings and errors are not printed
// since they go to the log.
type TextSink struct {
	w  io.Writer
	mx sync.Mutex
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (ts *TextSink) Record(e Event) {
	if e.Severity != SeverityInconsistency {
		return
	}
	ts.mx.Lock()
	defer ts.mx.Unlock()
	if _, err := fmt.Fprintf(ts.w, "notice: %s\n", e.Headline()); err != nil {
		log.Warn().Err(err).Msg("error writing report")
		return
	}
	if len(e.Identity) > 0 {
		if _, err := fmt.Fprintf(ts.w, "row identity: %s\n", e.IdentityString()); err != nil {
			log.Warn().Err(err).Msg("error writing report")
		}
	}
}

// JSONSink - prints every event as a JSON object per line.
type JSONSink struct {
	enc *json.Encoder
	mx  sync.Mutex
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

func (js *JSONSink) Record(e Event) {
	js.mx.Lock()
	defer js.mx.Unlock()
	if err := js.enc.Encode(e); err != nil {
		log.Warn().Err(err).Msg("error writing report")
	}
}

// MultiSink - duplicates events to every sink.
type MultiSink []Sink

func (ms MultiSink) Record(e Event) {
	for _, s := range ms {
		s.Record(e)
	}
}

// Discard - sink that drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Record(Event) {}
