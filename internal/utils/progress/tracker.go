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
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// Tracker - progress bar of the checked tables.
type Tracker struct {
	bar       *progressbar.ProgressBar
	w         io.Writer
	total     int
	current   atomic.Int64
	startTime time.Time
}

// New - creates the tracker rendering to w. Usually w is stderr so the report on stdout stays
// machine-readable.
func New(w io.Writer) *Tracker {
	return &Tracker{
		w: w,
	}
}

func (t *Tracker) Start(total int) {
	t.total = total
	t.startTime = time.Now()
	t.bar = progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(t.w),
		progressbar.OptionSetDescription("Checking"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("tables"),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (t *Tracker) Increment() {
	t.current.Add(1)
	if t.bar != nil {
		if err := t.bar.Add(1); err != nil {
			log.Debug().Err(err).Msg("unable to render progress")
		}
	}
}

// Current - number of checked tables.
func (t *Tracker) Current() int64 {
	return t.current.Load()
}

func (t *Tracker) Finish() {
	if t.bar != nil {
		if err := t.bar.Finish(); err != nil {
			log.Debug().Err(err).Msg("unable to render progress")
		}
	}
	log.Debug().
		Int64("Checked", t.current.Load()).
		Int("Total", t.total).
		Dur("Elapsed", time.Since(t.startTime)).
		Msg("tables checked")
}
