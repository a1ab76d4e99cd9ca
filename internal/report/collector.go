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
	"slices"
	"sync"
)

// Collector - in-memory sink. It keeps every recorded event in the recording order.
type Collector struct {
	events []Event
	mu     sync.Mutex
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Record(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// GetEvents - returns a copy of the collected events.
func (c *Collector) GetEvents() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.events)
}

// Filter - returns events of the provided severity.
func (c *Collector) Filter(severity Severity) []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var res []Event
	for _, e := range c.events {
		if e.Severity == severity {
			res = append(res, e)
		}
	}
	return res
}

func (c *Collector) HasEvents() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events) > 0
}
