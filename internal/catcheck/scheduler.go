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
	"slices"

	"github.com/rs/zerolog/log"
)

// processor - loads and checks tables on behalf of the scheduler.
type processor interface {
	// load - fetches the table. Failures are reported by the processor and never stop the run.
	load(ctx context.Context, t *Table)
	// check - validates every row of the loaded table.
	check(ctx context.Context, t *Table)
}

// prepareSchedule - sets the load and check flags of every table and returns the number of tables
// that are going to be checked. Flags that are already set are kept.
func (r *Run) prepareSchedule() int {
	var pending int
	for _, t := range r.tables {
		if len(t.neededBy) > 0 {
			t.NeedsLoad = true
		}
		for _, c := range t.Columns {
			if c.Needed {
				t.NeedsLoad = true
			}
			if c.Checked() {
				t.NeedsLoad = true
				t.NeedsCheck = true
			}
		}
		if t.NeedsCheck {
			pending++
		}
	}
	return pending
}

// schedule - loads and checks tables until nothing is left to check. Every table is loaded at most
// once. Tables whose dependencies are satisfied are checked first, otherwise the table with the
// fewest outstanding dependencies is chosen, ties are broken in favour of the table needed by the
// most other tables.
func (r *Run) schedule(ctx context.Context, p processor) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var remaining int
		for _, t := range r.tables {
			if t.NeedsCheck && !t.NeedsLoad && len(t.needs) == 0 {
				r.checkTable(ctx, p, t)
			}
			if t.NeedsCheck {
				remaining++
			}
		}
		if remaining == 0 {
			return nil
		}

		var best *Table
		for _, t := range r.tables {
			if !t.NeedsCheck {
				continue
			}
			if best == nil || len(t.needs) < len(best.needs) ||
				(len(t.needs) == len(best.needs) && len(t.neededBy) > len(best.neededBy)) {
				best = t
			}
		}

		for len(best.needs) > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			ref := r.tables[best.needs[len(best.needs)-1]]
			if !ref.NeedsLoad {
				// Already loaded, the edge is stale
				r.removeDependency(best, ref)
				continue
			}
			log.Debug().
				Str("TableName", ref.Name).
				Str("RequiredBy", best.Name).
				Msgf("preloading table %s because it is required in order to check %s", ref.Name, best.Name)
			r.loadTable(ctx, p, ref)
		}

		if best.NeedsLoad {
			log.Debug().
				Str("TableName", best.Name).
				Msgf("loading table %s", best.Name)
			r.loadTable(ctx, p, best)
		}
		r.checkTable(ctx, p, best)
	}
}

func (r *Run) loadTable(ctx context.Context, p processor, t *Table) {
	p.load(ctx, t)
	t.NeedsLoad = false
	for _, id := range t.neededBy {
		dep := r.tables[id]
		dep.needs = slices.DeleteFunc(dep.needs, func(n int) bool {
			return n == t.ID
		})
	}
	t.neededBy = nil
}

func (r *Run) checkTable(ctx context.Context, p processor, t *Table) {
	t.NeedsCheck = false
	p.check(ctx, t)
}

func (r *Run) removeDependency(needs, neededBy *Table) {
	needs.needs = slices.DeleteFunc(needs.needs, func(n int) bool {
		return n == neededBy.ID
	})
	neededBy.neededBy = slices.DeleteFunc(neededBy.neededBy, func(n int) bool {
		return n == needs.ID
	})
}
