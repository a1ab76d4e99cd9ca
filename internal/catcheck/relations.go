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

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/pgcatcheck/internal/rowindex"
)

// probedRelKinds - relations with storage: plain tables, TOAST tables and materialized views.
var probedRelKinds = map[string]struct{}{
	"r": {},
	"t": {},
	"m": {},
}

func (a *Auditor) prepareRelationProbe() error {
	class, err := a.run.mustTable(pgClassTable)
	if err != nil {
		return err
	}
	namespace, err := a.run.mustTable(pgNamespaceTable)
	if err != nil {
		return err
	}
	class.NeedsLoad, class.NeedsCheck = true, true
	namespace.NeedsLoad, namespace.NeedsCheck = true, true
	if err := a.run.needColumn(namespace, "nspname"); err != nil {
		return err
	}
	for _, name := range []string{"relname", "relnamespace", "relkind"} {
		if err := a.run.needColumn(class, name); err != nil {
			return err
		}
	}
	return nil
}

// probeRelations - runs a zero row SELECT from every relation with storage. A failing SELECT
// means the relation files are missing or inaccessible.
func (a *Auditor) probeRelations(ctx context.Context) error {
	class := a.run.Table(pgClassTable)
	namespace := a.run.Table(pgNamespaceTable)
	if class.Data == nil || namespace.Data == nil || namespace.Index == nil {
		return nil
	}
	oidCol := class.Data.ColumnIndex("oid")
	relnameCol := class.Data.ColumnIndex("relname")
	relnamespaceCol := class.Data.ColumnIndex("relnamespace")
	relkindCol := class.Data.ColumnIndex("relkind")
	nspnameCol := namespace.Data.ColumnIndex("nspname")
	if oidCol == noColumn || relnameCol == noColumn || relnamespaceCol == noColumn ||
		relkindCol == noColumn || nspnameCol == noColumn {
		a.run.reporter.Warnf(pgClassTable, "can't select from relations: columns missing from pg_class or pg_namespace")
		return nil
	}

	for row := 0; row < class.Data.Len(); row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := probedRelKinds[class.Data.Value(row, relkindCol)]; !ok {
			continue
		}
		relname := class.Data.Value(row, relnameCol)
		nspRow := namespace.Index.Get(class.Data.Value(row, relnamespaceCol))
		// Dangling relnamespace is reported by the pg_class check
		if nspRow == rowindex.NoRow {
			log.Trace().
				Str("TableName", relname).
				Msgf("can't find schema name for select query for table with OID %s", class.Data.Value(row, oidCol))
			continue
		}
		nspname := namespace.Data.Value(nspRow, nspnameCol)
		log.Trace().Msgf("selecting from \"%s\".\"%s\"", nspname, relname)
		if err := a.opts.Prober.Probe(ctx, nspname, relname); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.run.reportRow(class, nil, row, "unable to query relation \"%s\".\"%s\": %s", nspname, relname, err)
		}
	}
	return nil
}
