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

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/greenmaskio/pgcatcheck/internal/resultset"
	"github.com/greenmaskio/pgcatcheck/internal/utils/pgerrors"
)

// Fetcher - runs catalog queries with the simple protocol so every value arrives in its text form.
// SQL NULL is returned as the empty string.
type Fetcher struct {
	conn *PGConn
}

func NewFetcher(conn *PGConn) *Fetcher {
	return &Fetcher{conn: conn}
}

func (f *Fetcher) Fetch(ctx context.Context, query string) (*resultset.ResultSet, error) {
	var res *resultset.ResultSet
	err := f.conn.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, pgx.QueryExecModeSimpleProtocol)
		if err != nil {
			return err
		}
		defer rows.Close()

		fds := rows.FieldDescriptions()
		columns := make([]string, len(fds))
		for i, fd := range fds {
			columns[i] = fd.Name
		}
		res = resultset.New(columns)
		for rows.Next() {
			raw := rows.RawValues()
			row := make([]string, len(raw))
			for i, v := range raw {
				row[i] = string(v)
			}
			res.Append(row...)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, pgerrors.Wrap(err)
	}
	return res, nil
}
