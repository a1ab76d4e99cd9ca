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
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/greenmaskio/pgcatcheck/internal/utils/pgerrors"
)

// Prober - reads zero rows from the relation, which still requires the relation files to be
// present and readable.
type Prober struct {
	conn *PGConn
}

func NewProber(conn *PGConn) *Prober {
	return &Prober{conn: conn}
}

func (p *Prober) Probe(ctx context.Context, schema, table string) error {
	query := fmt.Sprintf("SELECT 1 FROM %s LIMIT 0", pgx.Identifier{schema, table}.Sanitize())
	err := p.conn.WithTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query, pgx.QueryExecModeSimpleProtocol)
		return err
	})
	return pgerrors.Wrap(err)
}
