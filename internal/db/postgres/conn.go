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
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/pgcatcheck/internal/utils/pgerrors"
)

// Connect - connects to the database and checks the connection.
func Connect(ctx context.Context, opts *Options) (*PGConn, error) {
	dsn, err := opts.GetPgDSN()
	if err != nil {
		return nil, fmt.Errorf("cannot build connection string: %w", err)
	}
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot parse connection string: %w", err)
	}
	cfg.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	if opts.ConnectTimeout > 0 {
		cfg.ConnectTimeout = opts.ConnectTimeout
	}
	if opts.ApplicationName != "" {
		cfg.RuntimeParams["application_name"] = opts.ApplicationName
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, pgerrors.Wrap(err)
	}
	if err := conn.Ping(ctx); err != nil {
		if err := conn.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("error closing connection")
		}
		return nil, pgerrors.Wrap(err)
	}

	pgConn := NewPGConn(conn)
	if opts.Snapshot {
		if err := pgConn.BeginSnapshot(ctx); err != nil {
			if err := conn.Close(ctx); err != nil {
				log.Warn().Err(err).Msg("error closing connection")
			}
			return nil, err
		}
	}
	return pgConn, nil
}

// PGConn - wraps the connection and the optional snapshot transaction every query reads from.
type PGConn struct {
	con      *pgx.Conn
	snapshot pgx.Tx
}

func NewPGConn(con *pgx.Conn) *PGConn {
	return &PGConn{
		con: con,
	}
}

func (p *PGConn) GetConn() *pgx.Conn {
	return p.con
}

// BeginSnapshot - starts the read only transaction so every later query sees the same catalog state.
func (p *PGConn) BeginSnapshot(ctx context.Context) error {
	tx, err := p.con.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("cannot start snapshot transaction: %w", pgerrors.Wrap(err))
	}
	p.snapshot = tx
	return nil
}

// WithTx - runs fn in a transaction, or in a savepoint when the snapshot is open. The work is always
// rolled back: the audit never writes and a failed statement must not abort the snapshot.
func (p *PGConn) WithTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	var (
		tx  pgx.Tx
		err error
	)
	if p.snapshot != nil {
		tx, err = p.snapshot.Begin(ctx)
	} else {
		tx, err = p.con.Begin(ctx)
	}
	if err != nil {
		return fmt.Errorf("cannot start transaction: %w", pgerrors.Wrap(err))
	}
	fnErr := fn(ctx, tx)
	if txErr := tx.Rollback(ctx); txErr != nil && !errors.Is(txErr, pgx.ErrTxClosed) {
		log.Warn().
			Err(txErr).
			Msg("cannot rollback transaction")
	}
	return fnErr
}

// Close - finishes the snapshot and closes the connection.
func (p *PGConn) Close(ctx context.Context) error {
	if p.snapshot != nil {
		if err := p.snapshot.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Warn().Err(err).Msg("cannot rollback snapshot transaction")
		}
		p.snapshot = nil
	}
	return p.con.Close(ctx)
}
