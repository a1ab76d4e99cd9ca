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
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/resultset"
)

const (
	serverVersionQuery = "SELECT pg_catalog.current_setting('server_version_num')"
	flavorQuery        = "SELECT pg_catalog.strpos(pg_catalog.version(), 'EnterpriseDB')"
	databaseQuery      = "SELECT oid, datname FROM pg_catalog.pg_database WHERE datname = pg_catalog.current_database()"
)

// Querier - runs a query and returns the rows in text form.
type Querier interface {
	Fetch(ctx context.Context, query string) (*resultset.ResultSet, error)
}

// FactsOptions - user overrides of the detected facts.
type FactsOptions struct {
	// TargetVersion - MAJOR.MINOR or server_version_num. Empty means ask the server.
	TargetVersion string
	// Flavor - auto, postgresql or enterprisedb.
	Flavor string
}

// Facts - what the audit needs to know about the server.
type Facts struct {
	Version int
	Flavor  catalog.Flavor
	// DatabaseOID - empty when it could not be determined.
	DatabaseOID string
	Database    string
}

func (f *Facts) Target() catalog.Target {
	return catalog.Target{Version: f.Version, Flavor: f.Flavor}
}

// DiscoverFacts - determines the server version, the flavor and the current database OID. Errors
// are returned only when the version or the flavor cannot be established, a missing database OID is
// reported as an error event since the audit can go on without it.
func DiscoverFacts(ctx context.Context, q Querier, opts FactsOptions, reporter *report.Reporter) (*Facts, error) {
	facts := &Facts{}

	if opts.TargetVersion != "" {
		v, err := catalog.ParseTargetVersion(opts.TargetVersion)
		if err != nil {
			return nil, err
		}
		facts.Version = v
		log.Debug().Int("ServerVersion", v).Msgf("assuming server version %d", v)
	} else {
		v, err := queryInt(ctx, q, serverVersionQuery)
		if err != nil {
			return nil, fmt.Errorf("unable to determine server version: %w", err)
		}
		facts.Version = v
		log.Debug().Int("ServerVersion", v).Msgf("detected server version %d", v)
	}
	if facts.Version < catalog.MinimumSupportedVersion {
		reporter.Warnf(
			"", "server version (%d) is older than the minimum version supported by this tool (%d)",
			facts.Version, catalog.MinimumSupportedVersion,
		)
	}

	flavor, explicit, err := catalog.ParseFlavor(opts.Flavor)
	if err != nil {
		return nil, err
	}
	if explicit {
		facts.Flavor = flavor
		log.Debug().Msgf("assuming %s server", flavor)
	} else {
		pos, err := queryInt(ctx, q, flavorQuery)
		if err != nil {
			return nil, fmt.Errorf("unable to detect server flavor, set the flavor explicitly: %w", err)
		}
		if pos > 0 {
			facts.Flavor = catalog.FlavorEnterpriseDB
		}
		log.Debug().Msgf("detected %s server", facts.Flavor)
	}

	facts.DatabaseOID, facts.Database = databaseOID(ctx, q, reporter)
	return facts, nil
}

func databaseOID(ctx context.Context, q Querier, reporter *report.Reporter) (string, string) {
	rs, err := q.Fetch(ctx, databaseQuery)
	if err != nil {
		reporter.Errorf("", "could not determine database OID: %s", err)
		return "", ""
	}
	if rs.Len() != 1 {
		reporter.Errorf("", "query for database OID returned %d values", rs.Len())
		return "", ""
	}
	oid, name := rs.Value(0, 0), rs.Value(0, 1)
	log.Trace().Str("Database", name).Msgf("database OID is %s", oid)
	return oid, name
}

func queryInt(ctx context.Context, q Querier, query string) (int, error) {
	rs, err := q.Fetch(ctx, query)
	if err != nil {
		return 0, err
	}
	if rs.Len() != 1 || len(rs.Columns) != 1 {
		return 0, fmt.Errorf("query returned %d rows", rs.Len())
	}
	v, err := strconv.Atoi(rs.Value(0, 0))
	if err != nil {
		return 0, fmt.Errorf("unexpected value \"%s\": %w", rs.Value(0, 0), err)
	}
	return v, nil
}
