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

package check

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/catcheck"
	"github.com/greenmaskio/pgcatcheck/internal/db/postgres"
	"github.com/greenmaskio/pgcatcheck/internal/domains"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/storages/builder"
	"github.com/greenmaskio/pgcatcheck/internal/utils/logger"
	"github.com/greenmaskio/pgcatcheck/internal/utils/progress"
)

const unknownDatabaseDir = "unknown"

var (
	Cmd = &cobra.Command{
		Use:   "check [flags] [DBNAME]",
		Short: "audit the system catalogs of the database",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.EffectiveLevel(), Config.Log.Format); err != nil {
				log.Err(err).Msg("")
				os.Exit(report.ExitCodeFailure)
			}
			if len(args) > 0 {
				Config.Connection.DbName = args[0]
			}
			if enterprisedb {
				Config.Check.Flavor = "enterprisedb"
			} else if postgresql {
				Config.Check.Flavor = "postgresql"
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			code := Run(ctx, Config, os.Stdout, os.Stderr)
			cancel()
			os.Exit(code)
		},
	}
	Config       = domains.NewConfig()
	enterprisedb bool
	postgresql   bool
)

// Run - performs the audit described by the config and returns the process exit code. Inconsistencies
// are written to stdout, the progress bar to stderr.
func Run(ctx context.Context, cfg *domains.Config, stdout, stderr io.Writer) int {
	startedAt := time.Now()

	sink, err := report.NewSink(cfg.Report.Format, stdout)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return report.ExitCodeFailure
	}
	collector := report.NewCollector()
	sinks := report.MultiSink{sink}
	if cfg.Report.Archive {
		sinks = append(sinks, collector)
	}
	reporter := report.NewReporter(sinks)

	if err := validate(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return report.ExitCodeFailure
	}

	conn, err := postgres.Connect(ctx, &cfg.Connection)
	if err != nil {
		log.Error().Err(err).Msg("could not connect to server")
		return report.ExitCodeFailure
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("error closing connection")
		}
	}()

	fetcher := postgres.NewFetcher(conn)
	facts, err := postgres.DiscoverFacts(ctx, fetcher, postgres.FactsOptions{
		TargetVersion: cfg.Check.TargetVersion,
		Flavor:        cfg.Check.Flavor,
	}, reporter)
	if err != nil {
		log.Error().Err(err).Msg("")
		return report.ExitCodeFailure
	}

	opts := catcheck.Options{
		Selection:           cfg.Check.Selection,
		SelectFromRelations: cfg.Check.SelectFromRelations,
	}
	if cfg.Check.SelectFromRelations {
		opts.Prober = postgres.NewProber(conn)
	}
	if cfg.Check.Progress {
		opts.Progress = progress.New(stderr)
	}

	auditor, err := catcheck.NewAuditor(facts.Target(), facts.DatabaseOID, fetcher, reporter, opts)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return report.ExitCodeFailure
	}
	if err := auditor.Audit(ctx); err != nil {
		log.Error().Err(err).Msg("audit interrupted")
		return report.ExitCodeFailure
	}

	summary := reporter.Summary()
	log.Info().
		Int("Inconsistencies", summary.Inconsistencies).
		Int("Warnings", summary.Warnings).
		Int("Errors", summary.Errors).
		Msg(summary.String())

	if cfg.Report.SummaryTable {
		w := stdout
		if cfg.Report.Format == report.FormatJson {
			w = stderr
		}
		summary.RenderTable(w)
	}

	code := summary.ExitCode()
	if cfg.Report.Archive {
		d := report.NewDocument(startedAt)
		d.FinishedAt = time.Now()
		d.Database = facts.Database
		d.ServerVersion = facts.Version
		d.Flavor = facts.Flavor.String()
		d.Summary = summary
		d.Events = collector.GetEvents()
		if err := archive(ctx, cfg, d); err != nil {
			log.Error().Err(err).Msg("unable to archive report")
			code = report.ExitCodeFailure
		}
	}
	return code
}

// validate - rejects the options that do not depend on the server before connecting.
func validate(cfg *domains.Config) error {
	if err := cfg.Check.Selection.Validate(); err != nil {
		return err
	}
	if _, _, err := catalog.ParseFlavor(cfg.Check.Flavor); err != nil {
		return err
	}
	if cfg.Check.TargetVersion != "" {
		if _, err := catalog.ParseTargetVersion(cfg.Check.TargetVersion); err != nil {
			return err
		}
	}
	return nil
}

func archive(ctx context.Context, cfg *domains.Config, d *report.Document) error {
	st, err := builder.GetStorage(ctx, &cfg.Storage, cfg.Log.EffectiveLevel())
	if err != nil {
		return err
	}
	dir := d.Database
	if dir == "" {
		dir = unknownDatabaseDir
	}
	info, err := report.Archive(ctx, st.SubStorage(dir, true), d, cfg.Report.ArchiveFormat, cfg.Report.Compress)
	if err != nil {
		return err
	}
	log.Info().
		Str("RunId", d.RunID.String()).
		Str("ObjectName", info.Name).
		Str("Directory", dir).
		Int64("Size", info.Size).
		Int64("StoredSize", info.StoredSize).
		Msg("report archived")
	return nil
}

func bindFlag(flagName, key string) {
	if err := viper.BindPFlag(key, Cmd.Flags().Lookup(flagName)); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

func init() {
	Cmd.Flags().StringP("host", "h", "", "database server host or socket directory")
	bindFlag("host", "connection.host")
	Cmd.Flags().IntP("port", "p", 0, "database server port number")
	bindFlag("port", "connection.port")
	Cmd.Flags().StringP("username", "U", "", "connect as specified database user")
	bindFlag("username", "connection.username")
	Cmd.Flags().String("dbname", "", "database to connect to, URI and keyword/value connection strings are accepted")
	bindFlag("dbname", "connection.dbname")
	Cmd.Flags().String("connect-timeout", "", "connection timeout, for instance 10s or 1m")
	bindFlag("connect-timeout", "connection.connect_timeout")
	Cmd.Flags().String("application-name", "pgcatcheck", "application_name reported to the server")
	bindFlag("application-name", "connection.application_name")
	Cmd.Flags().Bool("snapshot", false, "read every catalog table in a single REPEATABLE READ transaction")
	bindFlag("snapshot", "connection.snapshot")

	Cmd.Flags().StringSliceP("table", "t", nil, "check only the specified tables")
	bindFlag("table", "check.tables")
	Cmd.Flags().StringSliceP("exclude-table", "T", nil, "do not check the specified tables")
	bindFlag("exclude-table", "check.exclude_tables")
	Cmd.Flags().StringSliceP("column", "c", nil, "check only the specified columns, column or table.column")
	bindFlag("column", "check.columns")
	Cmd.Flags().StringSliceP("exclude-column", "C", nil, "do not check the specified columns, column or table.column")
	bindFlag("exclude-column", "check.exclude_columns")
	Cmd.Flags().String("target-version", "", "assume the server version, MAJOR.MINOR or server_version_num")
	bindFlag("target-version", "check.target_version")
	Cmd.Flags().String("flavor", "auto", "server flavor [auto|postgresql|enterprisedb]")
	bindFlag("flavor", "check.flavor")
	Cmd.Flags().BoolVar(&enterprisedb, "enterprisedb", false, "assume EnterpriseDB server, same as --flavor enterprisedb")
	Cmd.Flags().BoolVar(&postgresql, "postgresql", false, "assume PostgreSQL server, same as --flavor postgresql")
	Cmd.MarkFlagsMutuallyExclusive("enterprisedb", "postgresql")
	Cmd.Flags().Bool("select-from-relations", false, "try to read from every table, TOAST table and materialized view")
	bindFlag("select-from-relations", "check.select_from_relations")
	Cmd.Flags().Bool("progress", false, "show progress bar on stderr")
	bindFlag("progress", "check.progress")

	Cmd.Flags().StringP("format", "f", report.FormatText, "report format [text|json]")
	bindFlag("format", "report.format")
	Cmd.Flags().Bool("summary-table", false, "print per table summary")
	bindFlag("summary-table", "report.summary_table")
	Cmd.Flags().Bool("archive", false, "store the full report in the storage")
	bindFlag("archive", "report.archive")
	Cmd.Flags().String("archive-format", report.ArchiveFormatJson, "archived report format [json|yaml]")
	bindFlag("archive-format", "report.archive_format")
	Cmd.Flags().Bool("compress", false, "compress the archived report with gzip")
	bindFlag("compress", "report.compress")
}
