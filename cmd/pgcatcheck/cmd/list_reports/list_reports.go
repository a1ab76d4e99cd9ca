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

package list_reports

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/domains"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/storages"
	"github.com/greenmaskio/pgcatcheck/internal/storages/builder"
	"github.com/greenmaskio/pgcatcheck/internal/utils/logger"
)

var (
	Cmd = &cobra.Command{
		Use:   "list-reports [DBNAME]",
		Short: "list archived audit reports in the storage",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.EffectiveLevel(), Config.Log.Format); err != nil {
				log.Err(err).Msg("")
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			st, err := builder.GetStorage(ctx, &Config.Storage, Config.Log.EffectiveLevel())
			if err != nil {
				log.Fatal().Err(err).Msg("")
			}
			if len(args) > 0 {
				st = st.SubStorage(args[0], true)
			}
			if err := listReports(ctx, st, os.Stdout); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config = domains.NewConfig()
)

func listReports(ctx context.Context, st storages.Storager, w io.Writer) error {
	names, err := storages.Walk(ctx, st, "")
	if err != nil {
		return fmt.Errorf("error walking through storage: %w", err)
	}

	var docs []*report.Document
	var dirs []string
	for _, name := range names {
		if !report.IsArchiveName(name) {
			continue
		}
		d, err := report.LoadArchive(ctx, st, name)
		if err != nil {
			log.Warn().
				Err(err).
				Str("ObjectName", name).
				Msg("unable to render list report item")
			continue
		}
		docs = append(docs, d)
		dirs = append(dirs, path.Dir(name))
	}

	idx := make([]int, len(docs))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		return docs[b].StartedAt.Compare(docs[a].StartedAt)
	})

	var data [][]string
	for _, i := range idx {
		d := docs[i]
		database := d.Database
		if database == "" {
			database = dirs[i]
		}
		var inconsistencies, warnings, errs string
		if d.Summary != nil {
			inconsistencies = strconv.Itoa(d.Summary.Inconsistencies)
			warnings = strconv.Itoa(d.Summary.Warnings)
			errs = strconv.Itoa(d.Summary.Errors)
		}
		diff := d.FinishedAt.Sub(d.StartedAt)
		data = append(data, []string{
			d.RunID.String(),
			d.StartedAt.Format(time.RFC3339),
			database,
			catalog.FormatVersion(d.ServerVersion),
			d.Flavor,
			time.Time{}.Add(diff).Format("15:04:05"),
			inconsistencies,
			warnings,
			errs,
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"id", "date", "database", "version", "flavor", "duration", "inconsistencies", "warnings", "errors"})
	table.AppendBulk(data)
	table.Render()
	return nil
}
