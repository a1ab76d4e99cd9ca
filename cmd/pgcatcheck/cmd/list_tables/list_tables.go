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

package list_tables

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
	"github.com/greenmaskio/pgcatcheck/internal/catcheck"
	"github.com/greenmaskio/pgcatcheck/internal/domains"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/utils/logger"
	stringsUtils "github.com/greenmaskio/pgcatcheck/internal/utils/strings"
)

const (
	JsonFormatName = "json"
	YamlFormatName = "yaml"
	TextFormatName = "text"
)

const needsMaxLength = 40

var (
	Cmd = &cobra.Command{
		Use:   "list-tables",
		Short: "list catalog tables and columns checked for the server version",
		Run: func(cmd *cobra.Command, args []string) {
			if err := logger.SetLogLevel(Config.Log.EffectiveLevel(), Config.Log.Format); err != nil {
				log.Err(err).Msg("")
			}

			if err := run(os.Stdout); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	}
	Config = domains.NewConfig()

	format        string
	targetVersion string
	flavor        string
	selection     catcheck.Selection
)

type ColumnInfo struct {
	Name      string         `json:"name" yaml:"name"`
	Available bool           `json:"available" yaml:"available"`
	Checked   bool           `json:"checked" yaml:"checked"`
	Fetched   bool           `json:"fetched" yaml:"fetched"`
	Key       bool           `json:"key,omitempty" yaml:"key,omitempty"`
	Display   bool           `json:"display,omitempty" yaml:"display,omitempty"`
	Check     *catalog.Check `json:"check,omitempty" yaml:"check,omitempty"`
}

type TableInfo struct {
	Name      string        `json:"name" yaml:"name"`
	Available bool          `json:"available" yaml:"available"`
	Needs     []string      `json:"needs,omitempty" yaml:"needs,omitempty"`
	Columns   []*ColumnInfo `json:"columns" yaml:"columns"`
}

// Resolve - resolves the registry for the target without connecting to the server.
func Resolve(target catalog.Target, sel catcheck.Selection) ([]*TableInfo, error) {
	r := catcheck.NewRun(target, "", report.NewReporter(report.Discard))
	if err := r.Resolve(sel); err != nil {
		return nil, err
	}
	tables := r.Tables()
	res := make([]*TableInfo, 0, len(tables))
	for _, t := range tables {
		ti := &TableInfo{
			Name:      t.Name,
			Available: t.Available,
		}
		for _, id := range t.Needs() {
			ti.Needs = append(ti.Needs, tables[id].Name)
		}
		for _, c := range t.Columns {
			ti.Columns = append(ti.Columns, &ColumnInfo{
				Name:      c.Name,
				Available: c.Available,
				Checked:   c.Checked(),
				Fetched:   c.Needed,
				Key:       c.Key,
				Display:   c.Display,
				Check:     c.Check,
			})
		}
		res = append(res, ti)
	}
	return res, nil
}

func run(w io.Writer) error {
	version, err := catalog.ParseTargetVersion(targetVersion)
	if err != nil {
		return err
	}
	fl, _, err := catalog.ParseFlavor(flavor)
	if err != nil {
		return err
	}
	tables, err := Resolve(catalog.Target{Version: version, Flavor: fl}, selection)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch format {
	case JsonFormatName:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tables)
	case YamlFormatName:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(tables); err != nil {
			return err
		}
		return enc.Close()
	case TextFormatName:
		renderText(w, tables)
		return nil
	}
	return fmt.Errorf(`unknown format %s`, format)
}

func renderText(w io.Writer, tables []*TableInfo) {
	var data [][]string
	for _, t := range tables {
		needs := stringsUtils.WrapList(t.Needs, needsMaxLength)
		for _, c := range t.Columns {
			var check string
			if c.Check != nil {
				check = c.Check.Kind.String()
				if c.Check.References != "" {
					check += " -> " + c.Check.References
				}
			}
			data = append(data, []string{
				t.Name,
				needs,
				c.Name,
				strconv.FormatBool(c.Available),
				strconv.FormatBool(c.Checked),
				strconv.FormatBool(c.Fetched),
				strconv.FormatBool(c.Key),
				check,
			})
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"table", "needs", "column", "available", "checked", "fetched", "key", "check"})
	table.AppendBulk(data)
	table.SetAutoWrapText(false)
	table.SetRowLine(true)
	table.SetAutoMergeCellsByColumnIndex([]int{0, 1})
	table.Render()
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", TextFormatName, "output format [text|json|yaml]")
	Cmd.Flags().StringVar(&targetVersion, "target-version", "17.0", "server version, MAJOR.MINOR or server_version_num")
	Cmd.Flags().StringVar(&flavor, "flavor", catalog.FlavorPostgreSQLName, "server flavor [postgresql|enterprisedb]")
	Cmd.Flags().StringSliceVarP(&selection.Tables, "table", "t", nil, "check only the specified tables")
	Cmd.Flags().StringSliceVarP(&selection.ExcludeTables, "exclude-table", "T", nil, "do not check the specified tables")
	Cmd.Flags().StringSliceVarP(&selection.Columns, "column", "c", nil, "check only the specified columns")
	Cmd.Flags().StringSliceVarP(&selection.ExcludeColumns, "exclude-column", "C", nil, "do not check the specified columns")
}
