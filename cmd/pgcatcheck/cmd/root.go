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

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/pgcatcheck/cmd/pgcatcheck/cmd/check"
	"github.com/greenmaskio/pgcatcheck/cmd/pgcatcheck/cmd/list_reports"
	"github.com/greenmaskio/pgcatcheck/cmd/pgcatcheck/cmd/list_tables"
	"github.com/greenmaskio/pgcatcheck/internal/domains"
	configUtils "github.com/greenmaskio/pgcatcheck/internal/utils/config"
)

const (
	appName               = "pgcatcheck"
	defaultConfigFileName = "config.yml"
)

var (
	Version    string
	Commit     string
	CommitDate string

	RootCmd = &cobra.Command{
		Use:   appName,
		Short: "pgcatcheck finds corruption in the PostgreSQL system catalogs",
		Long: "Reads the system catalogs of a PostgreSQL (or EnterpriseDB) database and reports rows " +
			"referencing objects that do not exist, malformed OID lists, duplicate keys and other " +
			"logical inconsistencies. The catalogs are never modified. Exit status is 0 when nothing " +
			"was found, 1 when inconsistencies were found and 2 on warnings or errors",
	}
	cfgFile string
	Config  = domains.NewConfig()
)

func Execute() error {
	return RootCmd.Execute()
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				Commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				CommitDate = setting.Value
			}
		}
	}
	if Version != "" {
		RootCmd.Version = fmt.Sprintf("%s %s %s", Version, Commit, CommitDate)
	} else {
		RootCmd.Version = fmt.Sprintf("%s %s", Commit, CommitDate)
	}

	cobra.OnInitialize(initConfig)
	// Removing short help flag from default so -h can be used for the host
	RootCmd.PersistentFlags().BoolP("help", "", false, "help for pgcatcheck")
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file ")
	RootCmd.PersistentFlags().StringP("log-format", "", "text", "logging format [text|json]")
	RootCmd.PersistentFlags().StringP("log-level", "", zerolog.LevelInfoValue,
		fmt.Sprintf(
			"logging level %s|%s|%s|%s|%s",
			zerolog.LevelTraceValue,
			zerolog.LevelDebugValue,
			zerolog.LevelInfoValue,
			zerolog.LevelWarnValue,
			zerolog.LevelErrorValue,
		),
	)
	RootCmd.PersistentFlags().BoolP("quiet", "q", false, "report only warnings and errors")
	RootCmd.PersistentFlags().CountP("verbose", "v", "more logging, repeat for even more")

	RootCmd.AddCommand(check.Cmd)
	RootCmd.AddCommand(list_tables.Cmd)
	RootCmd.AddCommand(list_reports.Cmd)

	for flagName, key := range map[string]string{
		"log-format": "log.format",
		"log-level":  "log.level",
		"quiet":      "log.quiet",
		"verbose":    "log.verbose",
	} {
		if err := viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(flagName)); err != nil {
			log.Fatal().Err(err).Msg("")
		}
	}

	RootCmd.InitDefaultCompletionCmd()
	RootCmd.InitDefaultHelpCmd()
	RootCmd.InitDefaultVersionFlag()

	for _, c := range RootCmd.Commands() {
		if c.Name() == "completion" || c.Name() == "help" {
			c.DisableFlagParsing = true
			for _, subc := range c.Commands() {
				subc.DisableFlagParsing = true
			}
		}
	}
}

// defaultConfigFile - returns the path of the config in the user config directory if it exists.
func defaultConfigFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(configDir, appName, defaultConfigFileName)
	if _, err := os.Stat(p); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("ConfigFile", p).Msg("unable to access default config file")
		}
		return ""
	}
	return p
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = defaultConfigFile()
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Msg("error reading from config file")
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.Unmarshal(Config, viper.DecodeHook(configUtils.DecodeHook())); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}
