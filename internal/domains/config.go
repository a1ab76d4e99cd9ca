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

package domains

import (
	"sync"

	"github.com/greenmaskio/pgcatcheck/internal/catcheck"
	"github.com/greenmaskio/pgcatcheck/internal/db/postgres"
	"github.com/greenmaskio/pgcatcheck/internal/report"
	"github.com/greenmaskio/pgcatcheck/internal/storages/directory"
	"github.com/greenmaskio/pgcatcheck/internal/storages/s3"
	"github.com/greenmaskio/pgcatcheck/internal/utils/logger"
)

var (
	Cfg  *Config
	once sync.Once
)

const (
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
	defaultStorageType = "directory"
)

func NewConfig() *Config {
	once.Do(
		func() {
			Cfg = &Config{
				Log: LogConfig{
					Level:  defaultLogLevel,
					Format: defaultLogFormat,
				},
				Report: Report{
					Format:        report.FormatText,
					ArchiveFormat: report.ArchiveFormatJson,
				},
				Storage: StorageConfig{
					Type:      defaultStorageType,
					S3:        s3.NewConfig(),
					Directory: directory.NewConfig(),
				},
			}
		},
	)
	return Cfg
}

type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log" json:"log"`
	Connection postgres.Options `mapstructure:"connection" yaml:"connection" json:"connection"`
	Check      Check            `mapstructure:"check" yaml:"check" json:"check"`
	Report     Report           `mapstructure:"report" yaml:"report" json:"report"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage" json:"storage"`
}

type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	Level  string `mapstructure:"level" yaml:"level" json:"level,omitempty"`
	// Quiet - report only warnings and errors. Overrides Level.
	Quiet bool `mapstructure:"quiet" yaml:"quiet" json:"quiet,omitempty"`
	// Verbose - 1 for debug, 2 and more for trace. Overrides Level.
	Verbose int `mapstructure:"verbose" yaml:"verbose" json:"verbose,omitempty"`
}

// EffectiveLevel - log level with quiet and verbose flags applied.
func (lc *LogConfig) EffectiveLevel() string {
	return logger.LevelFromVerbosity(lc.Quiet, lc.Verbose, lc.Level)
}

// Check - what to check and for which server.
type Check struct {
	catcheck.Selection `mapstructure:",squash" yaml:",inline"`
	// TargetVersion - overrides the detected server version. Both "9.6" and "90600" forms are accepted.
	TargetVersion string `mapstructure:"target_version" yaml:"target_version" json:"target_version,omitempty"`
	// Flavor - overrides the detected server flavor.
	Flavor              string `mapstructure:"flavor" yaml:"flavor" json:"flavor,omitempty"`
	SelectFromRelations bool   `mapstructure:"select_from_relations" yaml:"select_from_relations" json:"select_from_relations,omitempty"`
	Progress            bool   `mapstructure:"progress" yaml:"progress" json:"progress,omitempty"`
}

// Report - how the audit results are printed and archived.
type Report struct {
	Format       string `mapstructure:"format" yaml:"format" json:"format,omitempty"`
	SummaryTable bool   `mapstructure:"summary_table" yaml:"summary_table" json:"summary_table,omitempty"`
	// Archive - store the full run document in the storage.
	Archive       bool   `mapstructure:"archive" yaml:"archive" json:"archive,omitempty"`
	ArchiveFormat string `mapstructure:"archive_format" yaml:"archive_format" json:"archive_format,omitempty"`
	Compress      bool   `mapstructure:"compress" yaml:"compress" json:"compress,omitempty"`
}

type StorageConfig struct {
	Type      string            `mapstructure:"type" yaml:"type" json:"type,omitempty"`
	S3        *s3.Config        `mapstructure:"s3"  json:"s3,omitempty" yaml:"s3"`
	Directory *directory.Config `mapstructure:"directory" json:"directory,omitempty" yaml:"directory"`
}
