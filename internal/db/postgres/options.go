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
	"fmt"
	"strings"
	"time"
)

const pgDefaultPort = 5432

// Options - connection settings. Libpq environment variables and the password file are honoured
// for everything that is not set here.
type Options struct {
	// DbName - database name, URI or keyword/value connection string.
	DbName          string        `mapstructure:"dbname" yaml:"dbname" json:"dbname,omitempty"`
	Host            string        `mapstructure:"host" yaml:"host" json:"host,omitempty"`
	Port            int           `mapstructure:"port" yaml:"port" json:"port,omitempty"`
	UserName        string        `mapstructure:"username" yaml:"username" json:"username,omitempty"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout" yaml:"connect_timeout" json:"connect_timeout,omitempty"`
	ApplicationName string        `mapstructure:"application_name" yaml:"application_name" json:"application_name,omitempty"`
	// Snapshot - read the whole catalog in a single REPEATABLE READ READ ONLY transaction.
	Snapshot bool `mapstructure:"snapshot" yaml:"snapshot" json:"snapshot,omitempty"`
}

func (o *Options) GetPgDSN() (string, error) {
	// URI or Standard format
	if strings.HasPrefix(o.DbName, "postgresql://") || strings.HasPrefix(o.DbName, "postgres://") ||
		strings.Contains(o.DbName, "=") {
		return o.DbName, nil
	}

	var parts []string
	if o.Host != "" {
		parts = append(parts, fmt.Sprintf("host=%s", o.Host))
	}
	if o.Port != 0 && o.Port != pgDefaultPort {
		parts = append(parts, fmt.Sprintf("port=%d", o.Port))
	}
	if o.UserName != "" {
		parts = append(parts, fmt.Sprintf("user=%s", o.UserName))
	}
	if o.DbName != "" {
		parts = append(parts, fmt.Sprintf("dbname=%s", o.DbName))
	}

	return strings.Join(parts, " "), nil
}
