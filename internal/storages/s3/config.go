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

package s3

import (
	"errors"
	"os"
)

const (
	defaultMaxRetries   = 3
	defaultStorageClass = "STANDARD"
	defaultSessionName  = "pgcatcheck"
)

// Config - bucket the run reports are archived to. Reports are small documents written with a
// single upload so no multipart tuning is exposed.
type Config struct {
	Bucket string `mapstructure:"bucket" yaml:"bucket" json:"bucket,omitempty"`
	// Prefix - key prefix of the reports, the database directories are created below it.
	Prefix       string `mapstructure:"prefix" yaml:"prefix" json:"prefix,omitempty"`
	Region       string `mapstructure:"region" yaml:"region" json:"region,omitempty"`
	Endpoint     string `mapstructure:"endpoint" yaml:"endpoint" json:"endpoint,omitempty"`
	StorageClass string `mapstructure:"storage_class" yaml:"storage_class" json:"storage_class,omitempty"`
	// ServerSideEncryption - AES256 or aws:kms. Reports contain catalog rows, some setups require it.
	ServerSideEncryption string `mapstructure:"server_side_encryption" yaml:"server_side_encryption" json:"server_side_encryption,omitempty"`
	ForcePathStyle       bool   `mapstructure:"force_path_style" yaml:"force_path_style" json:"force_path_style,omitempty"`
	UseListObjectsV1     bool   `mapstructure:"use_list_objects_v1" yaml:"use_list_objects_v1" json:"use_list_objects_v1,omitempty"`
	MaxRetries           int    `mapstructure:"max_retries" yaml:"max_retries" json:"max_retries,omitempty"`
	NoVerifySsl          bool   `mapstructure:"no_verify_ssl" yaml:"no_verify_ssl" json:"no_verify_ssl,omitempty"`
	CertFile             string `mapstructure:"cert_file" yaml:"cert_file" json:"cert_file,omitempty"`

	Credentials Credentials `mapstructure:"credentials" yaml:"credentials" json:"credentials,omitempty"`
}

// Credentials - static keys and the optional role assumed before writing reports. When no keys
// are set the default AWS provider chain is used.
type Credentials struct {
	AccessKeyId     string `mapstructure:"access_key_id" yaml:"access_key_id" json:"access_key_id,omitempty"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key" json:"secret_access_key,omitempty"`
	SessionToken    string `mapstructure:"session_token" yaml:"session_token" json:"session_token,omitempty"`
	RoleArn         string `mapstructure:"role_arn" yaml:"role_arn" json:"role_arn,omitempty"`
	SessionName     string `mapstructure:"session_name" yaml:"session_name" json:"session_name,omitempty"`
}

func NewConfig() *Config {
	return &Config{
		Bucket:         os.Getenv("PGCATCHECK_S3_BUCKET"),
		Prefix:         os.Getenv("PGCATCHECK_S3_PREFIX"),
		Region:         os.Getenv("PGCATCHECK_S3_REGION"),
		StorageClass:   defaultStorageClass,
		ForcePathStyle: true,
		MaxRetries:     defaultMaxRetries,
		Credentials: Credentials{
			SessionName: defaultSessionName,
		},
	}
}

func (c *Config) Validate() error {
	if c.Bucket == "" {
		return errors.New("report bucket cannot be empty")
	}
	if c.Region == "" && c.Endpoint == "" {
		return errors.New("either region or endpoint must be set")
	}
	switch c.ServerSideEncryption {
	case "", "AES256", "aws:kms":
	default:
		return errors.New("server_side_encryption must be AES256 or aws:kms")
	}
	if c.Credentials.RoleArn != "" && c.Credentials.SessionName == "" {
		return errors.New("session_name is required when role_arn is set")
	}
	return nil
}
