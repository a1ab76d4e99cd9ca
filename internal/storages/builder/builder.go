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

package builder

import (
	"context"
	"fmt"
	"os"

	"github.com/greenmaskio/pgcatcheck/internal/domains"
	"github.com/greenmaskio/pgcatcheck/internal/storages"
	"github.com/greenmaskio/pgcatcheck/internal/storages/directory"
	"github.com/greenmaskio/pgcatcheck/internal/storages/s3"
)

const (
	TypeDirectory = "directory"
	TypeS3        = "s3"
)

// GetStorage - creates the report storage. STORAGE_TYPE environment variable overrides the
// configured type.
func GetStorage(ctx context.Context, stCfg *domains.StorageConfig, logLevel string) (
	storages.Storager, error,
) {
	storageType := stCfg.Type
	if envCfg := os.Getenv("STORAGE_TYPE"); envCfg != "" {
		storageType = envCfg
	}
	switch storageType {
	case TypeDirectory, "":
		cfg := stCfg.Directory
		if cfg == nil {
			cfg = directory.NewConfig()
		}
		return directory.NewStorage(cfg)
	case TypeS3:
		cfg := stCfg.S3
		if cfg == nil {
			cfg = s3.NewConfig()
		}
		return s3.NewStorage(ctx, cfg, logLevel)
	}
	return nil, fmt.Errorf("unknown storage type \"%s\"", storageType)
}
