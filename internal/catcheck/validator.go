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

package catcheck

import (
	"fmt"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
)

// validator - a check family. prepare is called once per checked column before anything is
// loaded and declares the needed columns and tables. check is called for every row once the
// declared tables are loaded.
type validator interface {
	prepare(r *Run, t *Table, c *Column) error
	check(r *Run, t *Table, c *Column, row int)
}

// columnCache - per column state built on the first checked row.
type columnCache interface {
	isColumnCache()
}

var validators = map[catalog.CheckKind]validator{
	catalog.CheckAttnum:             attnumValidator{},
	catalog.CheckRelnatts:           relnattsValidator{},
	catalog.CheckOIDReference:       oidValidator{},
	catalog.CheckOIDVectorReference: oidValidator{},
	catalog.CheckOIDArrayReference:  oidValidator{},
	catalog.CheckDependencyClassID:  dependClassIDValidator{},
	catalog.CheckDependencyID:       dependObjectIDValidator{},
	catalog.CheckDependencySubID:    dependSubIDValidator{},
}

func validatorFor(kind catalog.CheckKind) (validator, error) {
	v, ok := validators[kind]
	if !ok {
		return nil, fmt.Errorf("unknown check kind %d", kind)
	}
	return v, nil
}
