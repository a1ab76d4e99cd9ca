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

	"github.com/huandu/go-sqlbuilder"

	"github.com/greenmaskio/pgcatcheck/internal/catalog"
)

// buildQuery - builds the SELECT of the needed columns in registry order and records the result
// index of every column. Returns false when the table has nothing to fetch.
func buildQuery(t *Table) (string, bool) {
	var columns []string
	for _, c := range t.Columns {
		if !c.Needed {
			c.resultIndex = noColumn
			continue
		}
		c.resultIndex = len(columns)
		if c.Cast != "" {
			columns = append(columns, fmt.Sprintf("%s::%s", c.Name, c.Cast))
		} else {
			columns = append(columns, c.Name)
		}
	}
	if len(columns) == 0 {
		return "", false
	}
	sb := sqlbuilder.PostgreSQL.
		NewSelectBuilder().
		Select(columns...).
		From(fmt.Sprintf("%s.%s", catalog.Namespace, t.Name))
	return sb.String(), true
}
