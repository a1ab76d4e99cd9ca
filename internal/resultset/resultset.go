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

package resultset

// ResultSet - rows of a catalog table in the text form. SQL NULL is stored as an empty string.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

func New(columns []string) *ResultSet {
	return &ResultSet{
		Columns: columns,
	}
}

// Append - adds a row. The row length must match the column count.
func (rs *ResultSet) Append(row ...string) *ResultSet {
	rs.Rows = append(rs.Rows, row)
	return rs
}

func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}

func (rs *ResultSet) Value(row, col int) string {
	return rs.Rows[row][col]
}

// ColumnIndex - position of the column in the rows or -1 if the column was not fetched.
func (rs *ResultSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
