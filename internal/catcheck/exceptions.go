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
	"github.com/greenmaskio/pgcatcheck/internal/catalog"
)

// dependencyException - known dangling reference left by EnterpriseDB releases before 9.4 unless
// the cluster was initialized without redwood compatibility.
type dependencyException struct {
	table    string
	classID  string
	objectID string
}

var (
	edbProcExceptions = []dependencyException{
		{table: "pg_depend", classID: "1255", objectID: "877"},
		{table: "pg_depend", classID: "1255", objectID: "883"},
		{table: "pg_depend", classID: "1255", objectID: "1777"},
		{table: "pg_depend", classID: "1255", objectID: "1780"},
		{table: "pg_depend", classID: "1255", objectID: "2049"},
	}
	edbRewriteDependExceptions = []dependencyException{
		{table: "pg_depend", classID: "2617", objectID: "2779"},
		{table: "pg_depend", classID: "2617", objectID: "2780"},
	}
	edbRewriteDescriptionExceptions = []dependencyException{
		{table: "pg_description", classID: "2617", objectID: "2779"},
		{table: "pg_description", classID: "2617", objectID: "2780"},
	}
)

// dependencyExceptions - returns the exception list for the server.
func dependencyExceptions(target catalog.Target) []dependencyException {
	if !target.IsExtended() || target.Version >= 90400 {
		return nil
	}
	var res []dependencyException
	res = append(res, edbProcExceptions...)
	switch {
	case target.Version >= 90300:
	case target.Version >= 90100:
		res = append(res, edbRewriteDependExceptions...)
		res = append(res, edbRewriteDescriptionExceptions...)
	default:
		res = append(res, edbRewriteDependExceptions...)
	}
	return res
}

func isDependencyException(target catalog.Target, table, classID, objectID string) bool {
	for _, e := range dependencyExceptions(target) {
		if e.table == table && e.classID == classID && e.objectID == objectID {
			return true
		}
	}
	return false
}

// isBogusClassID - EnterpriseDB 8.4 installed a dependency with class ID 16722.
func isBogusClassID(target catalog.Target, classID string) bool {
	return target.IsExtended() && target.Version <= 90000 && classID == "16722"
}

// isBogusTypeReference - EnterpriseDB releases before 9.4 created dependencies on type OID 0.
func isBogusTypeReference(target catalog.Target, table *Table, objectID string) bool {
	return target.IsExtended() && target.Version < 90400 && table.Name == pgTypeTable && objectID == "0"
}
