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

package catalog

type CheckKind int

const (
	CheckAttnum CheckKind = iota + 1
	CheckOIDReference
	CheckOIDVectorReference
	CheckOIDArrayReference
	CheckDependencyClassID
	CheckDependencyID
	CheckDependencySubID
	CheckRelnatts
)

var checkKindNames = map[CheckKind]string{
	CheckAttnum:             "attnum",
	CheckOIDReference:       "oid",
	CheckOIDVectorReference: "oid-vector",
	CheckOIDArrayReference:  "oid-array",
	CheckDependencyClassID:  "dependency-class-id",
	CheckDependencyID:       "dependency-id",
	CheckDependencySubID:    "dependency-sub-id",
	CheckRelnatts:           "relnatts",
}

func (k CheckKind) String() string {
	if n, ok := checkKindNames[k]; ok {
		return n
	}
	return "unknown"
}

func (k CheckKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsOIDReference - true for scalar, vector and array OID references.
func (k CheckKind) IsOIDReference() bool {
	return k == CheckOIDReference || k == CheckOIDVectorReference || k == CheckOIDArrayReference
}

// Check - validator binding of the column.
type Check struct {
	Kind CheckKind `json:"kind" yaml:"kind"`
	// ZeroOK - the value "0" is legal and is not looked up.
	ZeroOK bool `json:"zero_ok,omitempty" yaml:"zero_ok,omitempty"`
	// References - the table OID references point to.
	References string `json:"references,omitempty" yaml:"references,omitempty"`
}

func oidRef(table string) *Check {
	return &Check{Kind: CheckOIDReference, References: table}
}

func optionalOIDRef(table string) *Check {
	return &Check{Kind: CheckOIDReference, ZeroOK: true, References: table}
}

func oidVectorRef(table string, zeroOK bool) *Check {
	return &Check{Kind: CheckOIDVectorReference, ZeroOK: zeroOK, References: table}
}

func oidArrayRef(table string, zeroOK bool) *Check {
	return &Check{Kind: CheckOIDArrayReference, ZeroOK: zeroOK, References: table}
}

var (
	checkAttnum       = &Check{Kind: CheckAttnum}
	checkRelnatts     = &Check{Kind: CheckRelnatts}
	checkDepClassID   = &Check{Kind: CheckDependencyClassID}
	checkDepObjectID  = &Check{Kind: CheckDependencyID}
	checkDepSubID     = &Check{Kind: CheckDependencySubID}
	checkAm           = oidRef("pg_am")
	checkAmOpt        = optionalOIDRef("pg_am")
	checkAuthid       = oidRef("pg_authid")
	checkAuthidOpt    = optionalOIDRef("pg_authid")
	checkAuthidArr0   = oidArrayRef("pg_authid", true)
	checkClass        = oidRef("pg_class")
	checkClassArr     = oidArrayRef("pg_class", false)
	checkClassOpt     = optionalOIDRef("pg_class")
	checkCollationOpt = optionalOIDRef("pg_collation")
	checkCollationVec = oidVectorRef("pg_collation", true)
	checkConstraint   = oidRef("pg_constraint")
	checkConstraintOp = optionalOIDRef("pg_constraint")
	checkDatabase     = oidRef("pg_database")
	checkDatabaseOpt  = optionalOIDRef("pg_database")
	checkPartdef      = oidRef("edb_partdef")
	checkPartitionOpt = optionalOIDRef("edb_partition")
	checkFdw          = oidRef("pg_foreign_data_wrapper")
	checkServer       = oidRef("pg_foreign_server")
	checkServerOpt    = optionalOIDRef("pg_foreign_server")
	checkIndexOpt     = optionalOIDRef("pg_index")
	checkLanguage     = oidRef("pg_language")
	checkLOMetadata   = oidRef("pg_largeobject_metadata")
	checkNamespace    = oidRef("pg_namespace")
	checkNamespaceOpt = optionalOIDRef("pg_namespace")
	checkOpclass      = oidRef("pg_opclass")
	checkOpclassVec   = oidVectorRef("pg_opclass", false)
	checkOperator     = oidRef("pg_operator")
	checkOperatorOpt  = optionalOIDRef("pg_operator")
	checkOperatorArr  = oidArrayRef("pg_operator", false)
	checkOpfamily     = oidRef("pg_opfamily")
	checkOpfamilyOpt  = optionalOIDRef("pg_opfamily")
	checkProc         = oidRef("pg_proc")
	checkProcOpt      = optionalOIDRef("pg_proc")
	checkProfile      = optionalOIDRef("edb_profile")
	checkPublication  = oidRef("pg_publication")
	checkQueue        = oidRef("edb_queue")
	checkSubscription = oidRef("pg_subscription")
	checkTablespace   = oidRef("pg_tablespace")
	checkTablespaceOp = optionalOIDRef("pg_tablespace")
	checkTsConfig     = optionalOIDRef("pg_ts_config")
	checkTsDict       = optionalOIDRef("pg_ts_dict")
	checkTsParser     = optionalOIDRef("pg_ts_parser")
	checkTsTemplate   = optionalOIDRef("pg_ts_template")
	checkType         = oidRef("pg_type")
	checkTypeArr      = oidArrayRef("pg_type", false)
	checkTypeOpt      = optionalOIDRef("pg_type")
	checkTypeVec      = oidVectorRef("pg_type", false)
)
