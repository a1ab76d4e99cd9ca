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

// definitions - every catalog table the tool knows how to read.
//
// OID columns without a check are listed because they form the key: other tables refer to them
// and the row index must be able to look them up. A table gets a key only when some check
// needs to look rows up in it.
var definitions = []TableSpec{
	{
		Name:    "pg_class",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "relowner", Check: checkAuthid},
			{Name: "relnamespace", Check: checkNamespace},
			{Name: "relname", Display: true},
			{Name: "reltype", Check: checkTypeOpt},
			{Name: "reloftype", MinVersion: 90000, Check: checkTypeOpt},
			{Name: "relkind", Display: true},
			{Name: "relam", Check: checkAmOpt},
			{Name: "relnatts", Check: checkRelnatts},
			{Name: "reltablespace", Check: checkTablespaceOp},
			{Name: "reltoastrelid", Check: checkClassOpt},
		},
	},
	{
		Name:    "pg_namespace",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "nspname", Display: true},
			{Name: "nspowner", Check: checkAuthid},
			{Name: "nspparent", ExtendedOnly: true, Check: checkNamespaceOpt},
			{Name: "nspobjecttype", MinVersion: 90200, ExtendedOnly: true, Check: checkTypeOpt},
			{Name: "nspforeignserver", ExtendedOnly: true, Check: checkServerOpt},
		},
	},
	{
		Name:    "pg_authid",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "rolname", Display: true},
			{Name: "rolprofile", MinVersion: 90500, ExtendedOnly: true, Check: checkProfile},
		},
	},
	{
		Name:    "pg_tablespace",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "spcname"},
			{Name: "spcowner", Check: checkAuthid},
		},
	},
	{
		Name:    "pg_type",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "typname"},
			{Name: "typowner", Check: checkAuthid},
			{Name: "typnamespace", Check: checkNamespace},
			{Name: "typrelid", Check: checkClassOpt},
			{Name: "typelem", Check: checkTypeOpt},
			{Name: "typarray", Check: checkTypeOpt},
			{Name: "typbasetype", Check: checkTypeOpt},
			{Name: "typcollation", MinVersion: 90100, Check: checkCollationOpt},
		},
	},
	{
		Name:    "pg_am",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "amkeytype", MaxVersion: 90599, Check: checkTypeOpt},
		},
	},
	{
		Name:    "pg_collation",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90100, Key: true, Display: true},
			{Name: "collnamespace", MinVersion: 90100, Check: checkNamespace},
			{Name: "collowner", MinVersion: 90100, Check: checkAuthid},
		},
	},
	{
		Name:    "pg_proc",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "pronamespace", Check: checkNamespace},
			{Name: "proowner", Check: checkAuthid},
			{Name: "prolang", Check: checkLanguage},
			{Name: "provariadic", Check: checkTypeOpt},
			{Name: "prorettype", Check: checkType},
			{Name: "proargtypes", Check: checkTypeVec},
			{Name: "proallargtypes", Check: checkTypeArr},
		},
	},
	{
		Name:    "pg_language",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "lanowner", Check: checkAuthid},
			{Name: "lanplcallfoid"},
			{Name: "laninline", MinVersion: 90000},
			{Name: "lanvalidator"},
		},
	},
	{
		Name:    "pg_index",
		Columns: []ColumnSpec{
			{Name: "indexrelid", Key: true, Display: true},
			{Name: "indrelid", Check: checkClass},
			{Name: "indcollation", MinVersion: 90100, Check: checkCollationVec},
			{Name: "indclass", Check: checkOpclassVec},
		},
	},
	{
		Name:    "pg_constraint",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "conname"},
			{Name: "connamespace", Check: checkNamespace},
			{Name: "conrelid", Check: checkClassOpt},
			{Name: "contypid", Check: checkTypeOpt},
			{Name: "conindid", MinVersion: 90000, Check: checkIndexOpt},
			{Name: "confrelid", Check: checkClassOpt},
			{Name: "conpfeqop", Check: checkOperatorArr},
			{Name: "conppeqop", Check: checkOperatorArr},
			{Name: "conffeqop", Check: checkOperatorArr},
			{Name: "conexclop", MinVersion: 90000, Check: checkOperatorArr},
		},
	},
	{
		Name:    "pg_database",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "datname"},
			{Name: "datdba", Check: checkAuthid},
			{Name: "dattablespace", Check: checkTablespace},
		},
	},
	{
		Name:    "pg_cast",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "castsource", Check: checkType},
			{Name: "casttarget", Check: checkType},
			{Name: "castfunc", Check: checkProcOpt},
		},
	},
	{
		Name:    "pg_conversion",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "connamespace", Check: checkNamespace},
			{Name: "conowner", Check: checkAuthid},
			{Name: "conproc", Cast: "pg_catalog.oid", Check: checkProc},
		},
	},
	{
		Name:    "pg_extension",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90100, Key: true, Display: true},
			{Name: "extowner", MinVersion: 90100, Check: checkAuthid},
			{Name: "extnamespace", MinVersion: 90100, Check: checkNamespace},
			{Name: "extconfig", MinVersion: 90100, Check: checkClassArr},
		},
	},
	{
		Name:    "pg_enum",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "enumtypid", Check: checkType},
		},
	},
	{
		Name:    "pg_trigger",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "tgrelid", Check: checkClass},
			{Name: "tgfoid", Check: checkProc},
			{Name: "tgconstrrelid", Check: checkClassOpt},
			{Name: "tgconstrindid", MinVersion: 90000, Check: checkIndexOpt},
			{Name: "tgconstraint", Check: checkConstraintOp},
		},
	},
	{
		Name:    "pg_ts_parser",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "prsnamespace", Check: checkNamespace},
			{Name: "prsstart", Cast: "pg_catalog.oid", Check: checkProc},
			{Name: "prstoken", Cast: "pg_catalog.oid", Check: checkProc},
			{Name: "prsend", Cast: "pg_catalog.oid", Check: checkProc},
			{Name: "prsheadline", Cast: "pg_catalog.oid", Check: checkProc},
			{Name: "prslextype", Cast: "pg_catalog.oid", Check: checkProc},
		},
	},
	{
		Name:    "pg_ts_config",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "cfgowner", Check: checkAuthid},
			{Name: "cfgnamespace", Check: checkNamespace},
			{Name: "cfgparser", Check: checkTsParser},
		},
	},
	{
		Name:    "pg_ts_template",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "tmplnamespace", Check: checkNamespace},
			{Name: "tmplinit", Cast: "pg_catalog.oid", Check: checkProc},
			{Name: "tmpllexize", Cast: "pg_catalog.oid", Check: checkProc},
		},
	},
	{
		Name:    "pg_ts_dict",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "dictnamespace", Check: checkNamespace},
			{Name: "dictowner", Check: checkAuthid},
			{Name: "dicttemplate", Check: checkTsTemplate},
		},
	},
	{
		Name:    "pg_foreign_data_wrapper",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "fdwowner", Check: checkAuthid},
			{Name: "fdwhandler", MinVersion: 90100, Check: checkProcOpt},
			{Name: "fdwvalidator", Check: checkProcOpt},
		},
	},
	{
		Name:    "pg_foreign_server",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "srvowner", Check: checkAuthid},
			{Name: "srvfdw", Check: checkFdw},
		},
	},
	{
		Name:    "pg_user_mapping",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "umuser", Check: checkAuthidOpt},
			{Name: "umserver", Check: checkServer},
		},
	},
	{
		Name:    "pg_foreign_table",
		Columns: []ColumnSpec{
			{Name: "ftrelid", MinVersion: 90100, Key: true, Display: true, Check: checkClass},
			{Name: "ftserver", MinVersion: 90100, Check: checkServer},
		},
	},
	{
		Name:    "pg_event_trigger",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90300, Key: true, Display: true},
			{Name: "evtowner", MinVersion: 90300, Check: checkAuthid},
			{Name: "evtfoid", MinVersion: 90300, Check: checkProc},
		},
	},
	{
		Name:    "pg_opfamily",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "opfname"},
			{Name: "opfmethod", Check: checkAm},
			{Name: "opfnamespace", Check: checkNamespace},
			{Name: "opfowner", Check: checkAuthid},
		},
	},
	{
		Name:    "pg_opclass",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "opcname"},
			{Name: "opcmethod", Check: checkAm},
			{Name: "opcnamespace", Check: checkNamespace},
			{Name: "opcowner", Check: checkAuthid},
			{Name: "opcfamily", Check: checkOpfamily},
			{Name: "opcintype", Check: checkType},
			{Name: "opckeytype", Check: checkTypeOpt},
		},
	},
	{
		Name:    "pg_operator",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "oprname"},
			{Name: "oprnamespace", Check: checkNamespace},
			{Name: "oprowner", Check: checkAuthid},
			{Name: "oprleft", Check: checkTypeOpt},
			{Name: "oprright", Check: checkTypeOpt},
			{Name: "oprresult", Check: checkTypeOpt},
			{Name: "oprcom", Check: checkOperatorOpt},
			{Name: "oprnegate", Check: checkOperatorOpt},
			{Name: "oprcode", Cast: "pg_catalog.oid", Check: checkProcOpt},
			{Name: "oprrest", Cast: "pg_catalog.oid", Check: checkProcOpt},
			{Name: "oprjoin", Cast: "pg_catalog.oid", Check: checkProcOpt},
		},
	},
	{
		Name:    "pg_amop",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "amopfamily", Check: checkOpfamily},
			{Name: "amoplefttype", Check: checkType},
			{Name: "amoprighttype", Check: checkType},
			{Name: "amopopr", Check: checkOperator},
			{Name: "amopmethod", Check: checkAm},
			{Name: "amopsortfamily", MinVersion: 90100, Check: checkOpfamilyOpt},
		},
	},
	{
		Name:    "pg_amproc",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "amprocfamily", Check: checkOpfamily},
			{Name: "amproclefttype", Check: checkType},
			{Name: "amprocrighttype", Check: checkType},
			{Name: "amproc", Cast: "pg_catalog.oid", Check: checkProc},
		},
	},
	{
		Name:    "pg_default_acl",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90000, Key: true, Display: true},
			{Name: "defaclnamespace", MinVersion: 90000, Check: checkNamespaceOpt},
			{Name: "defaclrole", MinVersion: 90000, Check: checkAuthid},
		},
	},
	{
		Name:    "pg_rewrite",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "rulename"},
			{Name: "ev_class", Check: checkClass},
		},
	},
	{
		Name:    "pg_inherits",
		Columns: []ColumnSpec{
			{Name: "inhrelid", Key: true, Display: true, Check: checkClass},
			{Name: "inhparent", Key: true, Display: true, Check: checkClass},
		},
	},
	{
		Name:    "pg_largeobject_metadata",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90000, Key: true, Display: true},
			{Name: "lomowner", MinVersion: 90000, Check: checkAuthid},
		},
	},
	{
		Name:    "pg_largeobject",
		Columns: []ColumnSpec{
			{Name: "loid", Key: true, Display: true, Check: checkLOMetadata},
			{Name: "pageno", Key: true, Display: true},
		},
	},
	{
		Name:    "pg_aggregate",
		Columns: []ColumnSpec{
			{Name: "aggfnoid", Cast: "pg_catalog.oid", Key: true, Display: true, Check: checkProc},
			{Name: "aggtransfn", Cast: "pg_catalog.oid", Check: checkProc},
			{Name: "aggfinalfn", Cast: "pg_catalog.oid", Check: checkProcOpt},
			{Name: "aggsortop", Check: checkOperatorOpt},
			{Name: "aggtranstype", Check: checkType},
		},
	},
	{
		Name:    "pg_ts_config_map",
		Columns: []ColumnSpec{
			{Name: "mapcfg", Key: true, Display: true, Check: checkTsConfig},
			{Name: "maptokentype", Key: true, Display: true},
			{Name: "mapseqno", Key: true, Display: true},
			{Name: "mapdict", Check: checkTsDict},
		},
	},
	{
		Name:    "pg_range",
		Columns: []ColumnSpec{
			{Name: "rngtypid", MinVersion: 90200, Key: true, Display: true, Check: checkType},
			{Name: "rngsubtype", MinVersion: 90200, Check: checkType},
			{Name: "rngcollation", MinVersion: 90200, Check: checkCollationOpt},
			{Name: "rngsubopc", MinVersion: 90200, Check: checkOpclass},
			{Name: "rngcanonical", Cast: "pg_catalog.oid", MinVersion: 90200, Check: checkProcOpt},
			{Name: "rngsubdiff", Cast: "pg_catalog.oid", MinVersion: 90200, Check: checkProcOpt},
		},
	},
	{
		Name:    "pg_attrdef",
		Columns: []ColumnSpec{
			{Name: "oid", Key: true, Display: true},
			{Name: "adrelid", Check: checkClass},
		},
	},
	{
		Name:    "pg_attribute",
		Columns: []ColumnSpec{
			{Name: "attrelid", Key: true, Display: true, Check: checkClass},
			{Name: "attname", Display: true},
			{Name: "attnum", Key: true, Display: true, Check: checkAttnum},
			{Name: "atttypid", Check: checkTypeOpt},
			{Name: "attcollation", MinVersion: 90100, Check: checkCollationOpt},
		},
	},
	{
		Name:    "pg_statistic",
		Columns: []ColumnSpec{
			{Name: "starelid", Key: true, Display: true, Check: checkClass},
			{Name: "staattnum", Key: true, Display: true},
			{Name: "stainherit", MinVersion: 90000, Key: true, Display: true},
			{Name: "staop1", Check: checkOperatorOpt},
			{Name: "staop2", Check: checkOperatorOpt},
			{Name: "staop3", Check: checkOperatorOpt},
			{Name: "staop4", Check: checkOperatorOpt},
		},
	},
	{
		Name:    "pg_db_role_setting",
		Columns: []ColumnSpec{
			{Name: "setdatabase", MinVersion: 90000, Key: true, Display: true, Check: checkDatabaseOpt},
			{Name: "setrole", MinVersion: 90000, Key: true, Display: true, Check: checkAuthidOpt},
		},
	},
	{
		Name:    "pg_depend",
		Columns: []ColumnSpec{
			{Name: "classid", Display: true, Check: checkDepClassID},
			{Name: "objid", Display: true, Check: checkDepObjectID},
			{Name: "objsubid", Display: true, Check: checkDepSubID},
			{Name: "refclassid", Display: true, Check: checkDepClassID},
			{Name: "refobjid", Display: true, Check: checkDepObjectID},
			{Name: "refobjsubid", Display: true, Check: checkDepSubID},
			{Name: "deptype", Display: true},
		},
	},
	{
		Name:    "pg_shdepend",
		Columns: []ColumnSpec{
			{Name: "dbid", Display: true, Check: checkDatabaseOpt},
			{Name: "classid", Display: true, Check: checkDepClassID},
			{Name: "objid", Display: true, Check: checkDepObjectID},
			{Name: "objsubid", Display: true, Check: checkDepSubID},
			{Name: "refclassid", Display: true, Check: checkDepClassID},
			{Name: "refobjid", Display: true, Check: checkDepObjectID},
			{Name: "deptype", Display: true},
		},
	},
	{
		Name:    "edb_dir",
		Columns: []ColumnSpec{
			{Name: "oid", ExtendedOnly: true, Key: true, Display: true},
			{Name: "dirowner", ExtendedOnly: true, Check: checkAuthid},
		},
	},
	{
		Name:    "edb_partdef",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90100, ExtendedOnly: true, Key: true, Display: true},
			{Name: "pdefrel", MinVersion: 90100, ExtendedOnly: true, Check: checkClass},
		},
	},
	{
		Name:    "edb_partition",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90100, ExtendedOnly: true, Key: true, Display: true},
			{Name: "partpdefid", MinVersion: 90100, ExtendedOnly: true, Check: checkPartdef},
			{Name: "partrelid", MinVersion: 90100, ExtendedOnly: true, Check: checkClass},
			{Name: "partparent", MinVersion: 90100, ExtendedOnly: true, Check: checkPartitionOpt},
			{Name: "partcons", MinVersion: 90100, ExtendedOnly: true, Check: checkConstraint},
		},
	},
	{
		Name:    "edb_policy",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90100, ExtendedOnly: true, Key: true, Display: true},
			{Name: "policygroup", MinVersion: 90100, ExtendedOnly: true},
			{Name: "policyobject", MinVersion: 90100, ExtendedOnly: true, Check: checkClass},
			{Name: "policyproc", MinVersion: 90100, ExtendedOnly: true, Check: checkProc},
		},
	},
	{
		Name:    "pg_synonym",
		Columns: []ColumnSpec{
			{Name: "oid", ExtendedOnly: true, Key: true, Display: true},
			{Name: "synnamespace", ExtendedOnly: true, Check: checkNamespaceOpt},
			{Name: "synowner", ExtendedOnly: true, Check: checkAuthid},
		},
	},
	{
		Name:    "edb_variable",
		Columns: []ColumnSpec{
			{Name: "oid", ExtendedOnly: true, Key: true, Display: true},
			{Name: "varpackage", ExtendedOnly: true, Check: checkNamespace},
			{Name: "vartype", ExtendedOnly: true, Check: checkTypeOpt},
		},
	},
	{
		Name:    "pg_description",
		Columns: []ColumnSpec{
			{Name: "classoid", Display: true, Check: checkDepClassID},
			{Name: "objoid", Display: true, Check: checkDepObjectID},
			{Name: "objsubid", Display: true, Check: checkDepSubID},
		},
	},
	{
		Name:    "pg_shdescription",
		Columns: []ColumnSpec{
			{Name: "classoid", Display: true, Check: checkDepClassID},
			{Name: "objoid", Display: true, Check: checkDepObjectID},
		},
	},
	{
		Name:    "pg_seclabel",
		Columns: []ColumnSpec{
			{Name: "classoid", MinVersion: 90100, Display: true, Check: checkDepClassID},
			{Name: "objoid", MinVersion: 90100, Display: true, Check: checkDepObjectID},
			{Name: "objsubid", MinVersion: 90100, Display: true, Check: checkDepSubID},
			{Name: "provider", MinVersion: 90100, Display: true},
		},
	},
	{
		Name:    "pg_shseclabel",
		Columns: []ColumnSpec{
			{Name: "classoid", MinVersion: 90200, Display: true, Check: checkDepClassID},
			{Name: "objoid", MinVersion: 90200, Display: true, Check: checkDepObjectID},
			{Name: "provider", MinVersion: 90200, Display: true},
		},
	},
	{
		Name:    "pg_auth_members",
		Columns: []ColumnSpec{
			{Name: "roleid", Display: true, Check: checkAuthid},
			{Name: "member", Display: true, Check: checkAuthid},
			{Name: "grantor", Check: checkAuthid},
		},
	},
	{
		Name:    "pg_policy",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90500, Key: true, Display: true},
			{Name: "polname", MinVersion: 90500},
			{Name: "polrelid", MinVersion: 90500, Check: checkClass},
			{Name: "polroles", MinVersion: 90500, Check: checkAuthidArr0},
		},
	},
	{
		Name:    "edb_profile",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90500, ExtendedOnly: true, Key: true, Display: true},
			{Name: "prfname", MinVersion: 90500, ExtendedOnly: true, Display: true},
		},
	},
	{
		Name:    "edb_queue_table",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90600, ExtendedOnly: true, Key: true, Display: true},
			{Name: "qtname", MinVersion: 90600, ExtendedOnly: true, Display: true},
			{Name: "qtnamespace", MinVersion: 90600, ExtendedOnly: true, Check: checkNamespace},
			{Name: "qtrelid", MinVersion: 90600, ExtendedOnly: true, Check: checkClass},
			{Name: "qpayloadtype", MinVersion: 90600, ExtendedOnly: true, Check: checkType},
		},
	},
	{
		Name:    "edb_queue",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90600, ExtendedOnly: true, Key: true, Display: true},
			{Name: "aqname", MinVersion: 90600, ExtendedOnly: true, Display: true},
			{Name: "aqrelid", MinVersion: 90600, ExtendedOnly: true, Check: checkClass},
		},
	},
	{
		Name:    "edb_password_history",
		Columns: []ColumnSpec{
			{Name: "passhistroleid", MinVersion: 90500, ExtendedOnly: true, Key: true, Display: true, Check: checkAuthid},
			{Name: "passhistpassword", MinVersion: 90500, ExtendedOnly: true, Key: true, Display: true},
			{Name: "passhistpasswordsetat", MinVersion: 90500, ExtendedOnly: true, Display: true},
		},
	},
	{
		Name:    "edb_queue_callback",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90600, ExtendedOnly: true, Key: true, Display: true},
			{Name: "qcbqueueid", MinVersion: 90600, ExtendedOnly: true, Display: true, Check: checkQueue},
			{Name: "qcbowner", MinVersion: 90600, ExtendedOnly: true, Check: checkAuthid},
		},
	},
	{
		Name:    "edb_resource_group",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90400, ExtendedOnly: true, Key: true, Display: true},
			{Name: "rgrpname", MinVersion: 90400, ExtendedOnly: true, Display: true},
		},
	},
	{
		Name:    "pg_init_privs",
		Columns: []ColumnSpec{
			{Name: "objoid", MinVersion: 90600, Key: true, Display: true},
			{Name: "classoid", MinVersion: 90600, Key: true, Display: true, Check: checkClass},
			{Name: "objsubid", MinVersion: 90600, Key: true, Display: true},
		},
	},
	{
		Name:    "pg_partitioned_table",
		Columns: []ColumnSpec{
			{Name: "partrelid", MinVersion: 100000, Key: true, Display: true, Check: checkClass},
			{Name: "partclass", MinVersion: 100000, Check: checkOpclassVec},
			{Name: "partcollation", MinVersion: 100000, Check: checkCollationVec},
		},
	},
	{
		Name:    "pg_pltemplate",
		Columns: []ColumnSpec{
			{Name: "tmplname", MaxVersion: 130000, Key: true, Display: true},
		},
	},
	{
		Name:    "pg_publication",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 100000, Key: true, Display: true},
			{Name: "pubowner", MinVersion: 100000, Check: checkAuthid},
		},
	},
	{
		Name:    "pg_publication_rel",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 100000, Key: true, Display: true},
			{Name: "prpubid", MinVersion: 100000, Check: checkPublication},
			{Name: "prrelid", MinVersion: 100000, Check: checkClass},
		},
	},
	{
		Name:    "pg_replication_origin",
		Columns: []ColumnSpec{
			{Name: "roident", MinVersion: 90500, Key: true, Display: true},
		},
	},
	{
		Name:    "pg_sequence",
		Columns: []ColumnSpec{
			{Name: "seqrelid", MinVersion: 100000, Key: true, Display: true, Check: checkClass},
			{Name: "seqtypid", MinVersion: 100000, Check: checkType},
		},
	},
	{
		Name:    "pg_statistic_ext",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 100000, Key: true, Display: true},
			{Name: "stxrelid", MinVersion: 100000, Check: checkClass},
			{Name: "stxnamespace", MinVersion: 100000, Check: checkNamespace},
			{Name: "stxowner", MinVersion: 100000, Check: checkAuthid},
		},
	},
	{
		Name:    "pg_subscription",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 100000, Key: true, Display: true},
			{Name: "subdbid", MinVersion: 100000, Check: checkDatabase},
			{Name: "subowner", MinVersion: 100000, Check: checkAuthid},
		},
	},
	{
		Name:    "pg_subscription_rel",
		Columns: []ColumnSpec{
			{Name: "srsubid", MinVersion: 100000, Key: true, Display: true, Check: checkSubscription},
			{Name: "srrelid", MinVersion: 100000, Key: true, Display: true, Check: checkClass},
		},
	},
	{
		Name:    "pg_transform",
		Columns: []ColumnSpec{
			{Name: "oid", MinVersion: 90500, Key: true, Display: true},
			{Name: "trftype", MinVersion: 90500, Check: checkType},
			{Name: "trflang", MinVersion: 90500, Check: checkLanguage},
			{Name: "trffromsql", MinVersion: 90500, Check: checkProc},
			{Name: "trftosql", MinVersion: 90500, Check: checkProc},
		},
	},
}
