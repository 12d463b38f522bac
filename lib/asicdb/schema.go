package asicdb

import (
	_ "embed"
)

// Schema is the SAI_ASIC database schema, served by ovsdb-server
//
//go:embed sai_asic.ovsschema
var Schema []byte
