// Package asicdb gives typed access to the SAI_ASIC ovsdb tables.
package asicdb

import (
	"fmt"

	"github.com/ebay/libovsdb"

	odbc "github.com/cn-pmlabs/gosai/lib/ovsdb_client"
)

// common fields
const (
	FieldUUID = "_uuid"
	FieldName = "name"
	FieldOID  = "oid"
)

// Switch fields
const (
	SwitchFieldRestartWarm = "restart_warm"
)

// NextHop fields
const (
	NextHopFieldIP = "ip"
)

// NextHopGroup fields
const (
	NextHopGroupFieldType = "type"
)

// NextHopGroup types
const (
	NextHopGroupTypeECMP       = "ecmp"
	NextHopGroupTypeProtection = "protection"
)

// FEC fields
const (
	FECFieldNextHop = "next_hop"
)

// TableSwitch row
type TableSwitch struct {
	UUID        string
	Name        string
	RestartWarm bool
	OID         string
}

// TableNextHop row
type TableNextHop struct {
	UUID string
	Name string
	IP   string
	OID  string
}

// TableNextHopGroup row
type TableNextHopGroup struct {
	UUID string
	Name string
	Type string
	OID  string
}

// TableFEC row, NextHop is the uuid of a NextHop or NextHopGroup row
type TableFEC struct {
	UUID    string
	Name    string
	NextHop string
	OID     string
}

func stringField(row libovsdb.ResultRow, field string) string {
	if v, ok := row[field].(string); ok {
		return v
	}
	return ""
}

func uuidField(row libovsdb.ResultRow, field string) string {
	u, _ := odbc.OptionalUUID(row[field])
	return u
}

// ConvertRowToSwitch ...
func ConvertRowToSwitch(row libovsdb.ResultRow) TableSwitch {
	t := TableSwitch{
		UUID: uuidField(row, FieldUUID),
		Name: stringField(row, FieldName),
		OID:  stringField(row, FieldOID),
	}
	if warm, ok := row[SwitchFieldRestartWarm].(bool); ok {
		t.RestartWarm = warm
	}
	return t
}

// ConvertRowToNextHop ...
func ConvertRowToNextHop(row libovsdb.ResultRow) TableNextHop {
	return TableNextHop{
		UUID: uuidField(row, FieldUUID),
		Name: stringField(row, FieldName),
		IP:   stringField(row, NextHopFieldIP),
		OID:  stringField(row, FieldOID),
	}
}

// ConvertRowToNextHopGroup ...
func ConvertRowToNextHopGroup(row libovsdb.ResultRow) TableNextHopGroup {
	return TableNextHopGroup{
		UUID: uuidField(row, FieldUUID),
		Name: stringField(row, FieldName),
		Type: stringField(row, NextHopGroupFieldType),
		OID:  stringField(row, FieldOID),
	}
}

// ConvertRowToFEC ...
func ConvertRowToFEC(row libovsdb.ResultRow) TableFEC {
	return TableFEC{
		UUID:    uuidField(row, FieldUUID),
		Name:    stringField(row, FieldName),
		NextHop: uuidField(row, FECFieldNextHop),
		OID:     stringField(row, FieldOID),
	}
}

// OptionalUUIDValue encode an optional uuid column, "" is the empty set
func OptionalUUIDValue(u string) interface{} {
	if u == "" {
		return libovsdb.OvsSet{GoSet: []interface{}{}}
	}
	return libovsdb.UUID{GoUUID: u}
}

// NameCondition select by name
func NameCondition(name string) []interface{} {
	return []interface{}{libovsdb.NewCondition(FieldName, "==", name)}
}

// UUIDCondition select by row uuid
func UUIDCondition(u string) []interface{} {
	return []interface{}{libovsdb.NewCondition(FieldUUID, "==", odbc.StringToGoUUID(u))}
}

// Writer is the subset of ovsdb_client used to update rows
type Writer interface {
	UpdateRows(db string, table string, updates map[string]interface{}, conditions []interface{}) int
}

// SetOID write the driver object id (or failure status) back into a row
func SetOID(w Writer, table string, rowUUID string, oid string) error {
	n := w.UpdateRows(odbc.ASICDB, table, map[string]interface{}{FieldOID: oid}, UUIDCondition(rowUUID))
	if n != 1 {
		return fmt.Errorf("%s row %s: oid not updated", table, rowUUID)
	}
	return nil
}
