package asicdb

import (
	"fmt"

	"github.com/ebay/libovsdb"

	odbc "github.com/cn-pmlabs/gosai/lib/ovsdb_client"
)

// DB runs table operations on the ASIC DB
type DB struct {
	c *odbc.OvsdbC
}

// New wrap a connected client
func New(c *odbc.OvsdbC) *DB {
	return &DB{c: c}
}

// Connect to the ASIC DB at addr
func Connect(addr string) (*DB, error) {
	c := odbc.NewOvsdbC(odbc.Config{Db: odbc.ASICDB, Addr: addr})
	if err := c.NewOvsDbClient(); err != nil {
		return nil, err
	}
	return New(c), nil
}

// Close the connection
func (db *DB) Close() {
	db.c.Close()
}

func (db *DB) getByName(table string, name string) (libovsdb.ResultRow, error) {
	rows, num := db.c.SelectRows(odbc.ASICDB, table, NameCondition(name))
	if num != 1 {
		return nil, fmt.Errorf("%s %s not exist", table, name)
	}
	return rows[0], nil
}

func (db *DB) add(table string, name string, row map[string]interface{}) (string, error) {
	if _, err := db.getByName(table, name); err == nil {
		return "", fmt.Errorf("%s %s already exist", table, name)
	}
	row[FieldName] = name
	return db.c.InsertRow(odbc.ASICDB, table, row)
}

func (db *DB) delByName(table string, name string) error {
	if db.c.DeleteRows(odbc.ASICDB, table, NameCondition(name)) == 0 {
		return fmt.Errorf("%s %s not exist", table, name)
	}
	return nil
}

func (db *DB) list(table string) []libovsdb.ResultRow {
	rows, _ := db.c.SelectRows(odbc.ASICDB, table, []interface{}{})
	return rows
}

// SwitchAdd insert a switch row
func (db *DB) SwitchAdd(t TableSwitch) (string, error) {
	return db.add(odbc.ASIC_Switch, t.Name, map[string]interface{}{
		SwitchFieldRestartWarm: t.RestartWarm,
	})
}

// SwitchDelByName ...
func (db *DB) SwitchDelByName(name string) error {
	return db.delByName(odbc.ASIC_Switch, name)
}

// SwitchList ...
func (db *DB) SwitchList() []TableSwitch {
	var ts []TableSwitch
	for _, row := range db.list(odbc.ASIC_Switch) {
		ts = append(ts, ConvertRowToSwitch(row))
	}
	return ts
}

// NextHopAdd insert a next hop row
func (db *DB) NextHopAdd(t TableNextHop) (string, error) {
	return db.add(odbc.ASIC_NextHop, t.Name, map[string]interface{}{
		NextHopFieldIP: t.IP,
	})
}

// NextHopDelByName ...
func (db *DB) NextHopDelByName(name string) error {
	return db.delByName(odbc.ASIC_NextHop, name)
}

// NextHopGetByName ...
func (db *DB) NextHopGetByName(name string) (TableNextHop, error) {
	row, err := db.getByName(odbc.ASIC_NextHop, name)
	if err != nil {
		return TableNextHop{}, err
	}
	return ConvertRowToNextHop(row), nil
}

// NextHopList ...
func (db *DB) NextHopList() []TableNextHop {
	var ts []TableNextHop
	for _, row := range db.list(odbc.ASIC_NextHop) {
		ts = append(ts, ConvertRowToNextHop(row))
	}
	return ts
}

// NextHopGroupAdd insert a next hop group row
func (db *DB) NextHopGroupAdd(t TableNextHopGroup) (string, error) {
	if t.Type == "" {
		t.Type = NextHopGroupTypeECMP
	}
	return db.add(odbc.ASIC_NextHopGroup, t.Name, map[string]interface{}{
		NextHopGroupFieldType: t.Type,
	})
}

// NextHopGroupDelByName ...
func (db *DB) NextHopGroupDelByName(name string) error {
	return db.delByName(odbc.ASIC_NextHopGroup, name)
}

// NextHopGroupGetByName ...
func (db *DB) NextHopGroupGetByName(name string) (TableNextHopGroup, error) {
	row, err := db.getByName(odbc.ASIC_NextHopGroup, name)
	if err != nil {
		return TableNextHopGroup{}, err
	}
	return ConvertRowToNextHopGroup(row), nil
}

// NextHopGroupList ...
func (db *DB) NextHopGroupList() []TableNextHopGroup {
	var ts []TableNextHopGroup
	for _, row := range db.list(odbc.ASIC_NextHopGroup) {
		ts = append(ts, ConvertRowToNextHopGroup(row))
	}
	return ts
}

// ResolveNextHop find the row uuid of a next hop or next hop group by name,
// "" and "null" resolve to no next hop
func (db *DB) ResolveNextHop(name string) (string, error) {
	if name == "" || name == "null" {
		return "", nil
	}
	if nh, err := db.NextHopGetByName(name); err == nil {
		return nh.UUID, nil
	}
	if nhg, err := db.NextHopGroupGetByName(name); err == nil {
		return nhg.UUID, nil
	}
	return "", fmt.Errorf("next hop or group %s not exist", name)
}

// FECAdd insert a FEC row
func (db *DB) FECAdd(t TableFEC) (string, error) {
	return db.add(odbc.ASIC_FEC, t.Name, map[string]interface{}{
		FECFieldNextHop: OptionalUUIDValue(t.NextHop),
	})
}

// FECDelByName ...
func (db *DB) FECDelByName(name string) error {
	return db.delByName(odbc.ASIC_FEC, name)
}

// FECGetByName returns an error when no FEC row is named name
func (db *DB) FECGetByName(name string) (TableFEC, error) {
	row, err := db.getByName(odbc.ASIC_FEC, name)
	if err != nil {
		return TableFEC{}, err
	}
	return ConvertRowToFEC(row), nil
}

// FECSetNextHop point a FEC row at another next hop row, "" clears it
func (db *DB) FECSetNextHop(name string, nextHop string) error {
	n := db.c.UpdateRows(odbc.ASICDB, odbc.ASIC_FEC,
		map[string]interface{}{FECFieldNextHop: OptionalUUIDValue(nextHop)}, NameCondition(name))
	if n == 0 {
		return fmt.Errorf("%s %s not exist", odbc.ASIC_FEC, name)
	}
	return nil
}

// FECList ...
func (db *DB) FECList() []TableFEC {
	var ts []TableFEC
	for _, row := range db.list(odbc.ASIC_FEC) {
		ts = append(ts, ConvertRowToFEC(row))
	}
	return ts
}
