package ovsdbclient

import (
	"testing"

	"github.com/ebay/libovsdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRowUpdateOp(t *testing.T) {
	row := libovsdb.Row{Fields: map[string]interface{}{"name": "fec1"}}
	assert.Equal(t, OpInsert, GetRowUpdateOp(libovsdb.RowUpdate{New: row}))
	assert.Equal(t, OpDelete, GetRowUpdateOp(libovsdb.RowUpdate{Old: row}))
	assert.Equal(t, OpUpdate, GetRowUpdateOp(libovsdb.RowUpdate{New: row, Old: row}))
	assert.Equal(t, "", GetRowUpdateOp(libovsdb.RowUpdate{}))
}

func TestRowUpdateOptimize(t *testing.T) {
	ru := RowUpdateOptimize(libovsdb.RowUpdate{
		New: libovsdb.Row{Fields: map[string]interface{}{"count": float64(3), "ratio": 0.5}},
	}, "u1")
	assert.Equal(t, 3, ru.New.Fields["count"])
	assert.Equal(t, 0.5, ru.New.Fields["ratio"])
	assert.Equal(t, libovsdb.UUID{GoUUID: "u1"}, ru.New.Fields["_uuid"])
	assert.Nil(t, ru.Old.Fields)
}

func TestOptionalUUID(t *testing.T) {
	u, ok := OptionalUUID(libovsdb.UUID{GoUUID: "u1"})
	assert.True(t, ok)
	assert.Equal(t, "u1", u)

	u, ok = OptionalUUID(libovsdb.OvsSet{GoSet: []interface{}{libovsdb.UUID{GoUUID: "u2"}}})
	assert.True(t, ok)
	assert.Equal(t, "u2", u)

	_, ok = OptionalUUID(libovsdb.OvsSet{GoSet: []interface{}{}})
	assert.False(t, ok)
	_, ok = OptionalUUID(nil)
	assert.False(t, ok)
}

func TestNewRowUUID(t *testing.T) {
	a, err := NewRowUUID()
	require.NoError(t, err)
	b, err := NewRowUUID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^row[0-9a-f]{8}_[0-9a-f]{4}_[0-9a-f]{4}_[0-9a-f]{4}_[0-9a-f]{12}$`, a)
}

func TestCheckReply(t *testing.T) {
	ops := []libovsdb.Operation{{Op: OpInsert, Table: ASIC_FEC}}
	_, err := checkReply([]libovsdb.OperationResult{{Error: "constraint violation"}}, ops)
	assert.Error(t, err)

	_, err = checkReply(nil, ops)
	assert.Error(t, err)

	reply, err := checkReply([]libovsdb.OperationResult{{Count: 1}}, ops)
	require.NoError(t, err)
	assert.Equal(t, 1, reply[0].Count)
}

func TestTransactNotConnected(t *testing.T) {
	c := NewOvsdbC(Config{Db: ASICDB, Addr: AsicdbAddr})
	_, err := c.Transact(ASICDB)
	assert.Error(t, err)
	assert.Equal(t, 0, c.UpdateRows(ASICDB, ASIC_FEC, map[string]interface{}{"oid": "x"}, nil))
}
