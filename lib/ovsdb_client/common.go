package ovsdbclient

import (
	"encoding/hex"
	"reflect"

	"github.com/ebay/libovsdb"
	"github.com/google/uuid"
)

// defeault ovsdb server listening socket addr
var (
	AsicdbAddr string = "tcp:127.0.0.1:6650"
)

// operation set
const (
	OpInsert string = "insert"
	OpMutate string = "mutate"
	OpDelete string = "delete"
	OpSelect string = "select"
	OpUpdate string = "update"
)

// DB name
const (
	ASICDB string = "SAI_ASIC"
)

// ASICDB Table name
const (
	ASIC_Switch       string = "Switch"
	ASIC_NextHop      string = "NextHop"
	ASIC_NextHopGroup string = "NextHopGroup"
	ASIC_FEC          string = "FEC"
)

// ASICTablesOrder is the dependency order, referenced tables first
var ASICTablesOrder = []string{
	ASIC_Switch,
	ASIC_NextHop,
	ASIC_NextHopGroup,
	ASIC_FEC,
}

// Float64ToInt libovsdb get interger by by float64
func Float64ToInt(row libovsdb.Row) {
	for field, value := range row.Fields {
		if v, ok := value.(float64); ok {
			n := int(v)
			if float64(n) == v {
				row.Fields[field] = n
			}
		}
	}
}

// RowUpdateOptimize convert float64 and save uuid to row field
func RowUpdateOptimize(rowUpdate libovsdb.RowUpdate, uuid string) libovsdb.RowUpdate {
	Float64ToInt(rowUpdate.New)
	Float64ToInt(rowUpdate.Old)

	if rowUpdate.New.Fields != nil {
		rowUpdate.New.Fields["_uuid"] = libovsdb.UUID{GoUUID: uuid}
	}
	if rowUpdate.Old.Fields != nil {
		rowUpdate.Old.Fields["_uuid"] = libovsdb.UUID{GoUUID: uuid}
	}

	return rowUpdate
}

// StringToGoUUID convert uuid string to libovsdb.UUID
func StringToGoUUID(uuid string) libovsdb.UUID {
	return libovsdb.UUID{GoUUID: uuid}
}

func encodeHex(dst []byte, id uuid.UUID) {
	hex.Encode(dst, id[:4])
	dst[8] = '_'
	hex.Encode(dst[9:13], id[4:6])
	dst[13] = '_'
	hex.Encode(dst[14:18], id[6:8])
	dst[18] = '_'
	hex.Encode(dst[19:23], id[8:10])
	dst[23] = '_'
	hex.Encode(dst[24:], id[10:])
}

// NewRowUUID generate a random named uuid usable in one transaction
func NewRowUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	var buf [36 + 3]byte
	copy(buf[:], "row")
	encodeHex(buf[3:], id)
	return string(buf[:]), nil
}

// OptionalUUID get an optional uuid column, ovsdb encodes one element
// as a bare uuid and zero elements as an empty set
func OptionalUUID(value interface{}) (string, bool) {
	switch v := value.(type) {
	case libovsdb.UUID:
		return v.GoUUID, v.GoUUID != ""
	case libovsdb.OvsSet:
		for _, e := range v.GoSet {
			if u, ok := e.(libovsdb.UUID); ok {
				return u.GoUUID, true
			}
		}
	case *libovsdb.OvsSet:
		if v != nil {
			return OptionalUUID(*v)
		}
	}
	return "", false
}

// GetRowUpdateOp get the update operation
func GetRowUpdateOp(rowUpdate libovsdb.RowUpdate) string {
	var op string
	empty := libovsdb.Row{}
	if !reflect.DeepEqual(rowUpdate.New, empty) {
		if reflect.DeepEqual(rowUpdate.Old, empty) {
			op = OpInsert
		} else {
			op = OpUpdate
		}
	} else {
		if !reflect.DeepEqual(rowUpdate.Old, empty) {
			op = OpDelete
		}
	}
	return op
}
