package sai

import (
	"fmt"
	"strconv"
	"strings"
)

// ObjectID opaque object handle issued by a driver
type ObjectID uint64

// NullObjectID is the null object sentinel
const NullObjectID ObjectID = 0

// ObjectType define
type ObjectType int

// SAI object types
const (
	ObjectTypeNull ObjectType = iota
	ObjectTypeSwitch
	ObjectTypeNextHop
	ObjectTypeNextHopGroup
	ObjectTypeFEC
	ObjectTypeMax
)

// ObjectTypeOrder is object type name order
var ObjectTypeOrder = []string{
	ObjectTypeNull:         "SAI_OBJECT_TYPE_NULL",
	ObjectTypeSwitch:       "SAI_OBJECT_TYPE_SWITCH",
	ObjectTypeNextHop:      "SAI_OBJECT_TYPE_NEXT_HOP",
	ObjectTypeNextHopGroup: "SAI_OBJECT_TYPE_NEXT_HOP_GROUP",
	ObjectTypeFEC:          "SAI_OBJECT_TYPE_FEC",
}

func (t ObjectType) String() string {
	if t >= 0 && t < ObjectTypeMax {
		return ObjectTypeOrder[t]
	}
	return "SAI_OBJECT_TYPE_" + strconv.Itoa(int(t))
}

// Valid reports whether t names a real object type
func (t ObjectType) Valid() bool {
	return t > ObjectTypeNull && t < ObjectTypeMax
}

// object id layout: | type:8 | switch index:8 | index:48 |
const (
	oidTypeShift   = 56
	oidSwitchShift = 48
	oidIndexMask   = (uint64(1) << oidSwitchShift) - 1

	// MaxObjectIndex is the largest per switch object index
	MaxObjectIndex = oidIndexMask
)

// NewObjectID build object id from type, switch index and object index
func NewObjectID(t ObjectType, switchIndex uint8, index uint64) ObjectID {
	return ObjectID(uint64(t)<<oidTypeShift |
		uint64(switchIndex)<<oidSwitchShift |
		index&oidIndexMask)
}

// Type of the object encoded in id
func (id ObjectID) Type() ObjectType {
	return ObjectType(uint64(id) >> oidTypeShift)
}

// SwitchIndex encoded in id
func (id ObjectID) SwitchIndex() uint8 {
	return uint8(uint64(id) >> oidSwitchShift)
}

// Index is the per switch object index
func (id ObjectID) Index() uint64 {
	return uint64(id) & oidIndexMask
}

func (id ObjectID) String() string {
	return fmt.Sprintf("oid:0x%x", uint64(id))
}

// ParseObjectID parse "oid:0x..." or plain numbers
func ParseObjectID(s string) (ObjectID, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "oid:")
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return NullObjectID, fmt.Errorf("invalid object id %q", s)
	}
	return ObjectID(v), nil
}

// ObjectTypeQuery returns the object type of oid,
// ObjectTypeNull when it does not decode to a known type
func ObjectTypeQuery(oid ObjectID) ObjectType {
	if oid == NullObjectID {
		return ObjectTypeNull
	}
	t := oid.Type()
	if !t.Valid() {
		return ObjectTypeNull
	}
	return t
}

// SwitchIDQuery returns the switch object id owning oid
func SwitchIDQuery(oid ObjectID) ObjectID {
	switch ObjectTypeQuery(oid) {
	case ObjectTypeNull:
		return NullObjectID
	case ObjectTypeSwitch:
		return oid
	}
	return NewObjectID(ObjectTypeSwitch, oid.SwitchIndex(), uint64(oid.SwitchIndex()))
}

// APIID identify a method table
type APIID int

// SAI APIs
const (
	APIUnspecified APIID = iota
	APISwitch
	APINextHop
	APINextHopGroup
	APIFEC
	APIMax
)

// APIOrder is api name order
var APIOrder = []string{
	APIUnspecified:  "SAI_API_UNSPECIFIED",
	APISwitch:       "SAI_API_SWITCH",
	APINextHop:      "SAI_API_NEXT_HOP",
	APINextHopGroup: "SAI_API_NEXT_HOP_GROUP",
	APIFEC:          "SAI_API_FEC",
}

func (a APIID) String() string {
	if a >= 0 && a < APIMax {
		return APIOrder[a]
	}
	return "SAI_API_" + strconv.Itoa(int(a))
}
