package sai

import (
	"bytes"
	"net"
)

// AttrID is an attribute tag, interpreted per object type
type AttrID int32

// AttrValue holds one attribute value, the member in use is
// decided by the attribute metadata ValueType
type AttrValue struct {
	Bool  bool
	U32   uint32
	S32   int32
	OID   ObjectID
	IP    net.IP
	Bytes []byte
}

// Attribute is a tag/value pair
type Attribute struct {
	ID    AttrID
	Value AttrValue
}

// Equal compare two values as typed by vt
func (v AttrValue) Equal(vt AttrValueType, o AttrValue) bool {
	switch vt {
	case ValueTypeBool:
		return v.Bool == o.Bool
	case ValueTypeUint32:
		return v.U32 == o.U32
	case ValueTypeInt32:
		return v.S32 == o.S32
	case ValueTypeObjectID:
		return v.OID == o.OID
	case ValueTypeIPAddress:
		return v.IP.Equal(o.IP)
	case ValueTypeBytes:
		return bytes.Equal(v.Bytes, o.Bytes)
	}
	return false
}

// Clone deep copy slices of v
func (v AttrValue) Clone() AttrValue {
	c := v
	if v.IP != nil {
		c.IP = append(net.IP(nil), v.IP...)
	}
	if v.Bytes != nil {
		c.Bytes = append([]byte(nil), v.Bytes...)
	}
	return c
}

// OIDAttr build an object id attribute
func OIDAttr(id AttrID, oid ObjectID) Attribute {
	return Attribute{ID: id, Value: AttrValue{OID: oid}}
}

// BoolAttr build a bool attribute
func BoolAttr(id AttrID, b bool) Attribute {
	return Attribute{ID: id, Value: AttrValue{Bool: b}}
}

// S32Attr build an int32 attribute
func S32Attr(id AttrID, v int32) Attribute {
	return Attribute{ID: id, Value: AttrValue{S32: v}}
}

// IPAttr build an ip address attribute
func IPAttr(id AttrID, ip net.IP) Attribute {
	return Attribute{ID: id, Value: AttrValue{IP: ip}}
}

// GetAttrs build a get request list, values are filled by the driver
func GetAttrs(ids ...AttrID) []Attribute {
	attrs := make([]Attribute, len(ids))
	for i, id := range ids {
		attrs[i].ID = id
	}
	return attrs
}
