package sai

import (
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// SerializeAttrValue render v as typed by md
func SerializeAttrValue(md *AttrMetadata, v AttrValue) string {
	switch md.ValueType {
	case ValueTypeBool:
		return strconv.FormatBool(v.Bool)
	case ValueTypeUint32:
		return strconv.FormatUint(uint64(v.U32), 10)
	case ValueTypeInt32:
		return strconv.FormatInt(int64(v.S32), 10)
	case ValueTypeObjectID:
		return v.OID.String()
	case ValueTypeIPAddress:
		if v.IP == nil {
			return ""
		}
		return v.IP.String()
	case ValueTypeBytes:
		return hex.EncodeToString(v.Bytes)
	}
	return ""
}

// DeserializeAttrValue parse s as typed by md
func DeserializeAttrValue(md *AttrMetadata, s string) (AttrValue, error) {
	var v AttrValue
	switch md.ValueType {
	case ValueTypeBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return v, fmt.Errorf("%s: invalid bool %q", md.Name, s)
		}
		v.Bool = b
	case ValueTypeUint32:
		n, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return v, fmt.Errorf("%s: invalid uint32 %q", md.Name, s)
		}
		v.U32 = uint32(n)
	case ValueTypeInt32:
		n, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return v, fmt.Errorf("%s: invalid int32 %q", md.Name, s)
		}
		v.S32 = int32(n)
	case ValueTypeObjectID:
		oid, err := ParseObjectID(s)
		if err != nil {
			return v, fmt.Errorf("%s: %v", md.Name, err)
		}
		v.OID = oid
	case ValueTypeIPAddress:
		ip := net.ParseIP(s)
		if ip == nil {
			return v, fmt.Errorf("%s: invalid ip %q", md.Name, s)
		}
		v.IP = ip
	case ValueTypeBytes:
		b, err := hex.DecodeString(s)
		if err != nil {
			return v, fmt.Errorf("%s: invalid hex %q", md.Name, s)
		}
		v.Bytes = b
	default:
		return v, fmt.Errorf("%s: unsupported value type %d", md.Name, md.ValueType)
	}
	return v, nil
}

// SerializeAttr render attr of object type t as NAME=value
func SerializeAttr(t ObjectType, attr Attribute) string {
	md := GetAttrMetadata(t, attr.ID)
	if md == nil {
		return fmt.Sprintf("%s=?", AttrName(t, attr.ID))
	}
	return md.Name + "=" + SerializeAttrValue(md, attr.Value)
}

// SerializeAttrs join attrs for logging
func SerializeAttrs(t ObjectType, attrs []Attribute) string {
	strs := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		strs = append(strs, SerializeAttr(t, attr))
	}
	return strings.Join(strs, " ")
}

// DeserializeAttr parse NAME=value for object type t
func DeserializeAttr(t ObjectType, s string) (Attribute, error) {
	kv := strings.SplitN(s, "=", 2)
	if len(kv) != 2 {
		return Attribute{}, fmt.Errorf("invalid attribute %q", s)
	}
	for _, md := range ListAttrMetadata(t) {
		if md.Name != kv[0] {
			continue
		}
		v, err := DeserializeAttrValue(md, kv[1])
		if err != nil {
			return Attribute{}, err
		}
		return Attribute{ID: md.AttrID, Value: v}, nil
	}
	return Attribute{}, fmt.Errorf("unknown attribute %s for %v", kv[0], t)
}
