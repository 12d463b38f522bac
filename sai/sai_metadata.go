package sai

import (
	"fmt"
	"net"
	"sort"
	"sync"
)

// AttrValueType of an attribute value
type AttrValueType int

// attribute value types
const (
	ValueTypeBool AttrValueType = iota + 1
	ValueTypeUint32
	ValueTypeInt32
	ValueTypeObjectID
	ValueTypeIPAddress
	ValueTypeBytes
)

// AttrFlags of an attribute
type AttrFlags uint32

// attribute flags
const (
	AttrFlagMandatoryOnCreate AttrFlags = 1 << iota
	AttrFlagCreateOnly
	AttrFlagCreateAndSet
	AttrFlagReadOnly
)

// AttrMetadata describe one attribute of an object type
type AttrMetadata struct {
	ObjectType         ObjectType
	AttrID             AttrID
	Name               string
	ValueType          AttrValueType
	Flags              AttrFlags
	AllowedObjectTypes []ObjectType
	AllowNull          bool
	EnumValues         []int32
	Default            AttrValue
	// HasDefault false means the attribute is absent until set
	HasDefault bool
}

// IsCreateAndSet attribute can be set after creation
func (md *AttrMetadata) IsCreateAndSet() bool {
	return md.Flags&AttrFlagCreateAndSet != 0
}

// IsReadOnly attribute
func (md *AttrMetadata) IsReadOnly() bool {
	return md.Flags&AttrFlagReadOnly != 0
}

// IsMandatoryOnCreate attribute
func (md *AttrMetadata) IsMandatoryOnCreate() bool {
	return md.Flags&AttrFlagMandatoryOnCreate != 0
}

// attrRange is the sentinel bracketed standard range and the custom range
type attrRange struct {
	start, end             AttrID
	customStart, customEnd AttrID
}

type metadataDB struct {
	mu     sync.RWMutex
	ranges map[ObjectType]attrRange
	attrs  map[ObjectType]map[AttrID]*AttrMetadata
}

var metaDB = metadataDB{
	ranges: make(map[ObjectType]attrRange),
	attrs:  make(map[ObjectType]map[AttrID]*AttrMetadata),
}

func registerObjectRange(t ObjectType, r attrRange) {
	metaDB.mu.Lock()
	defer metaDB.mu.Unlock()
	metaDB.ranges[t] = r
	if metaDB.attrs[t] == nil {
		metaDB.attrs[t] = make(map[AttrID]*AttrMetadata)
	}
}

func registerAttr(md *AttrMetadata) {
	metaDB.mu.Lock()
	defer metaDB.mu.Unlock()
	r := metaDB.ranges[md.ObjectType]
	if md.AttrID < r.start || md.AttrID >= r.end {
		panic(fmt.Sprintf("sai: %s outside standard range of %v", md.Name, md.ObjectType))
	}
	metaDB.attrs[md.ObjectType][md.AttrID] = md
}

// RegisterCustomAttr add a vendor attribute inside the custom range of its object type
func RegisterCustomAttr(md AttrMetadata) error {
	metaDB.mu.Lock()
	defer metaDB.mu.Unlock()
	r, ok := metaDB.ranges[md.ObjectType]
	if !ok {
		return fmt.Errorf("custom attr %s: unknown object type %v", md.Name, md.ObjectType)
	}
	if md.AttrID < r.customStart || md.AttrID >= r.customEnd {
		return fmt.Errorf("custom attr %s: id 0x%x outside custom range [0x%x, 0x%x)",
			md.Name, md.AttrID, r.customStart, r.customEnd)
	}
	if _, exist := metaDB.attrs[md.ObjectType][md.AttrID]; exist {
		return fmt.Errorf("custom attr %s: id 0x%x already registered", md.Name, md.AttrID)
	}
	metaDB.attrs[md.ObjectType][md.AttrID] = &md
	return nil
}

// UnRegisterCustomAttr remove a vendor attribute
func UnRegisterCustomAttr(t ObjectType, id AttrID) {
	metaDB.mu.Lock()
	defer metaDB.mu.Unlock()
	r := metaDB.ranges[t]
	if id < r.customStart || id >= r.customEnd {
		return
	}
	delete(metaDB.attrs[t], id)
}

// GetAttrMetadata returns nil when id is not known for t
func GetAttrMetadata(t ObjectType, id AttrID) *AttrMetadata {
	metaDB.mu.RLock()
	defer metaDB.mu.RUnlock()
	return metaDB.attrs[t][id]
}

// ListAttrMetadata returns metadata of t ordered by attribute id
func ListAttrMetadata(t ObjectType) []*AttrMetadata {
	metaDB.mu.RLock()
	defer metaDB.mu.RUnlock()
	mds := make([]*AttrMetadata, 0, len(metaDB.attrs[t]))
	for _, md := range metaDB.attrs[t] {
		mds = append(mds, md)
	}
	sort.Slice(mds, func(i, j int) bool { return mds[i].AttrID < mds[j].AttrID })
	return mds
}

// IsStandardAttr reports START <= id < END for t
func IsStandardAttr(t ObjectType, id AttrID) bool {
	metaDB.mu.RLock()
	r, ok := metaDB.ranges[t]
	metaDB.mu.RUnlock()
	return ok && id >= r.start && id < r.end
}

// IsCustomAttr reports CUSTOM_RANGE_START <= id < CUSTOM_RANGE_END for t
func IsCustomAttr(t ObjectType, id AttrID) bool {
	metaDB.mu.RLock()
	r, ok := metaDB.ranges[t]
	metaDB.mu.RUnlock()
	return ok && id >= r.customStart && id < r.customEnd
}

// AttrName for logging
func AttrName(t ObjectType, id AttrID) string {
	if md := GetAttrMetadata(t, id); md != nil {
		return md.Name
	}
	return fmt.Sprintf("%v_ATTR_0x%x", t, int32(id))
}

// lookupAttr map an unknown tag to its status
func lookupAttr(t ObjectType, id AttrID, index int) (*AttrMetadata, error) {
	if md := GetAttrMetadata(t, id); md != nil {
		return md, nil
	}
	if IsCustomAttr(t, id) {
		return nil, StatusAttrNotSupported(index)
	}
	return nil, StatusUnknownAttribute(index)
}

// ValidateValue check a value against its metadata,
// object existence is left to the driver
func ValidateValue(md *AttrMetadata, v AttrValue) bool {
	switch md.ValueType {
	case ValueTypeObjectID:
		if v.OID == NullObjectID {
			return md.AllowNull
		}
		t := ObjectTypeQuery(v.OID)
		for _, allowed := range md.AllowedObjectTypes {
			if t == allowed {
				return true
			}
		}
		return false
	case ValueTypeIPAddress:
		return v.IP.To4() != nil || len(v.IP) == net.IPv6len
	case ValueTypeInt32:
		if len(md.EnumValues) == 0 {
			return true
		}
		for _, e := range md.EnumValues {
			if v.S32 == e {
				return true
			}
		}
		return false
	}
	return true
}

// ValidateCreate check a create attribute list of object type t
func ValidateCreate(t ObjectType, attrs []Attribute) error {
	seen := make(map[AttrID]bool, len(attrs))
	for i, attr := range attrs {
		md, err := lookupAttr(t, attr.ID, i)
		if err != nil {
			return err
		}
		if seen[attr.ID] {
			return StatusInvalidParameter
		}
		seen[attr.ID] = true
		if md.IsReadOnly() {
			return StatusInvalidAttribute(i)
		}
		if !ValidateValue(md, attr.Value) {
			return StatusInvalidAttrValue(i)
		}
	}
	for _, md := range ListAttrMetadata(t) {
		if md.IsMandatoryOnCreate() && !seen[md.AttrID] {
			return StatusMandatoryAttributeMissing
		}
	}
	return nil
}

// ValidateSet check a set attribute of object type t
func ValidateSet(t ObjectType, attr Attribute) error {
	md, err := lookupAttr(t, attr.ID, 0)
	if err != nil {
		return err
	}
	if !md.IsCreateAndSet() {
		return StatusInvalidAttribute(0)
	}
	if !ValidateValue(md, attr.Value) {
		return StatusInvalidAttrValue(0)
	}
	return nil
}

// ValidateGet check a get attribute list of object type t
func ValidateGet(t ObjectType, attrs []Attribute) error {
	for i, attr := range attrs {
		if _, err := lookupAttr(t, attr.ID, i); err != nil {
			return err
		}
	}
	return nil
}
