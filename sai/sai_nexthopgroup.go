package sai

// next hop group attr list
const (
	NextHopGroupAttrStart AttrID = 0

	// NextHopGroupAttrType int32 NextHopGroupType, create only
	NextHopGroupAttrType AttrID = NextHopGroupAttrStart

	NextHopGroupAttrEnd AttrID = 1

	NextHopGroupAttrCustomRangeStart AttrID = 0x10000000
	NextHopGroupAttrCustomRangeEnd   AttrID = NextHopGroupAttrCustomRangeStart + 1
)

// next hop group types
const (
	NextHopGroupTypeECMP int32 = iota
	NextHopGroupTypeProtection
)

// NextHopGroupAPI is the next hop group method table
type NextHopGroupAPI interface {
	CreateNextHopGroup(switchID ObjectID, attrs []Attribute) (ObjectID, error)
	RemoveNextHopGroup(groupID ObjectID) error
	SetNextHopGroupAttribute(groupID ObjectID, attr Attribute) error
	GetNextHopGroupAttribute(groupID ObjectID, attrs []Attribute) error
}

func init() {
	registerObjectRange(ObjectTypeNextHopGroup, attrRange{
		start:       NextHopGroupAttrStart,
		end:         NextHopGroupAttrEnd,
		customStart: NextHopGroupAttrCustomRangeStart,
		customEnd:   customBandEnd,
	})
	registerAttr(&AttrMetadata{
		ObjectType: ObjectTypeNextHopGroup,
		AttrID:     NextHopGroupAttrType,
		Name:       "SAI_NEXT_HOP_GROUP_ATTR_TYPE",
		ValueType:  ValueTypeInt32,
		Flags:      AttrFlagCreateOnly,
		EnumValues: []int32{NextHopGroupTypeECMP, NextHopGroupTypeProtection},
		Default:    AttrValue{S32: NextHopGroupTypeECMP},
		HasDefault: true,
	})
}
