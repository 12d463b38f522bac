package sai

// next hop attr list
const (
	NextHopAttrStart AttrID = 0

	// NextHopAttrType int32 NextHopType, create only, default NextHopTypeIP
	NextHopAttrType AttrID = NextHopAttrStart

	// NextHopAttrIP ip address, mandatory on create, create only
	NextHopAttrIP AttrID = 1

	NextHopAttrEnd AttrID = 2

	NextHopAttrCustomRangeStart AttrID = 0x10000000
	NextHopAttrCustomRangeEnd   AttrID = NextHopAttrCustomRangeStart + 1
)

// next hop types
const (
	NextHopTypeIP int32 = iota
)

// NextHopAPI is the next hop method table
type NextHopAPI interface {
	CreateNextHop(switchID ObjectID, attrs []Attribute) (ObjectID, error)
	RemoveNextHop(nextHopID ObjectID) error
	SetNextHopAttribute(nextHopID ObjectID, attr Attribute) error
	GetNextHopAttribute(nextHopID ObjectID, attrs []Attribute) error
}

func init() {
	registerObjectRange(ObjectTypeNextHop, attrRange{
		start:       NextHopAttrStart,
		end:         NextHopAttrEnd,
		customStart: NextHopAttrCustomRangeStart,
		customEnd:   customBandEnd,
	})
	registerAttr(&AttrMetadata{
		ObjectType: ObjectTypeNextHop,
		AttrID:     NextHopAttrType,
		Name:       "SAI_NEXT_HOP_ATTR_TYPE",
		ValueType:  ValueTypeInt32,
		Flags:      AttrFlagCreateOnly,
		EnumValues: []int32{NextHopTypeIP},
		Default:    AttrValue{S32: NextHopTypeIP},
		HasDefault: true,
	})
	registerAttr(&AttrMetadata{
		ObjectType: ObjectTypeNextHop,
		AttrID:     NextHopAttrIP,
		Name:       "SAI_NEXT_HOP_ATTR_IP",
		ValueType:  ValueTypeIPAddress,
		Flags:      AttrFlagMandatoryOnCreate | AttrFlagCreateOnly,
	})
}
