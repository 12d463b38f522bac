package sai

// FEC attr list
const (
	// FECAttrStart start of attributes
	FECAttrStart AttrID = 0

	// FECAttrNextHopID next hop or next hop group, create and set,
	// null allowed, default NullObjectID
	FECAttrNextHopID AttrID = FECAttrStart

	// FECAttrEnd end of attributes
	FECAttrEnd AttrID = FECAttrNextHopID + 1

	// FECAttrCustomRangeStart custom range base value
	FECAttrCustomRangeStart AttrID = 0x10000000

	// FECAttrCustomRangeEnd end of custom range base
	FECAttrCustomRangeEnd AttrID = FECAttrCustomRangeStart + 1
)

// customBandEnd bounds every custom range, vendor attributes are
// numbered from CUSTOM_RANGE_START up to the extensions base
const customBandEnd AttrID = 0x20000000

// FECAPI is the FEC method table
type FECAPI interface {
	// CreateFEC returns a new FEC on switchID, attrs may be empty
	CreateFEC(switchID ObjectID, attrs []Attribute) (ObjectID, error)
	RemoveFEC(fecID ObjectID) error
	SetFECAttribute(fecID ObjectID, attr Attribute) error
	// GetFECAttribute fill the value of every attribute in attrs
	GetFECAttribute(fecID ObjectID, attrs []Attribute) error
}

func init() {
	registerObjectRange(ObjectTypeFEC, attrRange{
		start:       FECAttrStart,
		end:         FECAttrEnd,
		customStart: FECAttrCustomRangeStart,
		customEnd:   customBandEnd,
	})
	registerAttr(&AttrMetadata{
		ObjectType:         ObjectTypeFEC,
		AttrID:             FECAttrNextHopID,
		Name:               "SAI_FEC_ATTR_NEXT_HOP_ID",
		ValueType:          ValueTypeObjectID,
		Flags:              AttrFlagCreateAndSet,
		AllowedObjectTypes: []ObjectType{ObjectTypeNextHop, ObjectTypeNextHopGroup},
		AllowNull:          true,
		Default:            AttrValue{OID: NullObjectID},
		HasDefault:         true,
	})
}
