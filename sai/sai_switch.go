package sai

// switch attr list
const (
	SwitchAttrStart AttrID = 0

	// SwitchAttrRestartWarm bool, create only, default false
	SwitchAttrRestartWarm AttrID = SwitchAttrStart

	// SwitchAttrAvailableFECEntry uint32, read only
	SwitchAttrAvailableFECEntry AttrID = 1

	// SwitchAttrAvailableNextHopEntry uint32, read only
	SwitchAttrAvailableNextHopEntry AttrID = 2

	// SwitchAttrAvailableNextHopGroupEntry uint32, read only
	SwitchAttrAvailableNextHopGroupEntry AttrID = 3

	SwitchAttrEnd AttrID = 4

	SwitchAttrCustomRangeStart AttrID = 0x10000000
	SwitchAttrCustomRangeEnd   AttrID = SwitchAttrCustomRangeStart + 1
)

// SwitchAPI is the switch method table
type SwitchAPI interface {
	CreateSwitch(attrs []Attribute) (ObjectID, error)
	RemoveSwitch(switchID ObjectID) error
	SetSwitchAttribute(switchID ObjectID, attr Attribute) error
	GetSwitchAttribute(switchID ObjectID, attrs []Attribute) error
}

// SwitchObjectID is the id of the switch with index idx
func SwitchObjectID(idx uint8) ObjectID {
	return NewObjectID(ObjectTypeSwitch, idx, uint64(idx))
}

func init() {
	registerObjectRange(ObjectTypeSwitch, attrRange{
		start:       SwitchAttrStart,
		end:         SwitchAttrEnd,
		customStart: SwitchAttrCustomRangeStart,
		customEnd:   customBandEnd,
	})
	registerAttr(&AttrMetadata{
		ObjectType: ObjectTypeSwitch,
		AttrID:     SwitchAttrRestartWarm,
		Name:       "SAI_SWITCH_ATTR_RESTART_WARM",
		ValueType:  ValueTypeBool,
		Flags:      AttrFlagCreateOnly,
		Default:    AttrValue{Bool: false},
		HasDefault: true,
	})
	for id, name := range map[AttrID]string{
		SwitchAttrAvailableFECEntry:          "SAI_SWITCH_ATTR_AVAILABLE_FEC_ENTRY",
		SwitchAttrAvailableNextHopEntry:      "SAI_SWITCH_ATTR_AVAILABLE_NEXT_HOP_ENTRY",
		SwitchAttrAvailableNextHopGroupEntry: "SAI_SWITCH_ATTR_AVAILABLE_NEXT_HOP_GROUP_ENTRY",
	} {
		registerAttr(&AttrMetadata{
			ObjectType: ObjectTypeSwitch,
			AttrID:     id,
			Name:       name,
			ValueType:  ValueTypeUint32,
			Flags:      AttrFlagReadOnly,
		})
	}
}
