package sai

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFECAttrRanges(t *testing.T) {
	assert.Equal(t, FECAttrStart, FECAttrNextHopID)
	assert.Equal(t, FECAttrNextHopID+1, FECAttrEnd)
	assert.Equal(t, AttrID(0x10000000), FECAttrCustomRangeStart)

	assert.True(t, IsStandardAttr(ObjectTypeFEC, FECAttrNextHopID))
	assert.False(t, IsStandardAttr(ObjectTypeFEC, FECAttrEnd))
	assert.False(t, IsCustomAttr(ObjectTypeFEC, FECAttrEnd))
	assert.True(t, IsCustomAttr(ObjectTypeFEC, FECAttrCustomRangeStart))
	assert.True(t, IsCustomAttr(ObjectTypeFEC, FECAttrCustomRangeStart+0x100))
	assert.False(t, IsCustomAttr(ObjectTypeFEC, 0x20000000))
}

func TestFECNextHopMetadata(t *testing.T) {
	md := GetAttrMetadata(ObjectTypeFEC, FECAttrNextHopID)
	require.NotNil(t, md)
	assert.Equal(t, "SAI_FEC_ATTR_NEXT_HOP_ID", md.Name)
	assert.True(t, md.IsCreateAndSet())
	assert.False(t, md.IsMandatoryOnCreate())
	assert.True(t, md.AllowNull)
	assert.Equal(t, NullObjectID, md.Default.OID)
	assert.ElementsMatch(t, []ObjectType{ObjectTypeNextHop, ObjectTypeNextHopGroup}, md.AllowedObjectTypes)
}

func TestValidateCreate(t *testing.T) {
	nh := NewObjectID(ObjectTypeNextHop, 0, 1)

	assert.NoError(t, ValidateCreate(ObjectTypeFEC, nil))
	assert.NoError(t, ValidateCreate(ObjectTypeFEC, []Attribute{OIDAttr(FECAttrNextHopID, nh)}))
	assert.NoError(t, ValidateCreate(ObjectTypeFEC, []Attribute{OIDAttr(FECAttrNextHopID, NullObjectID)}))

	err := ValidateCreate(ObjectTypeFEC, []Attribute{OIDAttr(FECAttrNextHopID, NewObjectID(ObjectTypeFEC, 0, 1))})
	assert.Equal(t, StatusInvalidAttrValue(0), err)

	err = ValidateCreate(ObjectTypeFEC, []Attribute{OIDAttr(FECAttrNextHopID, nh), OIDAttr(FECAttrEnd, nh)})
	assert.Equal(t, StatusUnknownAttribute(1), err)

	err = ValidateCreate(ObjectTypeFEC, []Attribute{OIDAttr(FECAttrCustomRangeStart+5, nh)})
	assert.Equal(t, StatusAttrNotSupported(0), err)

	err = ValidateCreate(ObjectTypeFEC, []Attribute{OIDAttr(FECAttrNextHopID, nh), OIDAttr(FECAttrNextHopID, nh)})
	assert.Equal(t, StatusInvalidParameter, err)

	err = ValidateCreate(ObjectTypeNextHop, []Attribute{S32Attr(NextHopAttrType, NextHopTypeIP)})
	assert.Equal(t, StatusMandatoryAttributeMissing, err)

	err = ValidateCreate(ObjectTypeNextHop, []Attribute{IPAttr(NextHopAttrIP, net.ParseIP("10.0.0.1")), S32Attr(NextHopAttrType, 7)})
	assert.Equal(t, StatusInvalidAttrValue(1), err)

	err = ValidateCreate(ObjectTypeSwitch, []Attribute{{ID: SwitchAttrAvailableFECEntry}})
	assert.Equal(t, StatusInvalidAttribute(0), err)
}

func TestValidateSetAndGet(t *testing.T) {
	assert.NoError(t, ValidateSet(ObjectTypeFEC, OIDAttr(FECAttrNextHopID, NullObjectID)))
	assert.Equal(t, StatusInvalidAttribute(0), ValidateSet(ObjectTypeNextHop, IPAttr(NextHopAttrIP, net.ParseIP("10.0.0.2"))))
	assert.Equal(t, StatusUnknownAttribute(0), ValidateSet(ObjectTypeFEC, OIDAttr(FECAttrEnd, NullObjectID)))

	assert.NoError(t, ValidateGet(ObjectTypeFEC, GetAttrs(FECAttrNextHopID)))
	assert.Equal(t, StatusUnknownAttribute(1), ValidateGet(ObjectTypeFEC, GetAttrs(FECAttrNextHopID, FECAttrEnd)))
}

func TestRegisterCustomAttr(t *testing.T) {
	md := AttrMetadata{
		ObjectType: ObjectTypeFEC,
		AttrID:     FECAttrCustomRangeStart + 1,
		Name:       "VENDOR_FEC_ATTR_LABEL",
		ValueType:  ValueTypeUint32,
		Flags:      AttrFlagCreateAndSet,
		Default:    AttrValue{U32: 0},
		HasDefault: true,
	}
	require.NoError(t, RegisterCustomAttr(md))
	t.Cleanup(func() { UnRegisterCustomAttr(ObjectTypeFEC, md.AttrID) })

	assert.Error(t, RegisterCustomAttr(md))
	assert.NoError(t, ValidateCreate(ObjectTypeFEC, []Attribute{{ID: md.AttrID, Value: AttrValue{U32: 9}}}))
	assert.Equal(t, "VENDOR_FEC_ATTR_LABEL", AttrName(ObjectTypeFEC, md.AttrID))

	outside := md
	outside.AttrID = FECAttrEnd
	assert.Error(t, RegisterCustomAttr(outside))

	// standard attributes can not be removed
	UnRegisterCustomAttr(ObjectTypeFEC, FECAttrNextHopID)
	assert.NotNil(t, GetAttrMetadata(ObjectTypeFEC, FECAttrNextHopID))
}

func TestListAttrMetadataOrdered(t *testing.T) {
	mds := ListAttrMetadata(ObjectTypeSwitch)
	require.NotEmpty(t, mds)
	for i := 1; i < len(mds); i++ {
		assert.Less(t, mds[i-1].AttrID, mds[i].AttrID)
	}
}
