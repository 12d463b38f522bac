package vs

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cn-pmlabs/gosai/sai"
)

const backupFECAttr = sai.FECAttrCustomRangeStart

func registerBackupFEC(t *testing.T) {
	t.Helper()
	require.NoError(t, sai.RegisterCustomAttr(sai.AttrMetadata{
		ObjectType:         sai.ObjectTypeFEC,
		AttrID:             backupFECAttr,
		Name:               "VENDOR_FEC_ATTR_BACKUP_FEC_ID",
		ValueType:          sai.ValueTypeObjectID,
		Flags:              sai.AttrFlagCreateAndSet,
		AllowedObjectTypes: []sai.ObjectType{sai.ObjectTypeFEC},
		AllowNull:          true,
		Default:            sai.AttrValue{OID: sai.NullObjectID},
		HasDefault:         true,
	}))
	t.Cleanup(func() { sai.UnRegisterCustomAttr(sai.ObjectTypeFEC, backupFECAttr) })
}

func TestCreateFECDefaults(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)

	fec, err := a.fec.CreateFEC(sw, nil)
	require.NoError(t, err)
	assert.Equal(t, sai.ObjectTypeFEC, sai.ObjectTypeQuery(fec))
	assert.Equal(t, sw, sai.SwitchIDQuery(fec))
	assert.Equal(t, sai.NullObjectID, a.fecNextHop(t, fec))
}

func TestCreateFECWithNextHop(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")

	fec, err := a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, nh)})
	require.NoError(t, err)
	assert.Equal(t, nh, a.fecNextHop(t, fec))
}

func TestCreateFECErrors(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")
	other := a.createSwitch(t)
	foreign := a.createNextHop(t, other, "10.0.0.2")

	tests := []struct {
		name     string
		switchID sai.ObjectID
		attrs    []sai.Attribute
		want     sai.Status
	}{
		{"invalid switch", sai.NewObjectID(sai.ObjectTypeSwitch, 9, 9), nil, sai.StatusInvalidObjectID},
		{"unknown tag", sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, nh), sai.OIDAttr(sai.FECAttrEnd, nh)}, sai.StatusUnknownAttribute(1)},
		{"unregistered custom tag", sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrCustomRangeStart+1, nh)}, sai.StatusAttrNotSupported(0)},
		{"missing next hop", sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, sai.NewObjectID(sai.ObjectTypeNextHop, 0, 99))}, sai.StatusInvalidAttrValue(0)},
		{"wrong object type", sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, sw)}, sai.StatusInvalidAttrValue(0)},
		{"next hop of another switch", sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, foreign)}, sai.StatusInvalidAttrValue(0)},
		{"duplicate tag", sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, nh), sai.OIDAttr(sai.FECAttrNextHopID, nh)}, sai.StatusInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fec, err := a.fec.CreateFEC(tt.switchID, tt.attrs)
			assert.Equal(t, tt.want, err)
			assert.Equal(t, sai.NullObjectID, fec)
			assert.Equal(t, 0, a.d.ObjectCount(sai.ObjectTypeFEC))
		})
	}
}

func TestCreateFECCapacity(t *testing.T) {
	a := newAPIs(t, Config{Capacity: Capacity{FEC: 2}})
	sw := a.createSwitch(t)
	for i := 0; i < 2; i++ {
		_, err := a.fec.CreateFEC(sw, nil)
		require.NoError(t, err)
	}
	_, err := a.fec.CreateFEC(sw, nil)
	assert.Equal(t, sai.StatusInsufficientResources, err)
}

func TestRemoveFEC(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")
	fec, err := a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, nh)})
	require.NoError(t, err)

	assert.Equal(t, sai.StatusObjectInUse, a.nh.RemoveNextHop(nh))
	require.NoError(t, a.fec.RemoveFEC(fec))
	assert.Equal(t, sai.StatusInvalidObjectID, a.fec.RemoveFEC(fec))
	assert.Equal(t, sai.StatusInvalidObjectID, a.fec.RemoveFEC(sai.NewObjectID(sai.ObjectTypeFEC, 0, 77)))
	assert.Equal(t, sai.StatusInvalidObjectType, a.fec.RemoveFEC(nh))
	assert.Equal(t, sai.StatusInvalidObjectID, a.fec.GetFECAttribute(fec, sai.GetAttrs(sai.FECAttrNextHopID)))
	assert.NoError(t, a.nh.RemoveNextHop(nh))
}

func TestRemoveFECInUse(t *testing.T) {
	registerBackupFEC(t)
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)

	primary, err := a.fec.CreateFEC(sw, nil)
	require.NoError(t, err)
	backup, err := a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(backupFECAttr, primary)})
	require.NoError(t, err)

	assert.Equal(t, sai.StatusObjectInUse, a.fec.RemoveFEC(primary))
	// custom tags never alias NEXT_HOP_ID
	assert.Equal(t, sai.NullObjectID, a.fecNextHop(t, backup))

	require.NoError(t, a.fec.SetFECAttribute(backup, sai.OIDAttr(backupFECAttr, sai.NullObjectID)))
	assert.NoError(t, a.fec.RemoveFEC(primary))
}

func TestSetFECNextHop(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")
	group, err := a.nhg.CreateNextHopGroup(sw, nil)
	require.NoError(t, err)
	fec, err := a.fec.CreateFEC(sw, nil)
	require.NoError(t, err)

	for _, want := range []sai.ObjectID{nh, group, sai.NullObjectID, nh} {
		require.NoError(t, a.fec.SetFECAttribute(fec, sai.OIDAttr(sai.FECAttrNextHopID, want)))
		assert.Equal(t, want, a.fecNextHop(t, fec))
	}

	// the group lost its reference, the next hop holds one
	assert.NoError(t, a.nhg.RemoveNextHopGroup(group))
	assert.Equal(t, sai.StatusObjectInUse, a.nh.RemoveNextHop(nh))
}

func TestSetFECFailureKeepsValue(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")
	fec, err := a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, nh)})
	require.NoError(t, err)

	err = a.fec.SetFECAttribute(fec, sai.OIDAttr(sai.FECAttrNextHopID, sai.NewObjectID(sai.ObjectTypeNextHop, 0, 42)))
	assert.Equal(t, sai.StatusInvalidAttrValue(0), err)
	assert.Equal(t, nh, a.fecNextHop(t, fec))

	err = a.fec.SetFECAttribute(fec, sai.OIDAttr(sai.FECAttrEnd, nh))
	assert.Equal(t, sai.StatusUnknownAttribute(0), err)
	err = a.fec.SetFECAttribute(sai.NewObjectID(sai.ObjectTypeFEC, 0, 42), sai.OIDAttr(sai.FECAttrNextHopID, nh))
	assert.Equal(t, sai.StatusInvalidObjectID, err)
	assert.Equal(t, nh, a.fecNextHop(t, fec))
}

func TestGetFECAllOrNothing(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")
	fec, err := a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, nh)})
	require.NoError(t, err)

	sentinel := sai.NewObjectID(sai.ObjectTypeNextHop, 0, 1234)
	attrs := []sai.Attribute{
		sai.OIDAttr(sai.FECAttrNextHopID, sentinel),
		sai.OIDAttr(sai.FECAttrCustomRangeStart+3, sentinel),
	}
	assert.Equal(t, sai.StatusAttrNotSupported(1), a.fec.GetFECAttribute(fec, attrs))
	assert.Equal(t, sentinel, attrs[0].Value.OID)
	assert.Equal(t, sentinel, attrs[1].Value.OID)
}

func TestCustomFECAttr(t *testing.T) {
	registerBackupFEC(t)
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")
	primary, err := a.fec.CreateFEC(sw, nil)
	require.NoError(t, err)

	fec, err := a.fec.CreateFEC(sw, []sai.Attribute{
		sai.OIDAttr(sai.FECAttrNextHopID, nh),
		sai.OIDAttr(backupFECAttr, primary),
	})
	require.NoError(t, err)

	attrs := sai.GetAttrs(backupFECAttr, sai.FECAttrNextHopID)
	require.NoError(t, a.fec.GetFECAttribute(fec, attrs))
	assert.Equal(t, primary, attrs[0].Value.OID)
	assert.Equal(t, nh, attrs[1].Value.OID)

	// a next hop is not a valid backup FEC
	_, err = a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(backupFECAttr, nh)})
	assert.Equal(t, sai.StatusInvalidAttrValue(0), err)
}

func TestUnregisteredCustomAttrReleasesReference(t *testing.T) {
	registerBackupFEC(t)
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	nh := a.createNextHop(t, sw, "10.0.0.1")

	primary, err := a.fec.CreateFEC(sw, nil)
	require.NoError(t, err)
	removed, err := a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(backupFECAttr, primary)})
	require.NoError(t, err)
	updated, err := a.fec.CreateFEC(sw, []sai.Attribute{sai.OIDAttr(backupFECAttr, primary)})
	require.NoError(t, err)

	sai.UnRegisterCustomAttr(sai.ObjectTypeFEC, backupFECAttr)
	require.NoError(t, a.fec.RemoveFEC(removed))
	assert.Equal(t, sai.StatusObjectInUse, a.fec.RemoveFEC(primary))

	// a set drops the references of attributes no longer registered
	require.NoError(t, a.fec.SetFECAttribute(updated, sai.OIDAttr(sai.FECAttrNextHopID, nh)))
	assert.NoError(t, a.fec.RemoveFEC(primary))
	assert.Equal(t, sai.StatusObjectInUse, a.nh.RemoveNextHop(nh))
}

func TestCustomAttrDefaultOnExistingFEC(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	fec, err := a.fec.CreateFEC(sw, nil)
	require.NoError(t, err)

	registerBackupFEC(t)
	sentinel := sai.NewObjectID(sai.ObjectTypeFEC, 0, 99)
	attrs := []sai.Attribute{sai.OIDAttr(backupFECAttr, sentinel)}
	require.NoError(t, a.fec.GetFECAttribute(fec, attrs))
	assert.Equal(t, sai.NullObjectID, attrs[0].Value.OID)
}

func TestFECSetGetConcurrent(t *testing.T) {
	a := newAPIs(t, Config{})
	sw := a.createSwitch(t)
	fec, err := a.fec.CreateFEC(sw, nil)
	require.NoError(t, err)

	nextHops := make([]sai.ObjectID, 8)
	valid := map[sai.ObjectID]bool{}
	for i := range nextHops {
		nextHops[i] = a.createNextHop(t, sw, fmt.Sprintf("10.0.0.%d", i+1))
		valid[nextHops[i]] = true
	}

	var wg sync.WaitGroup
	for _, nh := range nextHops {
		wg.Add(1)
		go func(nh sai.ObjectID) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				assert.NoError(t, a.fec.SetFECAttribute(fec, sai.OIDAttr(sai.FECAttrNextHopID, nh)))
				attrs := sai.GetAttrs(sai.FECAttrNextHopID)
				assert.NoError(t, a.fec.GetFECAttribute(fec, attrs))
				assert.True(t, valid[attrs[0].Value.OID])
			}
		}(nh)
	}
	wg.Wait()

	last := nextHops[0]
	require.NoError(t, a.fec.SetFECAttribute(fec, sai.OIDAttr(sai.FECAttrNextHopID, last)))
	assert.Equal(t, last, a.fecNextHop(t, fec))

	// exactly one reference survived the concurrent sets
	for _, nh := range nextHops[1:] {
		assert.NoError(t, a.nh.RemoveNextHop(nh))
	}
	assert.Equal(t, sai.StatusObjectInUse, a.nh.RemoveNextHop(last))
}
