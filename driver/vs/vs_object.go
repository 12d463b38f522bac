package vs

import (
	"sort"

	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/lib/warmboot"
	"github.com/cn-pmlabs/gosai/sai"
)

type vsObject struct {
	oid      sai.ObjectID
	objType  sai.ObjectType
	switchID sai.ObjectID
	attrs    map[sai.AttrID]sai.AttrValue
	// refs taken when committed or last set, released as recorded
	refs []sai.ObjectID
	// refCount counts live objects referencing this one,
	// a switch also counts its children
	refCount int
}

type switchState struct {
	index     uint8
	nextIndex map[sai.ObjectType]uint64
	used      map[sai.ObjectType]int
}

func newSwitchState(idx uint8) *switchState {
	return &switchState{
		index:     idx,
		nextIndex: make(map[sai.ObjectType]uint64),
		used:      make(map[sai.ObjectType]int),
	}
}

func (o *vsObject) record() warmboot.Record {
	rec := warmboot.Record{
		OID:      o.oid,
		Type:     o.objType,
		SwitchID: o.switchID,
	}
	for id, v := range o.attrs {
		if sai.GetAttrMetadata(o.objType, id) == nil {
			continue
		}
		rec.Attrs = append(rec.Attrs, sai.Attribute{ID: id, Value: v})
	}
	sort.Slice(rec.Attrs, func(i, j int) bool { return rec.Attrs[i].ID < rec.Attrs[j].ID })
	return rec
}

// references returns the object ids held by the attributes of o
func (o *vsObject) references() []sai.ObjectID {
	var refs []sai.ObjectID
	for id, v := range o.attrs {
		if isReference(o.objType, id, v) {
			refs = append(refs, v.OID)
		}
	}
	return refs
}

func isReference(t sai.ObjectType, id sai.AttrID, v sai.AttrValue) bool {
	md := sai.GetAttrMetadata(t, id)
	return md != nil && md.ValueType == sai.ValueTypeObjectID && v.OID != sai.NullObjectID
}

func defaultAttrs(t sai.ObjectType) map[sai.AttrID]sai.AttrValue {
	attrs := make(map[sai.AttrID]sai.AttrValue)
	for _, md := range sai.ListAttrMetadata(t) {
		if md.HasDefault {
			attrs[md.AttrID] = md.Default.Clone()
		}
	}
	return attrs
}

// checkReferences every object id value must name a live object of the same switch
func (d *Driver) checkReferences(t sai.ObjectType, switchID sai.ObjectID, attrs []sai.Attribute) error {
	for i, attr := range attrs {
		if !isReference(t, attr.ID, attr.Value) {
			continue
		}
		target, ok := d.objects[attr.Value.OID]
		if !ok || target.switchID != switchID {
			return sai.StatusInvalidAttrValue(i)
		}
	}
	return nil
}

func (d *Driver) journalSave(obj *vsObject) error {
	if d.journal == nil {
		return nil
	}
	if err := d.journal.SaveObject(obj.record()); err != nil {
		log.Error("%s journal save %v failed: %v\n", log.ModuleDriver, obj.oid, err)
		return sai.StatusFailure
	}
	return nil
}

func (d *Driver) journalDelete(oid sai.ObjectID) error {
	if d.journal == nil {
		return nil
	}
	if err := d.journal.DeleteObject(oid); err != nil {
		log.Error("%s journal delete %v failed: %v\n", log.ModuleDriver, oid, err)
		return sai.StatusFailure
	}
	return nil
}

// lookupLocked returns the live object oid of type t
func (d *Driver) lookupLocked(t sai.ObjectType, oid sai.ObjectID) (*vsObject, error) {
	obj, ok := d.objects[oid]
	if !ok {
		return nil, sai.StatusInvalidObjectID
	}
	if obj.objType != t {
		return nil, sai.StatusInvalidObjectType
	}
	return obj, nil
}

// commitLocked insert obj and take its references
func (d *Driver) commitLocked(obj *vsObject) {
	d.objects[obj.oid] = obj
	obj.refs = obj.references()
	for _, ref := range obj.refs {
		d.objects[ref].refCount++
	}
	if obj.objType != sai.ObjectTypeSwitch {
		d.objects[obj.switchID].refCount++
		d.switches[obj.switchID].used[obj.objType]++
	}
	d.metrics.SetObjects(obj.objType, d.countLocked(obj.objType))
}

// releaseLocked delete obj and drop its references
func (d *Driver) releaseLocked(obj *vsObject) {
	delete(d.objects, obj.oid)
	for _, ref := range obj.refs {
		if target, ok := d.objects[ref]; ok {
			target.refCount--
		}
	}
	if obj.objType == sai.ObjectTypeSwitch {
		delete(d.switches, obj.oid)
	} else {
		if sw, ok := d.objects[obj.switchID]; ok {
			sw.refCount--
		}
		if sw, ok := d.switches[obj.switchID]; ok {
			sw.used[obj.objType]--
		}
	}
	d.metrics.SetObjects(obj.objType, d.countLocked(obj.objType))
}

func (d *Driver) createObject(t sai.ObjectType, switchID sai.ObjectID, attrs []sai.Attribute) (sai.ObjectID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sw, ok := d.switches[switchID]
	if !ok {
		return sai.NullObjectID, sai.StatusInvalidObjectID
	}
	if err := sai.ValidateCreate(t, attrs); err != nil {
		return sai.NullObjectID, err
	}
	if err := d.checkReferences(t, switchID, attrs); err != nil {
		return sai.NullObjectID, err
	}
	index := sw.nextIndex[t] + 1
	if sw.used[t] >= d.capacity.of(t) || index > sai.MaxObjectIndex {
		return sai.NullObjectID, sai.StatusInsufficientResources
	}

	obj := &vsObject{
		oid:      sai.NewObjectID(t, sw.index, index),
		objType:  t,
		switchID: switchID,
		attrs:    defaultAttrs(t),
	}
	for _, attr := range attrs {
		obj.attrs[attr.ID] = attr.Value.Clone()
	}
	if err := d.journalSave(obj); err != nil {
		return sai.NullObjectID, err
	}

	sw.nextIndex[t] = index
	d.commitLocked(obj)
	return obj.oid, nil
}

func (d *Driver) removeObject(t sai.ObjectType, oid sai.ObjectID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	obj, err := d.lookupLocked(t, oid)
	if err != nil {
		return err
	}
	if obj.refCount > 0 {
		return sai.StatusObjectInUse
	}
	if err := d.journalDelete(oid); err != nil {
		return err
	}
	d.releaseLocked(obj)
	return nil
}

func (d *Driver) setAttribute(t sai.ObjectType, oid sai.ObjectID, attr sai.Attribute) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	obj, err := d.lookupLocked(t, oid)
	if err != nil {
		return err
	}
	if err := sai.ValidateSet(t, attr); err != nil {
		return err
	}
	if err := d.checkReferences(t, obj.switchID, []sai.Attribute{attr}); err != nil {
		return err
	}

	attrs := make(map[sai.AttrID]sai.AttrValue, len(obj.attrs)+1)
	for id, v := range obj.attrs {
		attrs[id] = v
	}
	attrs[attr.ID] = attr.Value.Clone()
	updated := *obj
	updated.attrs = attrs
	if err := d.journalSave(&updated); err != nil {
		return err
	}

	refs := updated.references()
	for _, ref := range obj.refs {
		if target, ok := d.objects[ref]; ok {
			target.refCount--
		}
	}
	for _, ref := range refs {
		d.objects[ref].refCount++
	}
	obj.attrs = attrs
	obj.refs = refs
	return nil
}

// getAttributes validates every slot before writing any of them
func (d *Driver) getAttributes(t sai.ObjectType, oid sai.ObjectID, attrs []sai.Attribute) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	obj, err := d.lookupLocked(t, oid)
	if err != nil {
		return err
	}
	if err := sai.ValidateGet(t, attrs); err != nil {
		return err
	}

	values := make([]sai.AttrValue, len(attrs))
	for i, attr := range attrs {
		if t == sai.ObjectTypeSwitch {
			if table, ok := availableAttrs[attr.ID]; ok {
				values[i] = sai.AttrValue{U32: d.availableLocked(oid, table)}
				continue
			}
		}
		v, ok := obj.attrs[attr.ID]
		if !ok {
			// custom attributes registered after the object was created
			md := sai.GetAttrMetadata(t, attr.ID)
			if md == nil || !md.HasDefault {
				return sai.StatusItemNotFound
			}
			v = md.Default
		}
		values[i] = v.Clone()
	}
	for i := range attrs {
		attrs[i].Value = values[i]
	}
	return nil
}

// availableLocked entries left in table of switchID, zero when a warm
// restart kept more objects than the current capacity
func (d *Driver) availableLocked(switchID sai.ObjectID, t sai.ObjectType) uint32 {
	left := d.capacity.of(t) - d.switches[switchID].used[t]
	if left < 0 {
		return 0
	}
	return uint32(left)
}
