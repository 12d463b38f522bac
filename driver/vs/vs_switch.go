package vs

import (
	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/lib/warmboot"
	"github.com/cn-pmlabs/gosai/sai"
)

type switchAPI struct {
	d *Driver
}

func (api *switchAPI) CreateSwitch(attrs []sai.Attribute) (switchID sai.ObjectID, err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APISwitch, "create", err) }()

	switchID, err = api.d.createSwitch(attrs)
	if err != nil {
		log.Warning("%s create switch [%s] failed: %v\n", log.ModuleDriver,
			sai.SerializeAttrs(sai.ObjectTypeSwitch, attrs), err)
		return sai.NullObjectID, err
	}
	log.Info("%s create switch %v [%s]\n", log.ModuleDriver, switchID,
		sai.SerializeAttrs(sai.ObjectTypeSwitch, attrs))
	return switchID, nil
}

func (api *switchAPI) RemoveSwitch(switchID sai.ObjectID) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APISwitch, "remove", err) }()

	if err = api.d.removeObject(sai.ObjectTypeSwitch, switchID); err != nil {
		log.Warning("%s remove switch %v failed: %v\n", log.ModuleDriver, switchID, err)
		return err
	}
	log.Info("%s remove switch %v\n", log.ModuleDriver, switchID)
	return nil
}

func (api *switchAPI) SetSwitchAttribute(switchID sai.ObjectID, attr sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APISwitch, "set", err) }()

	return api.d.setAttribute(sai.ObjectTypeSwitch, switchID, attr)
}

func (api *switchAPI) GetSwitchAttribute(switchID sai.ObjectID, attrs []sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APISwitch, "get", err) }()

	return api.d.getAttributes(sai.ObjectTypeSwitch, switchID, attrs)
}

func (d *Driver) freeSwitchIndexLocked() (uint8, bool) {
	for i := 0; i < maxSwitches; i++ {
		if _, ok := d.switches[sai.SwitchObjectID(uint8(i))]; !ok {
			return uint8(i), true
		}
	}
	return 0, false
}

// createSwitch takes the lowest free switch index, a warm restart
// reloads every journaled object of that switch
func (d *Driver) createSwitch(attrs []sai.Attribute) (sai.ObjectID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := sai.ValidateCreate(sai.ObjectTypeSwitch, attrs); err != nil {
		return sai.NullObjectID, err
	}
	warm := false
	for _, attr := range attrs {
		if attr.ID == sai.SwitchAttrRestartWarm {
			warm = attr.Value.Bool
		}
	}

	idx, ok := d.freeSwitchIndexLocked()
	if !ok {
		return sai.NullObjectID, sai.StatusInsufficientResources
	}
	switchID := sai.SwitchObjectID(idx)

	var recs []warmboot.Record
	if warm {
		if d.journal == nil {
			return sai.NullObjectID, sai.StatusNotSupported
		}
		var err error
		recs, err = d.journal.LoadObjects(switchID)
		if err != nil {
			log.Error("%s warm restart of %v: %v\n", log.ModuleDriver, switchID, err)
			return sai.NullObjectID, sai.StatusFailure
		}
	} else if d.journal != nil {
		// cold boot, drop whatever a previous run left for this index
		if err := d.journal.DeleteSwitch(switchID); err != nil {
			log.Error("%s cold boot of %v: %v\n", log.ModuleDriver, switchID, err)
			return sai.NullObjectID, sai.StatusFailure
		}
	}

	obj := &vsObject{
		oid:      switchID,
		objType:  sai.ObjectTypeSwitch,
		switchID: switchID,
		attrs:    defaultAttrs(sai.ObjectTypeSwitch),
	}
	if err := d.journalSave(obj); err != nil {
		return sai.NullObjectID, err
	}
	d.switches[switchID] = newSwitchState(idx)
	d.commitLocked(obj)

	if warm {
		d.restoreLocked(switchID, recs)
	}
	return switchID, nil
}

// restoreLocked rebuild journaled objects, recs are ordered so
// that referenced objects are restored first. Objects that no longer
// fit the table capacity or lost a reference are dropped from the journal.
func (d *Driver) restoreLocked(switchID sai.ObjectID, recs []warmboot.Record) {
	sw := d.switches[switchID]
	restored := 0
	for _, rec := range recs {
		if rec.Type == sai.ObjectTypeSwitch || rec.SwitchID != switchID {
			continue
		}
		if _, exist := d.objects[rec.OID]; exist {
			log.Warning("%s warm restart: duplicate object %v\n", log.ModuleDriver, rec.OID)
			continue
		}
		obj := &vsObject{
			oid:      rec.OID,
			objType:  rec.Type,
			switchID: switchID,
			attrs:    defaultAttrs(rec.Type),
		}
		for _, attr := range rec.Attrs {
			obj.attrs[attr.ID] = attr.Value
		}
		if missing := d.missingReference(obj); missing != sai.NullObjectID {
			log.Error("%s warm restart: %v references missing %v, skipped\n", log.ModuleDriver, rec.OID, missing)
			_ = d.journalDelete(rec.OID)
			continue
		}
		if sw.used[rec.Type] >= d.capacity.of(rec.Type) {
			log.Error("%s warm restart: %v over %v capacity %d, skipped\n", log.ModuleDriver,
				rec.OID, rec.Type, d.capacity.of(rec.Type))
			_ = d.journalDelete(rec.OID)
			continue
		}

		d.commitLocked(obj)
		if idx := rec.OID.Index(); idx > sw.nextIndex[rec.Type] {
			sw.nextIndex[rec.Type] = idx
		}
		restored++
	}
	log.Info("%s warm restart of %v restored %d objects\n", log.ModuleDriver, switchID, restored)
}

func (d *Driver) missingReference(obj *vsObject) sai.ObjectID {
	for _, ref := range obj.references() {
		if _, ok := d.objects[ref]; !ok {
			return ref
		}
	}
	return sai.NullObjectID
}
