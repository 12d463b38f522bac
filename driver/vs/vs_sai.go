package vs

import (
	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/sai"
)

// APIQuery returns the method table of api
func (d *Driver) APIQuery(api sai.APIID) (interface{}, error) {
	table, ok := d.ModuleAPIs[api]
	if !ok || table == nil {
		log.Warning("%s unsupported api %v\n", log.ModuleDriver, api)
		return nil, sai.StatusNotImplemented
	}
	return table, nil
}

// ListObjects returns the live objects of type t on switchID
func (d *Driver) ListObjects(switchID sai.ObjectID, t sai.ObjectType) []sai.ObjectID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var oids []sai.ObjectID
	for oid, obj := range d.objects {
		if obj.objType == t && obj.switchID == switchID {
			oids = append(oids, oid)
		}
	}
	return oids
}

// ObjectCount returns the number of live objects of type t on every switch
func (d *Driver) ObjectCount(t sai.ObjectType) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.countLocked(t)
}

func (d *Driver) countLocked(t sai.ObjectType) int {
	n := 0
	for _, obj := range d.objects {
		if obj.objType == t {
			n++
		}
	}
	return n
}
