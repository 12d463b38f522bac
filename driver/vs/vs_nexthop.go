package vs

import (
	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/sai"
)

type nextHopAPI struct {
	d *Driver
}

func (api *nextHopAPI) CreateNextHop(switchID sai.ObjectID, attrs []sai.Attribute) (nhID sai.ObjectID, err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHop, "create", err) }()

	nhID, err = api.d.createObject(sai.ObjectTypeNextHop, switchID, attrs)
	if err != nil {
		log.Warning("%s create next hop on %v [%s] failed: %v\n", log.ModuleDriver, switchID,
			sai.SerializeAttrs(sai.ObjectTypeNextHop, attrs), err)
		return sai.NullObjectID, err
	}
	log.Info("%s create next hop %v [%s]\n", log.ModuleDriver, nhID,
		sai.SerializeAttrs(sai.ObjectTypeNextHop, attrs))
	return nhID, nil
}

func (api *nextHopAPI) RemoveNextHop(nhID sai.ObjectID) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHop, "remove", err) }()

	if err = api.d.removeObject(sai.ObjectTypeNextHop, nhID); err != nil {
		log.Warning("%s remove next hop %v failed: %v\n", log.ModuleDriver, nhID, err)
		return err
	}
	log.Info("%s remove next hop %v\n", log.ModuleDriver, nhID)
	return nil
}

func (api *nextHopAPI) SetNextHopAttribute(nhID sai.ObjectID, attr sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHop, "set", err) }()

	return api.d.setAttribute(sai.ObjectTypeNextHop, nhID, attr)
}

func (api *nextHopAPI) GetNextHopAttribute(nhID sai.ObjectID, attrs []sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHop, "get", err) }()

	if err = api.d.getAttributes(sai.ObjectTypeNextHop, nhID, attrs); err != nil {
		log.Debug("%s get next hop %v failed: %v\n", log.ModuleDriver, nhID, err)
		return err
	}
	log.Debug("%s get next hop %v [%s]\n", log.ModuleDriver, nhID, sai.SerializeAttrs(sai.ObjectTypeNextHop, attrs))
	return nil
}
