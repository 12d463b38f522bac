package vs

import (
	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/sai"
)

type nextHopGroupAPI struct {
	d *Driver
}

func (api *nextHopGroupAPI) CreateNextHopGroup(switchID sai.ObjectID, attrs []sai.Attribute) (groupID sai.ObjectID, err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHopGroup, "create", err) }()

	groupID, err = api.d.createObject(sai.ObjectTypeNextHopGroup, switchID, attrs)
	if err != nil {
		log.Warning("%s create next hop group on %v failed: %v\n", log.ModuleDriver, switchID, err)
		return sai.NullObjectID, err
	}
	log.Info("%s create next hop group %v [%s]\n", log.ModuleDriver, groupID,
		sai.SerializeAttrs(sai.ObjectTypeNextHopGroup, attrs))
	return groupID, nil
}

func (api *nextHopGroupAPI) RemoveNextHopGroup(groupID sai.ObjectID) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHopGroup, "remove", err) }()

	if err = api.d.removeObject(sai.ObjectTypeNextHopGroup, groupID); err != nil {
		log.Warning("%s remove next hop group %v failed: %v\n", log.ModuleDriver, groupID, err)
		return err
	}
	log.Info("%s remove next hop group %v\n", log.ModuleDriver, groupID)
	return nil
}

func (api *nextHopGroupAPI) SetNextHopGroupAttribute(groupID sai.ObjectID, attr sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHopGroup, "set", err) }()

	return api.d.setAttribute(sai.ObjectTypeNextHopGroup, groupID, attr)
}

func (api *nextHopGroupAPI) GetNextHopGroupAttribute(groupID sai.ObjectID, attrs []sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APINextHopGroup, "get", err) }()

	return api.d.getAttributes(sai.ObjectTypeNextHopGroup, groupID, attrs)
}
