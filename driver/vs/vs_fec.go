package vs

import (
	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/sai"
)

type fecAPI struct {
	d *Driver
}

func (api *fecAPI) CreateFEC(switchID sai.ObjectID, attrs []sai.Attribute) (fecID sai.ObjectID, err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APIFEC, "create", err) }()

	fecID, err = api.d.createObject(sai.ObjectTypeFEC, switchID, attrs)
	if err != nil {
		log.Warning("%s create FEC on %v [%s] failed: %v\n", log.ModuleDriver, switchID,
			sai.SerializeAttrs(sai.ObjectTypeFEC, attrs), err)
		return sai.NullObjectID, err
	}
	log.Info("%s create FEC %v on %v [%s]\n", log.ModuleDriver, fecID, switchID,
		sai.SerializeAttrs(sai.ObjectTypeFEC, attrs))
	return fecID, nil
}

func (api *fecAPI) RemoveFEC(fecID sai.ObjectID) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APIFEC, "remove", err) }()

	if err = api.d.removeObject(sai.ObjectTypeFEC, fecID); err != nil {
		log.Warning("%s remove FEC %v failed: %v\n", log.ModuleDriver, fecID, err)
		return err
	}
	log.Info("%s remove FEC %v\n", log.ModuleDriver, fecID)
	return nil
}

func (api *fecAPI) SetFECAttribute(fecID sai.ObjectID, attr sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APIFEC, "set", err) }()

	if err = api.d.setAttribute(sai.ObjectTypeFEC, fecID, attr); err != nil {
		log.Warning("%s set FEC %v %s failed: %v\n", log.ModuleDriver, fecID,
			sai.SerializeAttr(sai.ObjectTypeFEC, attr), err)
		return err
	}
	log.Info("%s set FEC %v %s\n", log.ModuleDriver, fecID, sai.SerializeAttr(sai.ObjectTypeFEC, attr))
	return nil
}

func (api *fecAPI) GetFECAttribute(fecID sai.ObjectID, attrs []sai.Attribute) (err error) {
	defer func() { api.d.metrics.ObserveCall(sai.APIFEC, "get", err) }()

	if err = api.d.getAttributes(sai.ObjectTypeFEC, fecID, attrs); err != nil {
		log.Debug("%s get FEC %v failed: %v\n", log.ModuleDriver, fecID, err)
		return err
	}
	log.Debug("%s get FEC %v [%s]\n", log.ModuleDriver, fecID, sai.SerializeAttrs(sai.ObjectTypeFEC, attrs))
	return nil
}
