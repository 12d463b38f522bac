// Package sai declares the switch abstraction interface: object ids,
// status codes, attribute metadata and the per object method tables
// a switch driver registers and callers query.
package sai

import (
	"sync"

	"github.com/cn-pmlabs/gosai/lib/log"
)

type saiDriver struct {
	activeDriver  string
	handlers      map[string]DriverHandler
	handlersMutex *sync.Mutex
}

var sai = saiDriver{
	handlers:      make(map[string]DriverHandler),
	handlersMutex: &sync.Mutex{},
}

// DriverHandler interface, APIQuery returns the method table of api,
// e.g. a FECAPI for APIFEC
type DriverHandler interface {
	APIQuery(api APIID) (interface{}, error)
}

// RegisterDriverHandler register sai driver handler, the last one registered is active
func RegisterDriverHandler(name string, handler DriverHandler) {
	sai.handlersMutex.Lock()
	defer sai.handlersMutex.Unlock()
	sai.handlers[name] = handler
	sai.activeDriver = name
	log.Info("%s driver %s registered\n", log.ModuleSAI, name)
}

// UnRegisterDriverHandler unregister sai driver handler
func UnRegisterDriverHandler(name string) {
	sai.handlersMutex.Lock()
	defer sai.handlersMutex.Unlock()
	delete(sai.handlers, name)
	if sai.activeDriver == name {
		sai.activeDriver = ""
	}
	log.Info("%s driver %s unregistered\n", log.ModuleSAI, name)
}

// ActiveDriverName returns "" when no driver registered
func ActiveDriverName() string {
	sai.handlersMutex.Lock()
	defer sai.handlersMutex.Unlock()
	return sai.activeDriver
}

func activeSaiDriver() (DriverHandler, error) {
	sai.handlersMutex.Lock()
	defer sai.handlersMutex.Unlock()
	if len(sai.activeDriver) == 0 {
		return nil, StatusUninitialized
	}
	if handler, ok := sai.handlers[sai.activeDriver]; ok {
		return handler, nil
	}
	return nil, StatusUninitialized
}

// APIQuery returns the method table of api from the active driver
func APIQuery(api APIID) (interface{}, error) {
	handler, err := activeSaiDriver()
	if err != nil {
		return nil, err
	}
	table, err := handler.APIQuery(api)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, StatusNotImplemented
	}
	return table, nil
}

// FECAPIQuery returns the active FEC method table
func FECAPIQuery() (FECAPI, error) {
	table, err := APIQuery(APIFEC)
	if err != nil {
		return nil, err
	}
	api, ok := table.(FECAPI)
	if !ok {
		return nil, StatusNotImplemented
	}
	return api, nil
}

// SwitchAPIQuery returns the active switch method table
func SwitchAPIQuery() (SwitchAPI, error) {
	table, err := APIQuery(APISwitch)
	if err != nil {
		return nil, err
	}
	api, ok := table.(SwitchAPI)
	if !ok {
		return nil, StatusNotImplemented
	}
	return api, nil
}

// NextHopAPIQuery returns the active next hop method table
func NextHopAPIQuery() (NextHopAPI, error) {
	table, err := APIQuery(APINextHop)
	if err != nil {
		return nil, err
	}
	api, ok := table.(NextHopAPI)
	if !ok {
		return nil, StatusNotImplemented
	}
	return api, nil
}

// NextHopGroupAPIQuery returns the active next hop group method table
func NextHopGroupAPIQuery() (NextHopGroupAPI, error) {
	table, err := APIQuery(APINextHopGroup)
	if err != nil {
		return nil, err
	}
	api, ok := table.(NextHopGroupAPI)
	if !ok {
		return nil, StatusNotImplemented
	}
	return api, nil
}
