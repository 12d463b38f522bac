package vs

import (
	"sync"

	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/lib/metrics"
	"github.com/cn-pmlabs/gosai/lib/warmboot"
	"github.com/cn-pmlabs/gosai/sai"
)

// DefaultDriverName registered with sai
const DefaultDriverName = "VS"

// Journal persists committed objects, implemented by warmboot.Store
type Journal interface {
	SaveObject(rec warmboot.Record) error
	DeleteObject(oid sai.ObjectID) error
	LoadObjects(switchID sai.ObjectID) ([]warmboot.Record, error)
	DeleteSwitch(switchID sai.ObjectID) error
}

// Config of a virtual switch driver
type Config struct {
	Name     string
	Capacity Capacity
	Journal  Journal
	Metrics  *metrics.Metrics
}

// Driver is an in memory switch implementing the SAI method tables.
// Every operation is synchronous: it holds the driver lock for its
// whole duration, so a get always observes the preceding set.
type Driver struct {
	DriverName string
	ModuleAPIs map[sai.APIID]interface{}

	mu       sync.RWMutex
	objects  map[sai.ObjectID]*vsObject
	switches map[sai.ObjectID]*switchState
	capacity Capacity
	journal  Journal
	metrics  *metrics.Metrics
}

// New create a driver without registering it
func New(cfg Config) *Driver {
	d := &Driver{
		DriverName: cfg.Name,
		objects:    make(map[sai.ObjectID]*vsObject),
		switches:   make(map[sai.ObjectID]*switchState),
		capacity:   cfg.Capacity.withDefaults(),
		journal:    cfg.Journal,
		metrics:    cfg.Metrics,
	}
	if d.DriverName == "" {
		d.DriverName = DefaultDriverName
	}

	d.ModuleAPIs = map[sai.APIID]interface{}{
		sai.APISwitch:       &switchAPI{d: d},
		sai.APINextHop:      &nextHopAPI{d: d},
		sai.APINextHopGroup: &nextHopGroupAPI{d: d},
		sai.APIFEC:          &fecAPI{d: d},
	}
	return d
}

// Init create the driver and register it as the active sai driver
func Init(cfg Config) *Driver {
	d := New(cfg)
	sai.RegisterDriverHandler(d.DriverName, d)
	log.Info("%s %s capacity %+v warmboot %v\n", log.ModuleDriver, d.DriverName, d.capacity, d.journal != nil)
	return d
}
