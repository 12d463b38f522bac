package vs

import (
	"github.com/cn-pmlabs/gosai/sai"
)

// default per switch table sizes
const (
	defaultFECEntries          = 4096
	defaultNextHopEntries      = 16384
	defaultNextHopGroupEntries = 1024
)

// maxSwitches bounded by the switch index width of an object id
const maxSwitches = 256

// Capacity is the per switch table size of each object type,
// zero means the default
type Capacity struct {
	FEC          int
	NextHop      int
	NextHopGroup int
}

func (c Capacity) withDefaults() Capacity {
	if c.FEC <= 0 {
		c.FEC = defaultFECEntries
	}
	if c.NextHop <= 0 {
		c.NextHop = defaultNextHopEntries
	}
	if c.NextHopGroup <= 0 {
		c.NextHopGroup = defaultNextHopGroupEntries
	}
	return c
}

func (c Capacity) of(t sai.ObjectType) int {
	switch t {
	case sai.ObjectTypeFEC:
		return c.FEC
	case sai.ObjectTypeNextHop:
		return c.NextHop
	case sai.ObjectTypeNextHopGroup:
		return c.NextHopGroup
	}
	return 0
}

// availableAttrs map the switch read only attributes to the table they report
var availableAttrs = map[sai.AttrID]sai.ObjectType{
	sai.SwitchAttrAvailableFECEntry:          sai.ObjectTypeFEC,
	sai.SwitchAttrAvailableNextHopEntry:      sai.ObjectTypeNextHop,
	sai.SwitchAttrAvailableNextHopGroupEntry: sai.ObjectTypeNextHopGroup,
}
