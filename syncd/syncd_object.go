package syncd

import (
	"fmt"
	"net"

	"github.com/ebay/libovsdb"

	"github.com/cn-pmlabs/gosai/lib/asicdb"
	odbc "github.com/cn-pmlabs/gosai/lib/ovsdb_client"
	"github.com/cn-pmlabs/gosai/sai"
)

func tableObjectType(table string) sai.ObjectType {
	switch table {
	case odbc.ASIC_Switch:
		return sai.ObjectTypeSwitch
	case odbc.ASIC_NextHop:
		return sai.ObjectTypeNextHop
	case odbc.ASIC_NextHopGroup:
		return sai.ObjectTypeNextHopGroup
	case odbc.ASIC_FEC:
		return sai.ObjectTypeFEC
	}
	return sai.ObjectTypeNull
}

func nextHopIPAttr(t asicdb.TableNextHop) sai.Attribute {
	return sai.IPAttr(sai.NextHopAttrIP, net.ParseIP(t.IP))
}

// nextHopGroupType map the type column, an unknown type maps to a value
// the driver rejects
func nextHopGroupType(t string) int32 {
	switch t {
	case "", asicdb.NextHopGroupTypeECMP:
		return sai.NextHopGroupTypeECMP
	case asicdb.NextHopGroupTypeProtection:
		return sai.NextHopGroupTypeProtection
	}
	return -1
}

func (s *Syncer) createObjectLocked(table string, row libovsdb.ResultRow) (sai.ObjectID, error) {
	if table == odbc.ASIC_Switch {
		t := asicdb.ConvertRowToSwitch(row)
		api, err := sai.SwitchAPIQuery()
		if err != nil {
			return sai.NullObjectID, err
		}
		var attrs []sai.Attribute
		if t.RestartWarm || s.warm {
			attrs = append(attrs, sai.BoolAttr(sai.SwitchAttrRestartWarm, true))
		}
		return api.CreateSwitch(attrs)
	}

	if s.switchID == sai.NullObjectID {
		return sai.NullObjectID, fmt.Errorf("no switch: %w", errUnresolved)
	}
	switch table {
	case odbc.ASIC_NextHop:
		t := asicdb.ConvertRowToNextHop(row)
		api, err := sai.NextHopAPIQuery()
		if err != nil {
			return sai.NullObjectID, err
		}
		return api.CreateNextHop(s.switchID, []sai.Attribute{
			sai.S32Attr(sai.NextHopAttrType, sai.NextHopTypeIP),
			nextHopIPAttr(t),
		})
	case odbc.ASIC_NextHopGroup:
		t := asicdb.ConvertRowToNextHopGroup(row)
		api, err := sai.NextHopGroupAPIQuery()
		if err != nil {
			return sai.NullObjectID, err
		}
		return api.CreateNextHopGroup(s.switchID, []sai.Attribute{
			sai.S32Attr(sai.NextHopGroupAttrType, nextHopGroupType(t.Type)),
		})
	case odbc.ASIC_FEC:
		t := asicdb.ConvertRowToFEC(row)
		var attrs []sai.Attribute
		if t.NextHop != "" {
			nh, err := s.resolveLocked(t.NextHop)
			if err != nil {
				return sai.NullObjectID, err
			}
			attrs = append(attrs, sai.OIDAttr(sai.FECAttrNextHopID, nh))
		}
		api, err := sai.FECAPIQuery()
		if err != nil {
			return sai.NullObjectID, err
		}
		return api.CreateFEC(s.switchID, attrs)
	}
	return sai.NullObjectID, fmt.Errorf("unknown table %s", table)
}

func (s *Syncer) removeObjectLocked(table string, oid sai.ObjectID) error {
	switch table {
	case odbc.ASIC_Switch:
		api, err := sai.SwitchAPIQuery()
		if err != nil {
			return err
		}
		return api.RemoveSwitch(oid)
	case odbc.ASIC_NextHop:
		api, err := sai.NextHopAPIQuery()
		if err != nil {
			return err
		}
		return api.RemoveNextHop(oid)
	case odbc.ASIC_NextHopGroup:
		api, err := sai.NextHopGroupAPIQuery()
		if err != nil {
			return err
		}
		return api.RemoveNextHopGroup(oid)
	case odbc.ASIC_FEC:
		api, err := sai.FECAPIQuery()
		if err != nil {
			return err
		}
		return api.RemoveFEC(oid)
	}
	return fmt.Errorf("unknown table %s", table)
}

// resolveLocked the object id of a referenced row
func (s *Syncer) resolveLocked(rowUUID string) (sai.ObjectID, error) {
	oid, ok := s.oids[rowUUID]
	if !ok {
		return sai.NullObjectID, fmt.Errorf("row %s: %w", rowUUID, errUnresolved)
	}
	return oid, nil
}

// setFECNextHopLocked point the FEC of a row at the object of its
// next_hop row
func (s *Syncer) setFECNextHopLocked(uuid string, row libovsdb.ResultRow) error {
	t := asicdb.ConvertRowToFEC(row)
	nh := sai.NullObjectID
	if t.NextHop != "" {
		var err error
		if nh, err = s.resolveLocked(t.NextHop); err != nil {
			return err
		}
	}
	api, err := sai.FECAPIQuery()
	if err != nil {
		return err
	}
	return api.SetFECAttribute(s.oids[uuid], sai.OIDAttr(sai.FECAttrNextHopID, nh))
}

// adoptLocked take over the object id written in a row by a previous
// run, valid only when the driver restored that object
func (s *Syncer) adoptLocked(table string, row libovsdb.ResultRow) (sai.ObjectID, bool) {
	t := tableObjectType(table)
	if t == sai.ObjectTypeSwitch {
		return sai.NullObjectID, false
	}
	value, _ := row[asicdb.FieldOID].(string)
	oid, err := sai.ParseObjectID(value)
	if err != nil || oid.Type() != t || sai.SwitchIDQuery(oid) != s.switchID {
		return sai.NullObjectID, false
	}
	if _, taken := s.rowOIDs[oid]; taken {
		return sai.NullObjectID, false
	}

	switch t {
	case sai.ObjectTypeNextHop:
		api, err := sai.NextHopAPIQuery()
		if err != nil || api.GetNextHopAttribute(oid, sai.GetAttrs(sai.NextHopAttrIP)) != nil {
			return sai.NullObjectID, false
		}
	case sai.ObjectTypeNextHopGroup:
		api, err := sai.NextHopGroupAPIQuery()
		if err != nil || api.GetNextHopGroupAttribute(oid, sai.GetAttrs(sai.NextHopGroupAttrType)) != nil {
			return sai.NullObjectID, false
		}
	case sai.ObjectTypeFEC:
		api, err := sai.FECAPIQuery()
		if err != nil || api.GetFECAttribute(oid, sai.GetAttrs(sai.FECAttrNextHopID)) != nil {
			return sai.NullObjectID, false
		}
	default:
		return sai.NullObjectID, false
	}
	return oid, true
}
