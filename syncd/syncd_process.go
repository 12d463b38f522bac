package syncd

import (
	"errors"
	"sort"

	"github.com/ebay/libovsdb"

	"github.com/cn-pmlabs/gosai/lib/asicdb"
	"github.com/cn-pmlabs/gosai/lib/log"
	odbc "github.com/cn-pmlabs/gosai/lib/ovsdb_client"
	"github.com/cn-pmlabs/gosai/sai"
)

// errUnresolved parks a row until the row it depends on is synced
var errUnresolved = errors.New("dependency not synced")

type rowChange struct {
	table string
	uuid  string
	op    string
	row   libovsdb.ResultRow
}

func (s *Syncer) apply(b batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.initial {
		s.resyncLocked(b.updates)
		return
	}
	s.processLocked(b.updates)
}

// resyncLocked treat a full dump as the difference to what is synced,
// rows missing from the dump are removed
func (s *Syncer) resyncLocked(initial libovsdb.TableUpdates) {
	updates := libovsdb.TableUpdates{Updates: make(map[string]libovsdb.TableUpdate)}
	seen := make(map[string]bool)
	for table, tableupdate := range initial.Updates {
		rows := make(map[string]libovsdb.RowUpdate)
		for uuid, rowUpdate := range tableupdate.Rows {
			seen[uuid] = true
			rows[uuid] = libovsdb.RowUpdate{New: rowUpdate.New}
		}
		updates.Updates[table] = libovsdb.TableUpdate{Rows: rows}
	}
	for uuid, table := range s.tables {
		if seen[uuid] {
			continue
		}
		tableupdate, ok := updates.Updates[table]
		if !ok {
			tableupdate = libovsdb.TableUpdate{Rows: make(map[string]libovsdb.RowUpdate)}
			updates.Updates[table] = tableupdate
		}
		old := libovsdb.Row{Fields: make(map[string]interface{})}
		for k, v := range s.rows[uuid] {
			old.Fields[k] = v
		}
		tableupdate.Rows[uuid] = libovsdb.RowUpdate{Old: old}
	}

	log.Info("%s resync %d rows\n", log.ModuleSyncd, len(seen))
	s.processLocked(updates)
	// adopting ids is only valid against the dump right after a warm start
	s.warm = false
}

// processLocked apply one batch: inserts and updates in dependency
// order, then deletes in reverse order, then the parked rows
func (s *Syncer) processLocked(updates libovsdb.TableUpdates) {
	var upserts, deletes []rowChange
	for _, table := range odbc.ASICTablesOrder {
		tableupdate, ok := updates.Updates[table]
		if !ok {
			continue
		}
		uuids := make([]string, 0, len(tableupdate.Rows))
		for uuid := range tableupdate.Rows {
			uuids = append(uuids, uuid)
		}
		sort.Strings(uuids)

		for _, uuid := range uuids {
			rowUpdate := odbc.RowUpdateOptimize(tableupdate.Rows[uuid], uuid)
			switch odbc.GetRowUpdateOp(rowUpdate) {
			case odbc.OpInsert, odbc.OpUpdate:
				upserts = append(upserts, rowChange{table: table, uuid: uuid, row: libovsdb.ResultRow(rowUpdate.New.Fields)})
			case odbc.OpDelete:
				deletes = append(deletes, rowChange{table: table, uuid: uuid, op: odbc.OpDelete})
			}
		}
	}

	for _, c := range upserts {
		op, err := s.upsertLocked(c.table, c.uuid, c.row)
		s.observe(c.table, c.uuid, op, err)
	}
	for i := len(deletes) - 1; i >= 0; i-- {
		c := deletes[i]
		s.observe(c.table, c.uuid, c.op, s.deleteLocked(c.table, c.uuid))
	}
	s.retryPendingLocked()
}

func (s *Syncer) observe(table, uuid, op string, err error) {
	entry := log.WithFields(log.Fields{"table": table, "row": uuid, "op": op})
	if errors.Is(err, errUnresolved) {
		entry.Infof("%s row parked: %v", log.ModuleSyncd, err)
		s.pending[uuid] = op
		err = nil
	} else if err != nil {
		entry.Warnf("%s row failed: %v", log.ModuleSyncd, err)
	}
	s.metrics.ObserveRowUpdate(table, op, err)
}

// retryPendingLocked run parked rows until a pass makes no progress
func (s *Syncer) retryPendingLocked() {
	for len(s.pending) > 0 {
		before := len(s.pending)
		for _, c := range s.pendingChangesLocked() {
			delete(s.pending, c.uuid)
			var err error
			switch c.op {
			case odbc.OpInsert:
				err = s.createLocked(c.table, c.uuid, s.rows[c.uuid])
			case odbc.OpUpdate:
				err = s.setFECNextHopLocked(c.uuid, s.rows[c.uuid])
			case odbc.OpDelete:
				err = s.deleteLocked(c.table, c.uuid)
			}
			if errors.Is(err, errUnresolved) {
				s.pending[c.uuid] = c.op
			} else {
				s.observe(c.table, c.uuid, c.op, err)
			}
		}
		if len(s.pending) >= before {
			return
		}
	}
}

// pendingChangesLocked list parked rows, creates and sets first in
// dependency order then deletes in reverse order
func (s *Syncer) pendingChangesLocked() []rowChange {
	order := make(map[string]int)
	for i, table := range odbc.ASICTablesOrder {
		order[table] = i
	}
	var upserts, deletes []rowChange
	for uuid, op := range s.pending {
		c := rowChange{table: s.tables[uuid], uuid: uuid, op: op}
		if op == odbc.OpDelete {
			deletes = append(deletes, c)
		} else {
			upserts = append(upserts, c)
		}
	}
	less := func(cs []rowChange, reverse bool) func(i, j int) bool {
		return func(i, j int) bool {
			if cs[i].table != cs[j].table {
				if reverse {
					return order[cs[i].table] > order[cs[j].table]
				}
				return order[cs[i].table] < order[cs[j].table]
			}
			return cs[i].uuid < cs[j].uuid
		}
	}
	sort.Slice(upserts, less(upserts, false))
	sort.Slice(deletes, less(deletes, true))
	return append(upserts, deletes...)
}

// upsertLocked create the object of a new row, or of a known row that
// never synced, and apply column changes to a synced one
func (s *Syncer) upsertLocked(table, uuid string, row libovsdb.ResultRow) (string, error) {
	old := s.rows[uuid]
	s.rows[uuid] = row
	s.tables[uuid] = table

	if _, synced := s.oids[uuid]; !synced {
		delete(s.pending, uuid)
		return odbc.OpInsert, s.createLocked(table, uuid, row)
	}
	return odbc.OpUpdate, s.updateLocked(table, uuid, old, row)
}

func (s *Syncer) createLocked(table, uuid string, row libovsdb.ResultRow) error {
	if s.warm {
		if oid, ok := s.adoptLocked(table, row); ok {
			log.Info("%s %s row %s adopted %v\n", log.ModuleSyncd, table, uuid, oid)
			s.bindLocked(table, uuid, oid)
			if table != odbc.ASIC_FEC {
				return nil
			}
			err := s.setFECNextHopLocked(uuid, row)
			if errors.Is(err, errUnresolved) {
				s.pending[uuid] = odbc.OpUpdate
				return nil
			}
			return err
		}
	}

	oid, err := s.createObjectLocked(table, row)
	if errors.Is(err, errUnresolved) {
		return err
	}
	if err != nil {
		s.writeBack(table, uuid, sai.StatusOf(err).String())
		return err
	}
	s.bindLocked(table, uuid, oid)
	s.writeBack(table, uuid, oid.String())
	log.Info("%s %s row %s synced as %v\n", log.ModuleSyncd, table, uuid, oid)
	return nil
}

func (s *Syncer) updateLocked(table, uuid string, old, row libovsdb.ResultRow) error {
	oid := s.oids[uuid]
	switch table {
	case odbc.ASIC_Switch:
		if asicdb.ConvertRowToSwitch(old).RestartWarm != asicdb.ConvertRowToSwitch(row).RestartWarm {
			log.Warning("%s %s row %s: %s is create only, ignored\n", log.ModuleSyncd, table, uuid, asicdb.SwitchFieldRestartWarm)
		}
	case odbc.ASIC_NextHop:
		prev, cur := asicdb.ConvertRowToNextHop(old), asicdb.ConvertRowToNextHop(row)
		if prev.IP != cur.IP {
			api, err := sai.NextHopAPIQuery()
			if err != nil {
				return err
			}
			return api.SetNextHopAttribute(oid, nextHopIPAttr(cur))
		}
	case odbc.ASIC_NextHopGroup:
		prev, cur := asicdb.ConvertRowToNextHopGroup(old), asicdb.ConvertRowToNextHopGroup(row)
		if prev.Type != cur.Type {
			api, err := sai.NextHopGroupAPIQuery()
			if err != nil {
				return err
			}
			return api.SetNextHopGroupAttribute(oid, sai.S32Attr(sai.NextHopGroupAttrType, nextHopGroupType(cur.Type)))
		}
	case odbc.ASIC_FEC:
		_, parked := s.pending[uuid]
		if parked || asicdb.ConvertRowToFEC(old).NextHop != asicdb.ConvertRowToFEC(row).NextHop {
			delete(s.pending, uuid)
			return s.setFECNextHopLocked(uuid, row)
		}
	}
	return nil
}

func (s *Syncer) deleteLocked(table, uuid string) error {
	delete(s.rows, uuid)
	oid, synced := s.oids[uuid]
	if !synced {
		delete(s.pending, uuid)
		delete(s.tables, uuid)
		return nil
	}

	err := s.removeObjectLocked(table, oid)
	if errors.Is(err, sai.StatusObjectInUse) {
		return errUnresolved
	}
	s.unbindLocked(uuid, oid)
	if err != nil {
		return err
	}
	log.Info("%s %s row %s removed %v\n", log.ModuleSyncd, table, uuid, oid)
	return nil
}

func (s *Syncer) bindLocked(table, uuid string, oid sai.ObjectID) {
	s.oids[uuid] = oid
	s.rowOIDs[oid] = uuid
	if table == odbc.ASIC_Switch && s.switchID == sai.NullObjectID {
		s.switchID = oid
	}
}

func (s *Syncer) unbindLocked(uuid string, oid sai.ObjectID) {
	delete(s.oids, uuid)
	delete(s.rowOIDs, oid)
	delete(s.tables, uuid)
	delete(s.pending, uuid)
	if s.switchID != oid {
		return
	}
	s.switchID = sai.NullObjectID
	for other, id := range s.oids {
		if s.tables[other] == odbc.ASIC_Switch {
			s.switchID = id
			break
		}
	}
}

// writeBack store the object id or the failure status in the row
func (s *Syncer) writeBack(table, uuid, value string) {
	if s.writer == nil {
		return
	}
	if err := asicdb.SetOID(s.writer, table, uuid, value); err != nil {
		log.Warning("%s write back %s: %v\n", log.ModuleSyncd, value, err)
	}
}
