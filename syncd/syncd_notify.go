package syncd

import (
	"github.com/ebay/libovsdb"

	"github.com/cn-pmlabs/gosai/lib/log"
)

type asicdbNotifier struct {
	s *Syncer
}

func (notify asicdbNotifier) Update(context interface{}, updates libovsdb.TableUpdates) {
	notify.s.enqueue(batch{updates: updates})
}

func (notify asicdbNotifier) Locked([]interface{}) {
}
func (notify asicdbNotifier) Stolen([]interface{}) {
}
func (notify asicdbNotifier) Echo([]interface{}) {
}
func (notify asicdbNotifier) Disconnected(client *libovsdb.OvsdbClient) {
	if notify.s.stopped() {
		return
	}
	log.Warning("%s ovsdb %s disconnected\n", log.ModuleSyncd, notify.s.client.Db)
	go notify.s.reConnect()
}
