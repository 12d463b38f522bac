// Package syncd keeps the active SAI driver in step with the SAI_ASIC
// ovsdb: rows are turned into objects and the driver object id is
// written back into the row.
package syncd

import (
	"math"
	"sync"
	"time"

	"github.com/ebay/libovsdb"

	"github.com/cn-pmlabs/gosai/lib/asicdb"
	"github.com/cn-pmlabs/gosai/lib/log"
	"github.com/cn-pmlabs/gosai/lib/metrics"
	odbc "github.com/cn-pmlabs/gosai/lib/ovsdb_client"
	"github.com/cn-pmlabs/gosai/sai"
)

// maxRetryExp caps the reconnect backoff at 2^3 seconds
const maxRetryExp = 3

// Options for a Syncer
type Options struct {
	Addr string
	// RestartWarm adopts the object ids already written in the rows
	// instead of creating new objects for them
	RestartWarm bool
	Metrics     *metrics.Metrics
}

// Syncer applies ASIC DB row changes to the active SAI driver
type Syncer struct {
	client  *odbc.OvsdbC
	writer  asicdb.Writer
	metrics *metrics.Metrics
	warm    bool

	mu sync.Mutex
	// last seen row and its table, by row uuid
	rows   map[string]libovsdb.ResultRow
	tables map[string]string
	// row uuid <-> driver object id
	oids    map[string]sai.ObjectID
	rowOIDs map[sai.ObjectID]string
	// rows waiting for a dependency, by row uuid
	pending  map[string]string
	switchID sai.ObjectID

	// batches queued by the notifier, the notifier never blocks
	qmu   sync.Mutex
	queue []batch
	kick  chan struct{}

	stop chan struct{}
	wg   sync.WaitGroup
}

type batch struct {
	updates libovsdb.TableUpdates
	initial bool
}

// New build a Syncer, call Start to connect
func New(opts Options) *Syncer {
	client := odbc.NewOvsdbC(odbc.Config{Db: odbc.ASICDB, Addr: opts.Addr})
	return newSyncer(client, opts)
}

func newSyncer(writer asicdb.Writer, opts Options) *Syncer {
	s := &Syncer{
		writer:   writer,
		metrics:  opts.Metrics,
		warm:     opts.RestartWarm,
		rows:     make(map[string]libovsdb.ResultRow),
		tables:   make(map[string]string),
		oids:     make(map[string]sai.ObjectID),
		rowOIDs:  make(map[sai.ObjectID]string),
		pending:  make(map[string]string),
		switchID: sai.NullObjectID,
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	if c, ok := writer.(*odbc.OvsdbC); ok {
		s.client = c
	}
	return s
}

// Start connect the ASIC DB and process updates in the background,
// a failed connect is retried until Stop
func (s *Syncer) Start() {
	s.wg.Add(1)
	go s.run()

	if err := s.connect(); err != nil {
		log.Warning("%s Connect ovsdb %s[%s] failed, retry later: %v\n", log.ModuleSyncd, s.client.Db, s.client.Addr, err)
		go s.reConnect()
		return
	}
	log.Warning("%s Connect ovsdb %s successed\n", log.ModuleSyncd, s.client.Db)
}

// Stop the worker and close the connection
func (s *Syncer) Stop() {
	select {
	case <-s.stop:
		return
	default:
	}
	close(s.stop)
	s.wg.Wait()
	if s.client != nil {
		s.client.Close()
	}
}

func (s *Syncer) enqueue(b batch) {
	s.qmu.Lock()
	s.queue = append(s.queue, b)
	s.qmu.Unlock()
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Syncer) dequeue() []batch {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	q := s.queue
	s.queue = nil
	return q
}

func (s *Syncer) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *Syncer) connect() error {
	if err := s.client.NewOvsDbClient(); err != nil {
		return err
	}
	initial, err := s.client.MonitorDbTables(s.client.Db, s.client.MonitorAll, s.client.MonitorTables, "")
	if err != nil {
		s.client.Close()
		return err
	}
	// the initial dump is queued ahead of any notification
	if initial != nil {
		s.enqueue(batch{updates: *initial, initial: true})
	}
	s.client.Client.Register(asicdbNotifier{s})
	return nil
}

func (s *Syncer) reConnect() {
	retryCnt := 0
	cycleTime := time.NewTimer(time.Second * time.Duration(math.Exp2(float64(retryCnt))))
	defer cycleTime.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-cycleTime.C:
			err := s.connect()
			if err == nil {
				log.Warning("%s Reconnect ovsdb %s successed\n", log.ModuleSyncd, s.client.Db)
				return
			}

			log.Info("%s Try to connect ovsdb %s[%s] failed, retry after %v seconds: %v\n",
				log.ModuleSyncd, s.client.Db, s.client.Addr, math.Exp2(float64(retryCnt)), err)

			cycleTime.Reset(time.Second * time.Duration(math.Exp2(float64(retryCnt))))
			if retryCnt < maxRetryExp {
				retryCnt++
			}
		}
	}
}

func (s *Syncer) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.stop:
			return
		case <-s.kick:
			for _, b := range s.dequeue() {
				s.apply(b)
			}
		}
	}
}

// SwitchID is the switch new objects are created on
func (s *Syncer) SwitchID() sai.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.switchID
}

// ObjectID of a synced row
func (s *Syncer) ObjectID(rowUUID string) (sai.ObjectID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	oid, ok := s.oids[rowUUID]
	return oid, ok
}

// Pending number of rows waiting for a dependency
func (s *Syncer) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
