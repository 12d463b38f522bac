package ovsdbclient

import (
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/ebay/libovsdb"

	"github.com/cn-pmlabs/gosai/lib/log"
)

// Config db client config
type Config struct {
	Db        string
	Addr      string
	TLSConfig *tls.Config
}

// OvsdbC db connection configure and status
type OvsdbC struct {
	Db            string
	Addr          string
	TLSConfig     *tls.Config
	Client        *libovsdb.OvsdbClient
	Tranmutex     sync.Mutex
	MonitorAll    bool
	MonitorTables []string
}

// NewOvsdbC build an unconnected client from cfg
func NewOvsdbC(cfg Config) *OvsdbC {
	return &OvsdbC{
		Db:         cfg.Db,
		Addr:       cfg.Addr,
		TLSConfig:  cfg.TLSConfig,
		MonitorAll: true,
	}
}

// InsertRow insert row into db.table
// return the new row uuid
func (c *OvsdbC) InsertRow(db string, table string,
	row map[string]interface{}) (string, error) {
	namedUUID, err := NewRowUUID()
	if err != nil {
		return "", err
	}
	operation := libovsdb.Operation{
		Op:       OpInsert,
		Table:    table,
		Row:      row,
		UUIDName: namedUUID,
	}
	results, err := c.Transact(db, operation)
	if err != nil {
		return "", err
	}
	return results[0].UUID.GoUUID, nil
}

// UpdateRows update db.table row's field with updates
// return updated number
func (c *OvsdbC) UpdateRows(db string, table string,
	updates map[string]interface{}, conditions []interface{}) int {
	operation := libovsdb.Operation{
		Op:    OpUpdate,
		Table: table,
		Row:   updates,
		Where: conditions,
	}
	results, err := c.Transact(db, operation)
	if err != nil {
		log.Warning("%s %s %s: %v\n", log.ModuleOvsdb, db, table, err)
		return 0
	}
	return results[0].Count
}

// DeleteRows delete db.table rows with conditions
// return delete number
func (c *OvsdbC) DeleteRows(db string, table string,
	conditions []interface{}) int {
	operation := libovsdb.Operation{
		Op:    OpDelete,
		Table: table,
		Where: conditions,
	}
	results, err := c.Transact(db, operation)
	if err != nil {
		log.Warning("%s %s %s: %v\n", log.ModuleOvsdb, db, table, err)
		return 0
	}
	return results[0].Count
}

// SelectRows check db.table with conditions existence
// return ResultRow and selected rows number
func (c *OvsdbC) SelectRows(db string, table string,
	conditions []interface{}) ([]libovsdb.ResultRow, int) {
	operation := libovsdb.Operation{
		Op:    OpSelect,
		Table: table,
		Where: conditions,
	}
	results, err := c.Transact(db, operation)
	if err != nil {
		log.Warning("%s %s %s: %v\n", log.ModuleOvsdb, db, table, err)
		return []libovsdb.ResultRow{}, 0
	}

	if len(results[0].Rows) > 0 {
		return results[0].Rows, len(results[0].Rows)
	}
	return []libovsdb.ResultRow{}, 0
}

// Transact with mutex and error check
func (c *OvsdbC) Transact(db string, ops ...libovsdb.Operation) ([]libovsdb.OperationResult, error) {
	// Only support one trans at same time now.
	c.Tranmutex.Lock()
	defer c.Tranmutex.Unlock()
	if c.Client == nil {
		return nil, fmt.Errorf("%s not connected", db)
	}
	reply, err := c.Client.Transact(db, ops...)
	if err != nil {
		return reply, err
	}

	return checkReply(reply, ops)
}

func checkReply(reply []libovsdb.OperationResult, ops []libovsdb.Operation) ([]libovsdb.OperationResult, error) {
	for i, o := range reply {
		if o.Error != "" {
			if i < len(ops) {
				return nil, fmt.
					Errorf("Transaction Failed due to an error : %v details: %v in %v", o.Error, o.Details, ops[i])
			}
			return nil, fmt.
				Errorf("Transaction Failed due to an error : %v details: %v", o.Error, o.Details)
		}
	}
	if len(reply) < len(ops) {
		return reply, fmt.
			Errorf("Number of Replies should be atleast equal to number of operations")
	}

	return reply, nil
}

// MonitorDbTables for specific tables monitor
func (c *OvsdbC) MonitorDbTables(db string, all bool, tables []string,
	jsonContext string) (*libovsdb.TableUpdates, error) {
	if all {
		return c.Client.MonitorAll(db, jsonContext)
	}

	requests := make(map[string]libovsdb.MonitorRequest)
	schema := c.Client.Schema[db]
	for _, table := range tables {
		var columns []string
		for column := range schema.Tables[table].Columns {
			columns = append(columns, column)
		}
		request := libovsdb.MonitorRequest{
			Columns: columns,
			Select: libovsdb.MonitorSelect{
				Initial: true,
				Insert:  true,
				Delete:  true,
				Modify:  true,
			},
		}
		requests[table] = request
	}
	return c.Client.Monitor(db, jsonContext, requests)
}

// NewOvsDbClient ovsdb connection
func (c *OvsdbC) NewOvsDbClient() error {
	client, err := libovsdb.Connect(c.Addr, c.TLSConfig)
	if err != nil {
		return fmt.Errorf("NewOvsDbClient: Fail to connect %s: %w", c.Db, err)
	}
	c.Tranmutex.Lock()
	c.Client = client
	c.Tranmutex.Unlock()
	return nil
}

// Close the connection
func (c *OvsdbC) Close() {
	c.Tranmutex.Lock()
	client := c.Client
	c.Client = nil
	c.Tranmutex.Unlock()
	if client != nil {
		client.Disconnect()
	}
}
