// Package warmboot persists driver objects in SQLite so a warm restart
// can rebuild the switch state with the same object ids.
package warmboot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/cn-pmlabs/gosai/sai"
)

const driverName = "sqlite"

// DefaultDBPath default warm boot database
const DefaultDBPath = "/var/lib/gosai/warmboot.db"

// Record is one persisted object
type Record struct {
	OID      sai.ObjectID
	Type     sai.ObjectType
	SwitchID sai.ObjectID
	Attrs    []sai.Attribute
}

// Store is a SQLite backed object journal
type Store struct {
	db *sql.DB
}

// dsn builds a modernc.org/sqlite DSN with _pragma parameters
func dsn(path string, pragmas [][2]string) string {
	s := path
	for i, p := range pragmas {
		if i == 0 {
			s += "?"
		} else {
			s += "&"
		}
		s += "_pragma=" + p[0] + "(" + p[1] + ")"
	}
	return s
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create warmboot directory: %w", err)
	}
	return open(dsn(path, [][2]string{{"journal_mode", "WAL"}, {"busy_timeout", "5000"}}))
}

// NewInMemory opens a private in memory database
func NewInMemory() (*Store, error) {
	return open(":memory:")
}

func open(source string) (*Store, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, fmt.Errorf("open warmboot db: %w", err)
	}
	// a single connection keeps ":memory:" on one database
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate warmboot db: %w", err)
	}
	return s, nil
}

// Close the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS objects (
		oid INTEGER PRIMARY KEY,
		object_type INTEGER NOT NULL,
		switch_id INTEGER NOT NULL,
		attrs TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_objects_switch ON objects(switch_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveObject insert or replace rec
func (s *Store) SaveObject(rec Record) error {
	strs := make([]string, 0, len(rec.Attrs))
	for _, attr := range rec.Attrs {
		strs = append(strs, sai.SerializeAttr(rec.Type, attr))
	}
	attrs, err := json.Marshal(strs)
	if err != nil {
		return fmt.Errorf("marshal attrs of %v: %w", rec.OID, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO objects (oid, object_type, switch_id, attrs)
		VALUES (?, ?, ?, ?)`,
		int64(rec.OID), int(rec.Type), int64(rec.SwitchID), string(attrs))
	if err != nil {
		return fmt.Errorf("save %v: %w", rec.OID, err)
	}
	return nil
}

// DeleteObject remove oid, removing an unknown oid is not an error
func (s *Store) DeleteObject(oid sai.ObjectID) error {
	if _, err := s.db.Exec("DELETE FROM objects WHERE oid = ?", int64(oid)); err != nil {
		return fmt.Errorf("delete %v: %w", oid, err)
	}
	return nil
}

// DeleteSwitch remove every object of switchID, the switch included
func (s *Store) DeleteSwitch(switchID sai.ObjectID) error {
	if _, err := s.db.Exec("DELETE FROM objects WHERE switch_id = ?", int64(switchID)); err != nil {
		return fmt.Errorf("delete objects of %v: %w", switchID, err)
	}
	return nil
}

// LoadObjects returns every object of switchID ordered by type then oid,
// so referenced objects come before the objects referencing them
func (s *Store) LoadObjects(switchID sai.ObjectID) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT oid, object_type, switch_id, attrs FROM objects
		WHERE switch_id = ? ORDER BY object_type, oid`, int64(switchID))
	if err != nil {
		return nil, fmt.Errorf("load objects of %v: %w", switchID, err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var oid, sw int64
		var typ int
		var attrs string
		if err := rows.Scan(&oid, &typ, &sw, &attrs); err != nil {
			return nil, err
		}

		rec := Record{
			OID:      sai.ObjectID(oid),
			Type:     sai.ObjectType(typ),
			SwitchID: sai.ObjectID(sw),
		}
		var strs []string
		if err := json.Unmarshal([]byte(attrs), &strs); err != nil {
			return nil, fmt.Errorf("unmarshal attrs of %v: %w", rec.OID, err)
		}
		for _, str := range strs {
			attr, err := sai.DeserializeAttr(rec.Type, str)
			if err != nil {
				return nil, fmt.Errorf("object %v: %w", rec.OID, err)
			}
			rec.Attrs = append(rec.Attrs, attr)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count objects of switchID
func (s *Store) Count(switchID sai.ObjectID) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM objects WHERE switch_id = ?", int64(switchID)).Scan(&n)
	return n, err
}
