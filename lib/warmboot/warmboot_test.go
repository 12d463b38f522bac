package warmboot

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cn-pmlabs/gosai/sai"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "/tmp/x.db", dsn("/tmp/x.db", nil))
	assert.Equal(t, "/tmp/x.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		dsn("/tmp/x.db", [][2]string{{"journal_mode", "WAL"}, {"busy_timeout", "5000"}}))
}

func TestSaveLoadObjects(t *testing.T) {
	s := newTestStore(t)
	sw := sai.SwitchObjectID(0)
	nh := sai.NewObjectID(sai.ObjectTypeNextHop, 0, 1)
	fec := sai.NewObjectID(sai.ObjectTypeFEC, 0, 1)

	// saved out of dependency order
	require.NoError(t, s.SaveObject(Record{
		OID: fec, Type: sai.ObjectTypeFEC, SwitchID: sw,
		Attrs: []sai.Attribute{sai.OIDAttr(sai.FECAttrNextHopID, nh)},
	}))
	require.NoError(t, s.SaveObject(Record{
		OID: nh, Type: sai.ObjectTypeNextHop, SwitchID: sw,
		Attrs: []sai.Attribute{
			sai.S32Attr(sai.NextHopAttrType, sai.NextHopTypeIP),
			sai.IPAttr(sai.NextHopAttrIP, net.ParseIP("10.1.1.1")),
		},
	}))
	require.NoError(t, s.SaveObject(Record{OID: sw, Type: sai.ObjectTypeSwitch, SwitchID: sw}))

	recs, err := s.LoadObjects(sw)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, sw, recs[0].OID)
	assert.Equal(t, nh, recs[1].OID)
	assert.Equal(t, fec, recs[2].OID)
	assert.True(t, recs[1].Attrs[1].Value.IP.Equal(net.ParseIP("10.1.1.1")))
	assert.Equal(t, nh, recs[2].Attrs[0].Value.OID)

	// replace keeps one row per oid
	require.NoError(t, s.SaveObject(Record{OID: fec, Type: sai.ObjectTypeFEC, SwitchID: sw}))
	n, err := s.Count(sw)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDeleteObjects(t *testing.T) {
	s := newTestStore(t)
	sw0, sw1 := sai.SwitchObjectID(0), sai.SwitchObjectID(1)
	for _, rec := range []Record{
		{OID: sw0, Type: sai.ObjectTypeSwitch, SwitchID: sw0},
		{OID: sai.NewObjectID(sai.ObjectTypeFEC, 0, 1), Type: sai.ObjectTypeFEC, SwitchID: sw0},
		{OID: sw1, Type: sai.ObjectTypeSwitch, SwitchID: sw1},
		{OID: sai.NewObjectID(sai.ObjectTypeFEC, 1, 1), Type: sai.ObjectTypeFEC, SwitchID: sw1},
	} {
		require.NoError(t, s.SaveObject(rec))
	}

	require.NoError(t, s.DeleteObject(sai.NewObjectID(sai.ObjectTypeFEC, 0, 1)))
	require.NoError(t, s.DeleteObject(sai.NewObjectID(sai.ObjectTypeFEC, 0, 99)))
	n, err := s.Count(sw0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.DeleteSwitch(sw1))
	recs, err := s.LoadObjects(sw1)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "warmboot.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveObject(Record{OID: sai.SwitchObjectID(2), Type: sai.ObjectTypeSwitch, SwitchID: sai.SwitchObjectID(2)}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(sai.SwitchObjectID(2))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
