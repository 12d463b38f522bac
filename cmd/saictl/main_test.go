package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"switch", "add"}, {"nexthop", "add"}, {"nh", "del"}, {"nhg", "add"},
		{"fec", "add"}, {"fec", "set"}, {"fec", "get"}, {"fec", "del"}, {"fec", "list"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[1], cmd.Name())
	}
}

func TestArgsCheckedBeforeConnect(t *testing.T) {
	for _, args := range [][]string{
		{"fec", "add"},
		{"fec", "del", "a", "b"},
		{"fec", "get"},
		{"switch", "list", "extra"},
	} {
		root := newRootCmd()
		root.SetArgs(append(args, "--addr", "tcp:127.0.0.1:1"))
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		err := root.Execute()
		require.Error(t, err, args)
		assert.NotContains(t, err.Error(), "connect", args)
	}
}

func TestNextHopAddRejectsBadIP(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"nexthop", "add", "nh1", "--ip", "10.0.0", "--addr", "tcp:127.0.0.1:1"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ip")
}
