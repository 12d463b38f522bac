package log

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		Logger.SetLevel(logrus.InfoLevel)
	})

	require.NoError(t, Init("", "warning"))
	Info("%s hidden\n", ModuleSAI)
	Warning("%s shown %d\n", ModuleDriver, 7)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[Driver] shown 7")
	assert.Equal(t, 1, strings.Count(out, "\n"))

	assert.Error(t, Init("", "chatty"))
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gosai.log")
	require.NoError(t, Init(path, "debug"))
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		Logger.SetLevel(logrus.InfoLevel)
		Logger.ReplaceHooks(make(logrus.LevelHooks))
		hooked = false
	})

	Debug("%s debug line", ModuleSyncd)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[Syncd] debug line")
}

func TestInitTwiceHooksOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(filepath.Join(dir, "a.log"), "info"))
	require.NoError(t, Init(filepath.Join(dir, "b.log"), "info"))
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		Logger.SetLevel(logrus.InfoLevel)
		Logger.ReplaceHooks(make(logrus.LevelHooks))
		hooked = false
	})

	assert.Len(t, Logger.Hooks[logrus.WarnLevel], 1)
	assert.Len(t, Logger.Hooks[logrus.ErrorLevel], 1)
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	WithFields(Fields{"table": "FEC", "op": "insert"}).Warnf("%s row parked", ModuleSyncd)
	out := buf.String()
	assert.Contains(t, out, "[Syncd] row parked")
	assert.Contains(t, out, "table=FEC")
	assert.Contains(t, out, "op=insert")
}
