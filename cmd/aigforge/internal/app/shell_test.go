package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aiger"
	"github.com/aigforge/aigforge/pkg/config"
)

func writeSampleAiger(t *testing.T) string {
	t.Helper()
	s := aig.New(8)
	a, b, c := s.CreatePI(), s.CreatePI(), s.CreatePI()
	out := s.AndLit(s.AndLit(a, b), c)
	s.CreatePO(out)

	path := filepath.Join(t.TempDir(), "sample.aig")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, aiger.Write(f, s, aiger.WriteOptions{}))
	return path
}

func TestShellReadBalanceQuit(t *testing.T) {
	path := writeSampleAiger(t)
	script := "read_aiger " + path + "\nbalance -s\nquit\n"

	var out bytes.Buffer
	cfg = config.Defaults()
	code := runShell(bytes.NewBufferString(script), &out)

	assert.Equal(t, ExitQuit, code)
	assert.Contains(t, out.String(), "2 ANDs")
}

func TestShellUnknownCommandIsUsageError(t *testing.T) {
	var out bytes.Buffer
	cfg = config.Defaults()
	code := runShell(bytes.NewBufferString("frobnicate\n"), &out)
	assert.Equal(t, ExitSuccess, code) // EOF after the bad line, not a quit
	assert.Contains(t, out.String(), "unknown command")
}

func TestShellCommandsBeforeReadReportNoNetwork(t *testing.T) {
	var out bytes.Buffer
	cfg = config.Defaults()
	code := runShell(bytes.NewBufferString("balance\nquit\n"), &out)
	assert.Equal(t, ExitQuit, code)
	assert.Contains(t, out.String(), ErrNoNetwork.Error())
}

func TestDispatchHelp(t *testing.T) {
	sess := NewSession(config.Defaults(), log)
	code, msg := dispatch(sess, "help")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, msg, "read_aiger")
}
