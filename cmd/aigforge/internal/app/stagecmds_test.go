package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceCommandReadsAndWrites(t *testing.T) {
	in := writeSampleAiger(t)
	out := filepath.Join(t.TempDir(), "out.aig")

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"balance", "--in", in, "--out", out})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "balance:")
	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestBalanceCommandThenRunsExtraStages(t *testing.T) {
	in := writeSampleAiger(t)
	out := filepath.Join(t.TempDir(), "out.aig")

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"balance", "--in", in, "--then", "rewrite,zero", "--out", out})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestBalanceCommandMissingInFlag(t *testing.T) {
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"balance"})
	assert.Error(t, cmd.Execute())
}

func TestBalanceCommandUnknownThenStage(t *testing.T) {
	in := writeSampleAiger(t)

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"balance", "--in", in, "--then", "bogus"})
	assert.Error(t, cmd.Execute())
}

func TestReadCommandReportsAndCount(t *testing.T) {
	in := writeSampleAiger(t)

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"read", in})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "2 ANDs")
}

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "aigforge 0.1.0")
}
