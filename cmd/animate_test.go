package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastAnimation = []string{"--duration", "20ms", "--fps", "200", "--no-fit", "-o", "yaml"}

func TestAnimateCommand_ClampsPercent(t *testing.T) {
	inTempDir(t)

	out, _, err := runCmd(t, append([]string{"animate", "150"}, fastAnimation...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "value: 100\n")
	assert.Contains(t, out, "target: 100\n")
	assert.Contains(t, out, "0% 0px")
}

func TestAnimateCommand_RatioIsNotClamped(t *testing.T) {
	inTempDir(t)

	out, _, err := runCmd(t, append([]string{"animate", "15", "10"}, fastAnimation...)...)
	require.NoError(t, err)

	assert.Contains(t, out, "target: 150\n")
	assert.Contains(t, out, "value: 100\n")

	out, _, err = runCmd(t, append([]string{"animate", "5", "10"}, fastAnimation...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "target: 50\n")
	assert.Contains(t, out, "value: 50\n")
}

func TestAnimateCommand_ThenWithLinkPolicies(t *testing.T) {
	inTempDir(t)

	out, _, err := runCmd(t, append([]string{"animate", "40", "--then", "70", "--link", "chain"}, fastAnimation...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "value: 70\n")

	out, _, err = runCmd(t, append([]string{"animate", "40", "--then", "70", "--link", "cancel"}, fastAnimation...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "value: 70\n")

	out, _, err = runCmd(t, append([]string{"animate", "40", "--then", "70", "--link", "ignore"}, fastAnimation...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "value: 40\n")
}

func TestAnimateCommand_From(t *testing.T) {
	inTempDir(t)

	out, _, err := runCmd(t, append([]string{"animate", "20", "--from", "80"}, fastAnimation...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "value: 20\n")
}

func TestAnimateCommand_ZeroTotal(t *testing.T) {
	inTempDir(t)

	_, _, err := runCmd(t, "animate", "5", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total must not be zero")
}
