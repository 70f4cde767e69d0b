package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCommand_Unfitted(t *testing.T) {
	inTempDir(t)

	out, _, err := runCmd(t, "set", "42", "--no-fit", "--label", "pct")
	require.NoError(t, err)

	assert.Contains(t, out, "style:     background-position: 58% 0px")
	assert.Contains(t, out, "fitted:    no")
	assert.Contains(t, out, "label:     42%")
	assert.Contains(t, out, "] 42%")
}

func TestSetCommand_FittedFromLocalImage(t *testing.T) {
	dir := inTempDir(t)
	img := filepath.Join(dir, "fill.png")
	writePNG(t, img, 400)

	out, _, err := runCmd(t, "set", "50", "--url", img, "--width", "200")
	require.NoError(t, err)

	assert.Contains(t, out, "fitted:    yes (fill width 400px)")
	assert.Contains(t, out, "background-position: -100px 0px")
	assert.Contains(t, out, "background-repeat: no-repeat")
	assert.Contains(t, out, "background-image: url("+img+")")
}

func TestSetCommand_MissingImageDegrades(t *testing.T) {
	dir := inTempDir(t)

	out, stderr, err := runCmd(t, "set", "50", "--url", filepath.Join(dir, "absent.png"))
	require.NoError(t, err)

	assert.Contains(t, out, "fitted:    no")
	assert.Contains(t, out, "background-position: 50% 0px")
	assert.Contains(t, stderr, "fill image unavailable")
}

func TestSetCommand_InvalidArguments(t *testing.T) {
	inTempDir(t)

	_, _, err := runCmd(t, "set", "lots")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")

	_, _, err = runCmd(t, "set")
	require.Error(t, err)

	_, _, err = runCmd(t, "set", "10", "--link", "queue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown link policy")

	_, _, err = runCmd(t, "set", "10", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
