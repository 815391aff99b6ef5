package landsat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
}

func TestMatchesBand(t *testing.T) {
	cases := []struct {
		file string
		band Band
		want bool
	}{
		{"B4.tif", Red, true},
		{"LC08_L2SP_231062_20200101_02_T1_SR_B4.TIF", Red, true},
		{"sr_b5.tiff", NIR, true},
		{"B40.tif", Red, false},
		{"B4.txt", Red, false},
		{"B2.tif", Green, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchesBand(tc.file, tc.band), "%s vs %s", tc.file, tc.band)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "LC08_SR_B4.TIF")
	touch(t, dir, "LC08_SR_B5.TIF")
	touch(t, dir, "thumbnail.png")

	loader := NewLoader(dir)

	path, err := loader.Resolve(Red)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "LC08_SR_B4.TIF"), path)

	_, err = loader.Resolve(SWIR2)
	assert.Error(t, err)
}

func TestLoadReportsAllMissingBands(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(dir)

	_, err := loader.Load(Red, NIR, SWIR2)
	require.Error(t, err)

	var missing *MissingBandError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, filepath.Base(dir), missing.Scene)
	assert.ElementsMatch(t, []Band{Red, NIR, SWIR2}, missing.Missing)
	assert.Contains(t, missing.Error(), "B5")
}

func TestLoadUnreadableSceneDirectory(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "gone"))

	_, err := loader.Load(Red)
	require.Error(t, err)

	var missing *MissingBandError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []Band{Red}, missing.Missing)
}
