package cli

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hujun-open/dashbook/conf"
	"github.com/hujun-open/dashbook/indicator"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyConfig(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dashbook.toml")
	require.NoError(t, os.WriteFile(p, nil, 0644))
	return p
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderPlain(t *testing.T) {
	cfg := emptyConfig(t)
	// 3 dashes of 16 with a gap of 4 centred in 90: [17,33] [37,53] [57,73]
	out, err := runCmd(t, "render", "--config", cfg, "--count", "3", "--width", "90",
		"--columns", "9", "--plain")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "  ━ ━ ━  ", lines[0])
	assert.Equal(t, "page 1/3  progress 0.000  settled", lines[1])
}

func TestRenderDragging(t *testing.T) {
	cfg := emptyConfig(t)
	out, err := runCmd(t, "render", "--config", cfg, "--count", "3", "--active", "1",
		"--width", "200", "--offset", "-100", "--plain", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "page 2/3  progress 0.500  forward")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "inactive")
	assert.Contains(t, out, "#FFFFFFFF")
}

func TestRenderStyleFlags(t *testing.T) {
	cfg := emptyConfig(t)
	out, err := runCmd(t, "render", "--config", cfg, "--count", "2", "--width", "100",
		"--columns", "10", "--match-width", "--item-padding", "0", "--plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "━━━━━━━━━━\n"))

	_, err = runCmd(t, "render", "--config", cfg, "--active-color", "red")
	assert.Error(t, err)
	_, err = runCmd(t, "render", "--config", cfg, "--align", "left")
	assert.Error(t, err)
	_, err = runCmd(t, "render", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestStyleFlagsSettings(t *testing.T) {
	var sf styleFlags
	cmd := &cobra.Command{Use: "x"}
	sf.register(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--stroke-width", "3", "--align", "top", "--no-space-below"}))
	s, err := sf.settings(cmd)
	require.NoError(t, err)
	assert.Nil(t, s.SegmentLength)
	assert.Nil(t, s.ActiveColor)
	require.NotNil(t, s.StrokeWidth)
	assert.Equal(t, float32(3), *s.StrokeWidth)
	require.NotNil(t, s.Alignment)
	assert.Equal(t, indicator.AlignTop, *s.Alignment)
	require.NotNil(t, s.AppendSpaceBelow)
	assert.False(t, *s.AppendSpaceBelow)

	ind := s.Apply(indicator.New(1))
	assert.Equal(t, float32(0), ind.Insets().Bottom)
	assert.Equal(t, indicator.AlignTop, ind.Style().Alignment)
}

func TestPNG(t *testing.T) {
	cfg := emptyConfig(t)
	dir := filepath.Join(t.TempDir(), "frames")
	out, err := runCmd(t, "png", "--config", cfg, "--count", "3", "--active", "1",
		"--width", "100", "--height", "30", "--frames", "3", "--out", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 frames")
	for _, name := range []string{"frame-00.png", "frame-01.png", "frame-02.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 100, img.Bounds().Dx())
		assert.Equal(t, 30, img.Bounds().Dy())
	}

	_, err = runCmd(t, "png", "--config", cfg, "--background", "black", "--out", dir)
	assert.Error(t, err)
}

func TestReaderConfig(t *testing.T) {
	t.Cleanup(func() { configFlag = "" })
	p := filepath.Join(t.TempDir(), "reader.toml")
	require.NoError(t, os.WriteFile(p, []byte("[window]\nlines_per_page = 7\n"), 0644))

	root := NewRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--config", p}))
	cnf, cnfPath, err := readerConfig()
	require.NoError(t, err)
	assert.Equal(t, p, cnfPath)
	assert.Equal(t, 7, cnf.Window.LinesPerPage)

	root = NewRootCmd()
	require.NoError(t, root.ParseFlags(nil))
	_, cnfPath, err = readerConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(conf.ConfDir(), conf.ConfFileName), cnfPath)
}

func TestReaderMissingConfig(t *testing.T) {
	t.Cleanup(func() { configFlag = "" })
	_, err := runCmd(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "book.txt")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "internal\n", out)
}
