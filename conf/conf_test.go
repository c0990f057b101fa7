package conf

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/hujun-open/dashbook/indicator"
	"github.com/hujun-open/dashbook/pageview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseARGB(t *testing.T) {
	tests := []struct {
		in      string
		want    indicator.ARGB
		wantErr bool
	}{
		{in: "#66ffffff", want: 0x66FFFFFF},
		{in: "#FF102030", want: 0xFF102030},
		{in: "#102030", want: 0xFF102030},
		{in: " #000000 ", want: 0xFF000000},
		{in: "102030", wantErr: true},
		{in: "#zz102030", wantErr: true},
		{in: "#1020", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseARGB(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatARGB(t *testing.T) {
	assert.Equal(t, "#66ffffff", FormatARGB(0x66FFFFFF))
	c, err := ParseARGB(FormatARGB(0x80123456))
	require.NoError(t, err)
	assert.Equal(t, indicator.ARGB(0x80123456), c)
}

func TestLoadConfigFilesDefaults(t *testing.T) {
	cnf, err := LoadConfigFiles(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, NewDefConfig(), cnf)

	ind, err := cnf.Indicator.Build()
	require.NoError(t, err)
	assert.Equal(t, indicator.DefaultStyle(1), ind.Style())
	assert.Equal(t, float32(16), ind.Insets().Bottom)
}

func TestLoadConfigFilesLayered(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.toml")
	second := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(first, []byte(`
[indicator]
density = 2.0
alignment = "top"
active_color = "#ff00ff00"

[window]
lines_per_page = 12
`), 0644))
	require.NoError(t, os.WriteFile(second, []byte(`
[indicator]
alignment = "bottom"
match_container_width = true
`), 0644))

	cnf, err := LoadConfigFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 12, cnf.Window.LinesPerPage)
	assert.Equal(t, float32(1000), cnf.Window.Width)

	ind, err := cnf.Indicator.Build()
	require.NoError(t, err)
	s := ind.Style()
	assert.Equal(t, indicator.AlignBottom, s.Alignment)
	assert.True(t, s.MatchContainerWidth)
	assert.Equal(t, indicator.ARGB(0xFF00FF00), s.ActiveColor)
	assert.Equal(t, float32(32), s.SegmentLength)
	assert.Equal(t, float32(32), s.BandHeight)
}

func TestLoadConfigFilesInvalidColour(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(p, []byte("[indicator]\nactive_color = \"white\"\n"), 0644))
	cnf, err := LoadConfigFiles(p)
	assert.Error(t, err)
	assert.Equal(t, NewDefConfig(), cnf)
}

func TestSaveAndLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "conf", ConfFileName)
	cnf := NewDefConfig()
	cnf.Window.LastFile = "/tmp/book.txt"
	cnf.Window.SidePadding = 32
	ind, err := cnf.Indicator.Build()
	require.NoError(t, err)
	ind.SetItemPadding(6).Align(indicator.AlignTop).SetInactiveColor(0x33FF0000)
	cnf.Indicator.SetFrom(ind)
	require.NoError(t, SaveConfigFileTo(cnf, p))

	loaded, err := LoadConfigFiles(p)
	require.NoError(t, err)
	assert.Equal(t, cnf, loaded)
	assert.Equal(t, "#33ff0000", loaded.Indicator.InactiveColor)
	assert.Equal(t, "top", loaded.Indicator.Alignment)
	assert.Equal(t, float32(32), loaded.Window.SidePadding)
	assert.Equal(t, float32(pageview.DefaultVerticalPadding), loaded.Window.VerticalPadding)
}

func TestLook(t *testing.T) {
	l := NewLook(20, indicator.ARGB(0xFF00FF00))
	assert.Equal(t, float32(20), l.Size(theme.SizeNameText))
	assert.Equal(t, theme.DefaultTheme().Size(theme.SizeNamePadding), l.Size(theme.SizeNamePadding))
	assert.Equal(t, indicator.ARGB(0xFF00FF00), l.Color(theme.ColorNamePrimary, theme.VariantDark))
	assert.Equal(t, theme.DefaultTheme().Font(fyne.TextStyle{}), l.Font(fyne.TextStyle{}))

	_, err := LoadFont("")
	assert.Error(t, err)
}
