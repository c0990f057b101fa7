// conf
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/hujun-open/dashbook/indicator"
	"github.com/hujun-open/dashbook/pageview"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	AppName      = "dashbook"
	ConfFileName = "dashbook.toml"
)

func ConfDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// IndicatorConfig is the indicator style in dp, scaled by Density when built
type IndicatorConfig struct {
	Density             float32 `koanf:"density"`
	SegmentLength       float32 `koanf:"segment_length"`
	ItemPadding         float32 `koanf:"item_padding"`
	StrokeWidth         float32 `koanf:"stroke_width"`
	BandHeight          float32 `koanf:"band_height"`
	ActiveColor         string  `koanf:"active_color"`   // #AARRGGBB or #RRGGBB
	InactiveColor       string  `koanf:"inactive_color"` // #AARRGGBB or #RRGGBB
	Alignment           string  `koanf:"alignment"`      // "top" or "bottom"
	MatchContainerWidth bool    `koanf:"match_container_width"`
	AppendSpaceBelow    bool    `koanf:"append_space_below"`
	ItemCount           int     `koanf:"item_count"` // -1 derives the count from the pages
}

type WindowConfig struct {
	Width          float32 `koanf:"width"`
	Height         float32 `koanf:"height"`
	LastFile       string  `koanf:"last_file"`
	BackgroundFile string  `koanf:"background_file"`
	FontFile       string  `koanf:"font_file"`
	TextSize       float32 `koanf:"text_size"`
	LinesPerPage   int     `koanf:"lines_per_page"`

	// paddings of the text pages
	SidePadding         float32 `koanf:"side_padding"`
	VerticalPadding     float32 `koanf:"vertical_padding"`
	LineVerticalPadding float32 `koanf:"line_vertical_padding"`
}

type Config struct {
	Indicator IndicatorConfig `koanf:"indicator"`
	Window    WindowConfig    `koanf:"window"`
}

func NewDefConfig() *Config {
	return &Config{
		Indicator: IndicatorConfig{
			Density:          1,
			SegmentLength:    indicator.DefaultSegmentLength,
			ItemPadding:      indicator.DefaultItemPadding,
			StrokeWidth:      indicator.DefaultStrokeWidth,
			BandHeight:       indicator.DefaultBandHeight,
			ActiveColor:      FormatARGB(indicator.DefaultActiveColor),
			InactiveColor:    FormatARGB(indicator.DefaultInactiveColor),
			Alignment:        indicator.AlignBottom.String(),
			AppendSpaceBelow: true,
			ItemCount:        indicator.DeriveItemCount,
		},
		Window: WindowConfig{
			Width:               1000,
			Height:              800,
			TextSize:            16,
			LinesPerPage:        30,
			SidePadding:         pageview.DefaultSidePadding,
			VerticalPadding:     pageview.DefaultVerticalPadding,
			LineVerticalPadding: pageview.DefaultLineVerticalPadding,
		},
	}
}

// ConfigPaths lists the files LoadConfigFile reads, later ones win
func ConfigPaths() []string {
	return []string{
		filepath.Join(ConfDir(), ConfFileName),
		ConfFileName,
	}
}

func LoadConfigFile() (*Config, error) {
	return LoadConfigFiles(ConfigPaths()...)
}

// LoadConfigFiles layers the existing files among paths over the defaults;
// on error the defaults are still returned
func LoadConfigFiles(paths ...string) (*Config, error) {
	cnf := NewDefConfig()
	k := koanf.New(".")
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
			return cnf, fmt.Errorf("failed to load %v, %w", p, err)
		}
	}
	if err := k.Unmarshal("", cnf); err != nil {
		return NewDefConfig(), fmt.Errorf("invalid config, %w", err)
	}
	if _, err := cnf.Indicator.Build(); err != nil {
		return NewDefConfig(), err
	}
	return cnf, nil
}

// SaveConfigFileTo writes cnf as TOML to p, creating its directory
func SaveConfigFileTo(cnf *Config, p string) error {
	k := koanf.New(".")
	ic, wc := cnf.Indicator, cnf.Window
	for key, val := range map[string]interface{}{
		"indicator.density":               ic.Density,
		"indicator.segment_length":        ic.SegmentLength,
		"indicator.item_padding":          ic.ItemPadding,
		"indicator.stroke_width":          ic.StrokeWidth,
		"indicator.band_height":           ic.BandHeight,
		"indicator.active_color":          ic.ActiveColor,
		"indicator.inactive_color":        ic.InactiveColor,
		"indicator.alignment":             ic.Alignment,
		"indicator.match_container_width": ic.MatchContainerWidth,
		"indicator.append_space_below":    ic.AppendSpaceBelow,
		"indicator.item_count":            ic.ItemCount,
		"window.width":                    wc.Width,
		"window.height":                   wc.Height,
		"window.last_file":                wc.LastFile,
		"window.background_file":          wc.BackgroundFile,
		"window.font_file":                wc.FontFile,
		"window.text_size":                wc.TextSize,
		"window.lines_per_page":           wc.LinesPerPage,
		"window.side_padding":             wc.SidePadding,
		"window.vertical_padding":         wc.VerticalPadding,
		"window.line_vertical_padding":    wc.LineVerticalPadding,
	} {
		if err := k.Set(key, val); err != nil {
			return err
		}
	}
	buf, err := k.Marshal(toml.Parser())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	return os.WriteFile(p, buf, 0644)
}

// Build returns an indicator configured from ic
func (ic IndicatorConfig) Build() (*indicator.Indicator, error) {
	active, err := ParseARGB(ic.ActiveColor)
	if err != nil {
		return nil, fmt.Errorf("active_color: %w", err)
	}
	inactive, err := ParseARGB(ic.InactiveColor)
	if err != nil {
		return nil, fmt.Errorf("inactive_color: %w", err)
	}
	align, err := indicator.ParseAlignment(ic.Alignment)
	if err != nil {
		return nil, err
	}
	ind := indicator.New(ic.Density)
	d := ind.Density()
	return ind.
		SetSegmentLength(ic.SegmentLength*d).
		SetItemPadding(ic.ItemPadding*d).
		SetStrokeWidth(ic.StrokeWidth*d).
		SetBandHeight(float32(int(ic.BandHeight*d))).
		SetActiveColor(active).
		SetInactiveColor(inactive).
		Align(align).
		SetMatchContainerWidth(ic.MatchContainerWidth).
		SetAppendSpaceBelow(ic.AppendSpaceBelow).
		SetItemCount(ic.ItemCount), nil
}

// SetFrom stores the current style of ind back in dp
func (ic *IndicatorConfig) SetFrom(ind *indicator.Indicator) {
	s := ind.Style()
	d := ind.Density()
	ic.Density = d
	ic.SegmentLength = s.SegmentLength / d
	ic.ItemPadding = s.SegmentPadding / d
	ic.StrokeWidth = s.StrokeWidth / d
	ic.ActiveColor = FormatARGB(s.ActiveColor)
	ic.InactiveColor = FormatARGB(s.InactiveColor)
	ic.Alignment = s.Alignment.String()
	ic.MatchContainerWidth = s.MatchContainerWidth
}
