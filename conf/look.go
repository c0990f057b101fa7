// look
package conf

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
)

// Look is the app theme: the default fyne theme with a configurable
// text size and font, and the indicator's active colour as primary colour
type Look struct {
	base        fyne.Theme
	textSize    float32
	regularFont fyne.Resource
	primary     color.Color
}

func NewLook(textSize float32, primary color.Color) *Look {
	return &Look{
		base:     theme.DefaultTheme(),
		textSize: textSize,
		primary:  primary,
	}
}

// LoadFont loads a ttf from a URI string or a plain path
func LoadFont(p string) (fyne.Resource, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil, fmt.Errorf("no font file")
	}
	if strings.Contains(p, "://") {
		u, err := storage.ParseURI(p)
		if err != nil {
			return nil, err
		}
		return storage.LoadResourceFromURI(u)
	}
	return fyne.LoadResourceFromPath(p)
}

func (l *Look) SetTextSize(s float32) {
	l.textSize = s
}

func (l *Look) SetFont(r fyne.Resource) {
	l.regularFont = r
}

// following are methods implmenting fyne.Theme interface
func (l *Look) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	if n == theme.ColorNamePrimary && l.primary != nil {
		return l.primary
	}
	return l.base.Color(n, v)
}

func (l *Look) Font(s fyne.TextStyle) fyne.Resource {
	if l.regularFont != nil && !s.Monospace {
		return l.regularFont
	}
	return l.base.Font(s)
}

func (l *Look) Icon(n fyne.ThemeIconName) fyne.Resource {
	return l.base.Icon(n)
}

func (l *Look) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameText && l.textSize > 0 {
		return l.textSize
	}
	return l.base.Size(n)
}
