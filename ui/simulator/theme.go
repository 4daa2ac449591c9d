package simulator

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// WorkshopTheme keeps the simulator light regardless of the desktop setting,
// so cut lines read like ink on paper.
type WorkshopTheme struct{}

var _ fyne.Theme = (*WorkshopTheme)(nil)

func (t *WorkshopTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return cutColor
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

func (t *WorkshopTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *WorkshopTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *WorkshopTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return 13
	}
	return theme.DefaultTheme().Size(name)
}
