package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// DetectorTheme is a dark theme so the camera panes stand out.
type DetectorTheme struct{}

func NewTheme() fyne.Theme {
	return &DetectorTheme{}
}

func (t *DetectorTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{R: 24, G: 25, B: 28, A: 255}
	case theme.ColorNameButton:
		return color.RGBA{R: 52, G: 55, B: 60, A: 255}
	case theme.ColorNameForeground:
		return color.RGBA{R: 230, G: 230, B: 230, A: 255}
	case theme.ColorNamePrimary:
		// matches the default annotation colour
		return color.RGBA{R: 0, G: 252, B: 124, A: 255}
	case theme.ColorNameHover:
		return color.RGBA{R: 255, G: 255, B: 255, A: 25}
	case theme.ColorNameFocus:
		return t.Color(theme.ColorNamePrimary, theme.VariantDark)
	default:
		return theme.DefaultTheme().Color(name, theme.VariantDark)
	}
}

func (t *DetectorTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *DetectorTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *DetectorTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
