package badge

// Palette is the full set of colors used to draw one card.
type Palette struct {
	Background  string
	Border      string
	Title       string
	Description string
	Author      string
	Stats       string
	Tag         string
}

var (
	lightPalette = Palette{
		Background:  "#ffffff",
		Border:      "#e5e7eb",
		Title:       "#171717",
		Description: "#404040",
		Author:      "#525252",
		Stats:       "#737373",
		Tag:         "#3b49df",
	}
	darkPalette = Palette{
		Background:  "#171717",
		Border:      "#404040",
		Title:       "#f5f5f5",
		Description: "#d4d4d4",
		Author:      "#a3a3a3",
		Stats:       "#a3a3a3",
		Tag:         "#a5b4fc",
	}
)

// PaletteFor returns the palette of t. Unknown themes get the light one.
func PaletteFor(t Theme) Palette {
	if t == ThemeDark {
		return darkPalette
	}
	return lightPalette
}
