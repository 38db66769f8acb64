package theme

// NewInstagram creates the default theme, built around the Instagram brand
// gradient.
func NewInstagram() *Theme {
	return &Theme{
		Name:   "instagram",
		IsDark: true,

		Primary:   "#E4405F", // Pink
		Secondary: "#405DE6", // Blue
		Tertiary:  "#833AB4", // Purple

		BgBase:     "#121212",
		BgMantle:   "#0b0b0b",
		BgSurface0: "#262626",
		BgSurface1: "#363636",
		BgSurface2: "#4a4a4a",

		FgMuted:  "#737373",
		FgSubtle: "#a8a8a8",
		FgBase:   "#f5f5f5",
		FgBright: "#ffffff",

		Success: "#58c322",
		Warning: "#fcaf45",
		Error:   "#ed4956",
		Info:    "#0095f6",
	}
}
