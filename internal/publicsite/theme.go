package publicsite

// Theme parameterizes the single society page template. One template,
// three looks; the descriptor carries everything the layout needs so no
// per-design template files exist.
type Theme struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	BodyClass  string `json:"body_class"`
	HeroStyle  string `json:"hero_style"` // banner / split / minimal
	Accent     string `json:"accent"`
	ShowCover  bool   `json:"show_cover"`
	CardStyle  string `json:"card_style"` // grid / list
	DarkFooter bool   `json:"dark_footer"`
}

var themes = map[int]Theme{
	1: {
		Number:     1,
		Name:       "Classic",
		BodyClass:  "theme-classic",
		HeroStyle:  "banner",
		Accent:     "#1b5e20",
		ShowCover:  true,
		CardStyle:  "grid",
		DarkFooter: false,
	},
	2: {
		Number:     2,
		Name:       "Harvest",
		BodyClass:  "theme-harvest",
		HeroStyle:  "split",
		Accent:     "#e65100",
		ShowCover:  true,
		CardStyle:  "list",
		DarkFooter: true,
	},
	3: {
		Number:     3,
		Name:       "Minimal",
		BodyClass:  "theme-minimal",
		HeroStyle:  "minimal",
		Accent:     "#263238",
		ShowCover:  false,
		CardStyle:  "grid",
		DarkFooter: true,
	},
}

// ThemeFor returns the descriptor for a stored or previewed template
// number. Anything outside the known set renders as design 1.
func ThemeFor(n int) Theme {
	if t, ok := themes[n]; ok {
		return t
	}
	return themes[1]
}
