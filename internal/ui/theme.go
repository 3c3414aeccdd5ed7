package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/fitlog/internal/model"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Surface string
	Border  string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// MealColors keys are meal backend tokens; "workout" colors workout groups.
	MealColors map[string]string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style
	Panel  lipgloss.Style

	mealColors map[string]string
	muted      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),

		mealColors: t.MealColors,
		muted:      t.Muted,
	}
}

// MealStyle returns the badge style for a meal type.
func (s Styles) MealStyle(m model.MealType) lipgloss.Style {
	return s.badge(m.Backend())
}

// WorkoutStyle returns the badge style for workout groups.
func (s Styles) WorkoutStyle() lipgloss.Style {
	return s.badge("workout")
}

func (s Styles) badge(key string) lipgloss.Style {
	color := s.mealColors[key]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func draculaTheme() Theme {
	return Theme{
		Name:    "Dracula",
		Surface: "#282A36",
		Border:  "#44475A",
		Text:    "#F8F8F2",
		Muted:   "#6272A4",
		Faint:   "#44475A",
		Accent:  "#BD93F9",
		Success: "#50FA7B",
		Warning: "#FFB86C",
		Danger:  "#FF5555",
		Info:    "#8BE9FD",
		MealColors: map[string]string{
			"breakfast": "#F1FA8C",
			"lunch":     "#50FA7B",
			"dinner":    "#FF79C6",
			"snack":     "#8BE9FD",
			"workout":   "#FFB86C",
		},
	}
}

func slateTheme() Theme {
	return Theme{
		Name:    "Slate",
		Surface: "#0f172a",
		Border:  "#334155",
		Text:    "#f1f5f9",
		Muted:   "#94a3b8",
		Faint:   "#64748b",
		Accent:  "#38bdf8",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Danger:  "#ef4444",
		Info:    "#06b6d4",
		MealColors: map[string]string{
			"breakfast": "#facc15",
			"lunch":     "#22c55e",
			"dinner":    "#ec4899",
			"snack":     "#06b6d4",
			"workout":   "#f97316",
		},
	}
}
