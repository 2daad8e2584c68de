package theme

import "sync"

type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

type Colors struct {
	Background       string `json:"background"`
	Text             string `json:"text"`
	CardBackground   string `json:"cardBackground"`
	ButtonBackground string `json:"buttonBackground"`
	ButtonText       string `json:"buttonText"`
	Accent           string `json:"accent"`
	Border           string `json:"border"`
	Shadow           string `json:"shadow"`
}

type Fonts struct {
	HeaderFont string `json:"headerFont"`
	BodyFont   string `json:"bodyFont"`
}

type Theme struct {
	Mode   Mode   `json:"mode"`
	Colors Colors `json:"colors"`
	Fonts  Fonts  `json:"fonts"`
}

var lightColors = Colors{
	Background:       "#FFFFFF",
	Text:             "#1C1C1E",
	CardBackground:   "#F2F2F7",
	ButtonBackground: "#4CAF50",
	ButtonText:       "#FFFFFF",
	Accent:           "#007AFF",
	Border:           "#C7C7CC",
	Shadow:           "rgba(0,0,0,0.1)",
}

var darkColors = Colors{
	Background:       "#121212",
	Text:             "#FFFFFF",
	CardBackground:   "#1E1E1E",
	ButtonBackground: "#BB86FC",
	ButtonText:       "#000000",
	Accent:           "#0A84FF",
	Border:           "#3A3A3C",
	Shadow:           "rgba(255,255,255,0.05)",
}

var fonts = Fonts{
	HeaderFont: "Roboto-Bold",
	BodyFont:   "Roboto-Regular",
}

// Manager holds the process-wide theme mode. The mode is seeded once from
// the platform's reported preference and never persisted; a restart
// re-derives it from that preference, not from the last toggle.
type Manager struct {
	mu   sync.Mutex
	mode Mode
}

func NewManager(initial Mode) *Manager {
	if initial != ModeDark {
		initial = ModeLight
	}
	return &Manager{mode: initial}
}

func (manager *Manager) Current() Theme {
	manager.mu.Lock()
	mode := manager.mode
	manager.mu.Unlock()

	colors := lightColors
	if mode == ModeDark {
		colors = darkColors
	}
	return Theme{Mode: mode, Colors: colors, Fonts: fonts}
}

func (manager *Manager) Toggle() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if manager.mode == ModeDark {
		manager.mode = ModeLight
	} else {
		manager.mode = ModeDark
	}
}
