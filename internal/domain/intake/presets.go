package intake

import "strings"

// Preset is a fixed manual intake button.
type Preset struct {
	Key      string `json:"key" koanf:"key"`
	Label    string `json:"label" koanf:"label"`
	AmountMl int    `json:"amount_ml" koanf:"amount_ml"`
}

// DefaultPresets returns the cup, bottle and big gulp buttons.
func DefaultPresets() []Preset {
	return []Preset{
		{Key: "cup", Label: "Cup", AmountMl: 250},
		{Key: "bottle", Label: "Bottle", AmountMl: 500},
		{Key: "big_gulp", Label: "Big Gulp", AmountMl: 750},
	}
}

func lookupPreset(presets []Preset, key string) (Preset, bool) {
	key = strings.TrimSpace(key)
	for _, p := range presets {
		if strings.EqualFold(p.Key, key) {
			return p, true
		}
	}
	return Preset{}, false
}
