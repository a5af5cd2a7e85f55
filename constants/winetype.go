package constants

import (
	"strings"
)

// WineType is the canonical style classification for a wine.
type WineType string

// Stable values (store these exact strings in DB and model output).
const (
	Red       WineType = "red"
	White     WineType = "white"
	Rose      WineType = "rosé"
	Sparkling WineType = "sparkling"
	Dessert   WineType = "dessert"
	Fortified WineType = "fortified"
)

var allWineTypes = []WineType{
	Red,
	White,
	Rose,
	Sparkling,
	Dessert,
	Fortified,
}

// WineTypeStrings returns the enum as plain strings, for schemas and prompts.
func WineTypeStrings() []string {
	result := make([]string, len(allWineTypes))
	for i, t := range allWineTypes {
		result[i] = string(t)
	}
	return result
}

// CanonicalizeWineType maps free-form model output onto the enum.
// The second return reports whether the input resolved to a known type.
func CanonicalizeWineType(input string) (WineType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	// synonyms map
	synonyms := map[string]WineType{
		"rose":       Rose,
		"rosato":     Rose,
		"rosado":     Rose,
		"rouge":      Red,
		"rosso":      Red,
		"tinto":      Red,
		"blanc":      White,
		"bianco":     White,
		"blanco":     White,
		"champagne":  Sparkling,
		"spumante":   Sparkling,
		"cava":       Sparkling,
		"prosecco":   Sparkling,
		"cremant":    Sparkling,
		"port":       Fortified,
		"porto":      Fortified,
		"sherry":     Fortified,
		"madeira":    Fortified,
		"vermouth":   Fortified,
		"ice wine":   Dessert,
		"icewine":    Dessert,
		"sauternes":  Dessert,
		"late harvest": Dessert,
	}

	if t, ok := synonyms[normalized]; ok {
		return t, true
	}

	for _, t := range allWineTypes {
		if normalized == strings.ToLower(string(t)) {
			return t, true
		}
	}

	return "", false
}
