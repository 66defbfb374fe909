package cardimport

import (
	"os"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// AliasTable maps historical free-text variants to the canonical value the
// live database expects. Tables are data, not code: defaults ship in-tree and
// operators can swap in YAML files.
type AliasTable map[string]string

// Lookup resolves a raw value, trying an exact match before a
// case-insensitive one. The second return reports whether a mapping matched.
func (t AliasTable) Lookup(raw string) (string, bool) {
	if canonical, ok := t[raw]; ok {
		return canonical, true
	}
	for variant, canonical := range t {
		if strings.EqualFold(variant, raw) {
			return canonical, true
		}
	}
	return "", false
}

// Validate rejects tables whose keys collide case-insensitively with
// different canonical values; such a table would resolve rows differently
// depending on which variant the scan hits first.
func (t AliasTable) Validate() error {
	seen := make(map[string]string, len(t))
	canonicalFor := make(map[string]string, len(t))
	for variant, canonical := range t {
		if strings.TrimSpace(variant) == "" {
			return crerr.New("alias table contains an empty variant key")
		}
		folded := strings.ToLower(variant)
		if prior, ok := seen[folded]; ok && canonicalFor[folded] != canonical {
			return crerr.Newf("alias variants %q and %q conflict: %q vs %q",
				prior, variant, canonicalFor[folded], canonical)
		}
		seen[folded] = variant
		canonicalFor[folded] = canonical
	}
	return nil
}

// LoadAliasFile reads an AliasTable from a YAML mapping file and validates it.
func LoadAliasFile(path string) (AliasTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read alias file %s", path)
	}

	table := AliasTable{}
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, crerr.Wrapf(err, "parse alias file %s", path)
	}
	if err := table.Validate(); err != nil {
		return nil, crerr.Wrapf(err, "validate alias file %s", path)
	}
	return table, nil
}

// DefaultTeamAliases reproduces the historical hand-maintained table of team
// name variants seen in past seasons' disciplinary sheets.
func DefaultTeamAliases() AliasTable {
	return AliasTable{
		"Green Achers":        "GreenAchers",
		"Green Achres":        "GreenAchers",
		"Stingrays ReUtd":     "Stingrays ReUnited",
		"Stingrays Reunited":  "Stingrays ReUnited",
		"Stingrays":           "Stingrays ReUnited",
		"Blue Lightning FC":   "Blue Lightning",
		"Blu Lightning":       "Blue Lightning",
		"Old Boys United":     "OldBoys United",
		"Sidewinders SC":      "Sidewinders",
		"Left Overs":          "Leftovers",
		"The Leftovers":       "Leftovers",
		"Hot Spurs":           "Hotspurs",
		"Nomads FC":           "Nomads",
		"Red Star Rec":        "Red Star",
		"Thirsty Thistles SC": "Thirsty Thistles",
	}
}

// DefaultReasonAliases reproduces the historical table of disciplinary reason
// abbreviations and free-text variants used by match officials on the sheets.
func DefaultReasonAliases() AliasTable {
	return AliasTable{
		"NA":  "",
		"N/A": "",

		"UB":                   "Unsporting behavior",
		"UB-Sliding":           "Sliding",
		"UB - Sliding":         "Sliding",
		"Slide tackle":         "Sliding",
		"Sliding tackle":       "Sliding",
		"UB-Tripping":          "Tripping",
		"Trip":                 "Tripping",
		"UB-Pushing":           "Pushing",
		"Push":                 "Pushing",
		"UB-Holding":           "Holding",
		"Shirt pull":           "Holding",
		"UB-Handball":          "Deliberate handball",
		"Handball":             "Deliberate handball",
		"Hand ball":            "Deliberate handball",
		"UB-Hard Foul":         "Reckless challenge",
		"Hard foul":            "Reckless challenge",
		"Reckless tackle":      "Reckless challenge",
		"Dangerous play":       "Dangerous play",
		"DP":                   "Dangerous play",
		"High kick":            "Dangerous play",
		"Studs up":             "Serious foul play",
		"SFP":                  "Serious foul play",
		"Serious foul":         "Serious foul play",
		"VC":                   "Violent conduct",
		"Violent":              "Violent conduct",
		"Fighting":             "Violent conduct",
		"AL":                   "Abusive language",
		"Language":             "Abusive language",
		"Foul language":        "Abusive language",
		"Abusive lang":         "Abusive language",
		"Dissent":              "Dissent by word or action",
		"Dissent-words":        "Dissent by word or action",
		"Arguing with ref":     "Dissent by word or action",
		"Arguing":              "Dissent by word or action",
		"PI":                   "Persistent infringement",
		"Persistent fouling":   "Persistent infringement",
		"Repeated fouls":       "Persistent infringement",
		"Delay":                "Delaying the restart of play",
		"Delay of game":        "Delaying the restart of play",
		"Time wasting":         "Delaying the restart of play",
		"Encroachment":         "Failure to respect required distance",
		"Distance":             "Failure to respect required distance",
		"2CT":                  "Second caution",
		"Second yellow":        "Second caution",
		"DOGSO":                "Denying an obvious goal-scoring opportunity",
		"Denied goal":          "Denying an obvious goal-scoring opportunity",
		"Spitting":             "Spitting at an opponent",
		"Unreg player":         "Unregistered player",
		"Sub without permission": "Entering without permission",
	}
}
