package cardimport

import (
	"regexp"
	"strings"
	"time"

	"github.com/leaguedesk/cardimport/internal/domain/card"
)

// Normalizer turns free-text CSV fields into the canonical values the live
// database's controlled vocabularies expect.
type Normalizer struct {
	TeamAliases   AliasTable
	ReasonAliases AliasTable
	// StrictCardTypes disables the historical leniency of importing
	// unrecognized card types as yellow cards.
	StrictCardTypes bool
}

func NewNormalizer(teams, reasons AliasTable, strictCardTypes bool) *Normalizer {
	if teams == nil {
		teams = DefaultTeamAliases()
	}
	if reasons == nil {
		reasons = DefaultReasonAliases()
	}
	return &Normalizer{
		TeamAliases:     teams,
		ReasonAliases:   reasons,
		StrictCardTypes: strictCardTypes,
	}
}

// lastFirstPattern matches "Last, First" with an optional trailing
// parenthesized gender annotation as entered on historical sheets.
var lastFirstPattern = regexp.MustCompile(`^([^,]+),\s*([^(]+?)\s*(?:\(([^)]*)\))?$`)

// trailingQualifierPattern strips division qualifiers like "(B Division)".
var trailingQualifierPattern = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// NormalizePlayerName reorders "Last, First (Gender)" entries to "First Last"
// and drops the gender annotation. Values without a comma are assumed to
// already be "First Last" and pass through unchanged.
func NormalizePlayerName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.ReplaceAll(name, `"`, "")
	// Edge quotes are data-entry artifacts; inner apostrophes are real
	// (O'Brien stays O'Brien).
	name = strings.Trim(name, `'`)
	name = strings.TrimSpace(name)

	m := lastFirstPattern.FindStringSubmatch(name)
	if m == nil {
		return name
	}

	last := strings.TrimSpace(m[1])
	first := strings.TrimSpace(m[2])
	if last == "" || first == "" {
		return name
	}
	return first + " " + last
}

// NormalizeTeamName strips a trailing parenthesized division qualifier and
// resolves historical name variants to the canonical team name. Unmapped
// names pass through unchanged.
func (n *Normalizer) NormalizeTeamName(raw string) string {
	name := strings.TrimSpace(raw)
	name = trailingQualifierPattern.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	if canonical, ok := n.TeamAliases.Lookup(name); ok {
		return canonical
	}
	return name
}

// NormalizeReason maps known abbreviations to canonical disciplinary reason
// text. "NA" and empty map to the empty string; unmapped text passes through
// unchanged so unknown reasons are never dropped.
func (n *Normalizer) NormalizeReason(raw string) string {
	reason := strings.TrimSpace(raw)
	if reason == "" || strings.EqualFold(reason, "NA") {
		return ""
	}

	if canonical, ok := n.ReasonAliases.Lookup(reason); ok {
		return canonical
	}
	return reason
}

// NormalizeCardType resolves the card-type column to a card kind.
// "N/A" never resolves. Unrecognized values resolve to yellow in lenient
// mode, with defaulted=true so callers can surface the reclassification; in
// strict mode they do not resolve at all.
func (n *Normalizer) NormalizeCardType(raw string) (kind card.Kind, defaulted bool, ok bool) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch value {
	case "YELLOW":
		return card.KindYellow, false, true
	case "RED":
		return card.KindRed, false, true
	case "N/A":
		return "", false, false
	}

	if n.StrictCardTypes {
		return "", false, false
	}
	return card.KindYellow, true, true
}

var gameDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// ParseGameDate accepts M/D/YYYY dates only, returning epoch seconds at UTC
// midnight. Anything else yields ok=false and the record's date stays absent.
func ParseGameDate(raw string) (int64, bool) {
	m := gameDatePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, false
	}

	parsed, err := time.Parse("1/2/2006", m[1]+"/"+m[2]+"/"+m[3])
	if err != nil {
		return 0, false
	}
	return parsed.UTC().Unix(), true
}
