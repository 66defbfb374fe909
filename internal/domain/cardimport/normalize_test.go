package cardimport

import (
	"testing"

	"github.com/leaguedesk/cardimport/internal/domain/card"
)

func TestNormalizePlayerName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "last first with gender", raw: "Smith, John (Male)", want: "John Smith"},
		{name: "last first without gender", raw: "Smith, John", want: "John Smith"},
		{name: "already first last", raw: "John Smith", want: "John Smith"},
		{name: "surrounding whitespace", raw: "  Smith,   John  ", want: "John Smith"},
		{name: "stray double quotes", raw: `"Smith, John"`, want: "John Smith"},
		{name: "edge single quotes stripped", raw: "'John Smith'", want: "John Smith"},
		{name: "inner apostrophe kept", raw: "O'Brien, Pat", want: "Pat O'Brien"},
		{name: "empty", raw: "", want: ""},
		{name: "comma only", raw: ",", want: ","},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePlayerName(tt.raw); got != tt.want {
				t.Fatalf("NormalizePlayerName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeTeamName(t *testing.T) {
	n := NewNormalizer(nil, nil, false)

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "Green Achers", want: "GreenAchers"},
		{raw: "Green Achers (B Division)", want: "GreenAchers"},
		{raw: "green achers", want: "GreenAchers"},
		{raw: "Stingrays ReUtd", want: "Stingrays ReUnited"},
		{raw: "Blue Jays", want: "Blue Jays"},
		{raw: "  Blue Jays  ", want: "Blue Jays"},
		{raw: "", want: ""},
	}

	for _, tt := range tests {
		if got := n.NormalizeTeamName(tt.raw); got != tt.want {
			t.Fatalf("NormalizeTeamName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeReason(t *testing.T) {
	n := NewNormalizer(nil, nil, false)

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "UB-Sliding", want: "Sliding"},
		{raw: "NA", want: ""},
		{raw: "na", want: ""},
		{raw: "N/A", want: ""},
		{raw: "", want: ""},
		{raw: "Dissent", want: "Dissent by word or action"},
		{raw: "Something the table never saw", want: "Something the table never saw"},
	}

	for _, tt := range tests {
		if got := n.NormalizeReason(tt.raw); got != tt.want {
			t.Fatalf("NormalizeReason(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeCardType(t *testing.T) {
	t.Run("lenient mode", func(t *testing.T) {
		n := NewNormalizer(nil, nil, false)

		kind, defaulted, ok := n.NormalizeCardType("YELLOW")
		if !ok || defaulted || kind != card.KindYellow {
			t.Fatalf("YELLOW: got (%v, %v, %v)", kind, defaulted, ok)
		}

		kind, defaulted, ok = n.NormalizeCardType("red")
		if !ok || defaulted || kind != card.KindRed {
			t.Fatalf("red: got (%v, %v, %v)", kind, defaulted, ok)
		}

		if _, _, ok := n.NormalizeCardType("N/A"); ok {
			t.Fatalf("N/A must never resolve")
		}

		kind, defaulted, ok = n.NormalizeCardType("ORANGE")
		if !ok || !defaulted || kind != card.KindYellow {
			t.Fatalf("ORANGE in lenient mode: got (%v, %v, %v)", kind, defaulted, ok)
		}
	})

	t.Run("strict mode", func(t *testing.T) {
		n := NewNormalizer(nil, nil, true)

		if _, _, ok := n.NormalizeCardType("ORANGE"); ok {
			t.Fatalf("ORANGE must not resolve in strict mode")
		}
		if _, _, ok := n.NormalizeCardType("YELLOW"); !ok {
			t.Fatalf("YELLOW must still resolve in strict mode")
		}
	})
}

func TestParseGameDate(t *testing.T) {
	epoch, ok := ParseGameDate("3/4/2024")
	if !ok {
		t.Fatalf("expected 3/4/2024 to parse")
	}
	if epoch != 1709510400 {
		t.Fatalf("unexpected epoch for 3/4/2024: %d", epoch)
	}

	if _, ok := ParseGameDate("2024-03-04"); ok {
		t.Fatalf("ISO dates must not parse")
	}
	if _, ok := ParseGameDate("3/4/24"); ok {
		t.Fatalf("two-digit years must not parse")
	}
	if _, ok := ParseGameDate("13/40/2024"); ok {
		t.Fatalf("impossible dates must not parse")
	}
	if _, ok := ParseGameDate(""); ok {
		t.Fatalf("empty dates must not parse")
	}
}
