package cardimport

import (
	"strings"
	"testing"
)

func TestReadRows(t *testing.T) {
	csvText := "Player Name,Team Name,Card Type,Reason,Game Date\n" +
		"John Smith, GreenAchers,YELLOW,Sliding,3/4/2024\n" +
		"Jane Doe,Stingrays ReUtd,RED,,\n"

	rows, err := ReadRows(strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[0].Get(ColPlayerName); got != "John Smith" {
		t.Fatalf("player = %q", got)
	}
	// Leading space after the delimiter is trimmed by the reader.
	if got := rows[0].Get(ColTeamName); got != "GreenAchers" {
		t.Fatalf("team = %q", got)
	}
	if got := rows[1].Get(ColReason); got != "" {
		t.Fatalf("reason = %q, want empty", got)
	}
	// Columns absent from the header read as empty.
	if got := rows[0].Get(ColSeason); got != "" {
		t.Fatalf("season = %q, want empty", got)
	}
}

func TestReadRowsToleratesRaggedRows(t *testing.T) {
	csvText := "Player Name,Team Name,Card Type\n" +
		"John Smith,GreenAchers\n" +
		"Jane Doe,Stingrays ReUtd,RED,extra\n"

	rows, err := ReadRows(strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[0].Get(ColCardType); got != "" {
		t.Fatalf("short row card type = %q, want empty", got)
	}
	if got := rows[1].Get(ColCardType); got != "RED" {
		t.Fatalf("card type = %q", got)
	}
}

func TestReadRowsEmptyFile(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestReadRowsMalformedQuoting(t *testing.T) {
	csvText := "Player Name,Team Name\n" +
		"John Smith,GreenAchers\n" +
		"\"broken,GreenAchers\n"

	_, err := ReadRows(strings.NewReader(csvText))
	if err == nil {
		t.Fatalf("expected error for malformed csv")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestReadRowsHeaderOnly(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("Player Name,Team Name\n"))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
}
