package textutil

import "testing"

func TestUnfluffTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Pride and Prejudice", "Pride and Prejudice"},
		{"trailing parenthetical", "Pride and Prejudice (Unabridged)", "Pride and Prejudice"},
		{"bracketed qualifier", "Emma [sound recording]", "Emma"},
		{"subtitle after colon", "Persuasion: An Annotated Edition", "Persuasion"},
		{"subtitle after semicolon", "Persuasion; a romance", "Persuasion"},
		{"edited by credit", "Collected Poems edited by A. Smith", "Collected Poems"},
		{"edition marker", "Mansfield Park Unabridged", "Mansfield Park"},
		{"stacked qualifiers", "Emma (Spanish) (Unabridged)", "Emma"},
		{"zombies survive", "Pride and Prejudice and Zombies", "Pride and Prejudice and Zombies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UnfluffTitle(tt.in); got != tt.want {
				t.Fatalf("UnfluffTitle(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleMatchRatioAccents(t *testing.T) {
	got := TitleMatchRatio(
		"Britain, détente and changing east-west relations",
		"Britain, Detente and Changing East-West Relations",
	)
	if got != 100 {
		t.Fatalf("TitleMatchRatio(accented) = %d, want 100", got)
	}
}

func TestTitleMatchRatioZombiesBelowCutoff(t *testing.T) {
	got := TitleMatchRatio("Pride and Prejudice", "Pride and Prejudice and Zombies")
	if got > 80 {
		t.Fatalf("TitleMatchRatio(zombies) = %d, want <= 80", got)
	}
}

func TestTitleMatchRatioEmpty(t *testing.T) {
	if got := TitleMatchRatio("", "Emma"); got != 0 {
		t.Fatalf("TitleMatchRatio(empty) = %d, want 0", got)
	}
}
