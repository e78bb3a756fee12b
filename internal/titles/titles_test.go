package titles

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "lowercases", input: "Inception", expected: "inception"},
		{name: "strips punctuation", input: "The Matrix!", expected: "the matrix"},
		{name: "colon and apostrophe", input: "Schindler's List: Part 1", expected: "schindlers list part 1"},
		{name: "keeps underscore", input: "File_Name", expected: "file_name"},
		{name: "keeps digits", input: "2001: A Space Odyssey", expected: "2001 a space odyssey"},
		{name: "preserves whitespace runs", input: "Up  \tDown", expected: "up  \tdown"},
		{name: "keeps accented letters", input: "Amélie", expected: "amélie"},
		{name: "non latin letters", input: "Sen to Chihiro (千と千尋)", expected: "sen to chihiro 千と千尋"},
		{name: "only punctuation", input: "?!...", expected: ""},
		{name: "dotted capital i", input: "İstanbul", expected: "istanbul"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q): expected %q, got %q", tt.input, tt.expected, result)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"The Matrix!",
		"  Léon: The Professional ",
		"WALL·E",
		"İstanbul Hatırası",
		"Amores Perros",
		"M*A*S*H",
		"Ὀδυσσεύς",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeCaseAndPunctuationInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"The Matrix!", "the matrix"},
		{"SE7EN", "se7en"},
		{"Amélie.", "AMÉLIE"},
		{"Spider-Man", "spiderman"},
	}

	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Errorf("Expected %q and %q to normalize equally, got %q and %q", p[0], p[1], Normalize(p[0]), Normalize(p[1]))
		}
	}
}
