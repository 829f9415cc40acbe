package goalnote

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "semicolon and hyphen", text: "Ali 23; Sara - 45", want: []string{"Ali (23')", "Sara (45')"}},
		{name: "empty", text: "   ", want: []string{}},
		{name: "newline and pipe", text: "Omar 12'\nKhalid 90|Fahad 7 min", want: []string{"Omar (12')", "Khalid (90')", "Fahad (7')"}},
		{name: "arabic comma and minute word", text: "سالم 30 د، فهد: 55", want: []string{"سالم (30')", "فهد (55')"}},
		{name: "slash runs and blanks", text: "Ali 5 // ; Sara (61)", want: []string{"Ali (5')", "Sara (61)"}},
		{name: "no minute passes through", text: "own goal, Hassan", want: []string{"own goal", "Hassan"}},
		{name: "bare number passes through", text: "45", want: []string{"45"}},
		{name: "right single quote", text: "Nasser 88’", want: []string{"Nasser (88')"}},
		{name: "non-breaking space before minute", text: "Ali\u00a023", want: []string{"Ali (23')"}},
		{name: "unicode spaces around the dash", text: "Sara\u2009-\u202f45\u00a0min; Omar\ufeff12", want: []string{"Sara (45')", "Omar (12')"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Parse(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tc.text, got, tc.want)
			}
		})
	}
}

func TestFormatItem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Ali 23", want: "Ali (23')"},
		{in: "Ali-23", want: "Ali (23')"},
		{in: "Ali (23)", want: "Ali (23)"},
		{in: "Ali (23", want: "Ali (23')"},
		{in: "Sara:  9 '", want: "Sara (9')"},
		{in: "Penalty", want: "Penalty"},
		{in: "Ali 1234", want: "Ali 1 (234')"},
		{in: "- 12", want: "- 12"},
		{in: "", want: ""},
	}

	for _, tc := range tests {
		if got := FormatItem(tc.in); got != tc.want {
			t.Fatalf("FormatItem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
