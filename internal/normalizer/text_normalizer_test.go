package normalizer

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"lowercase", "RUE ALGER", "rue alger"},
		{"diacritics", "Général Leclerc", "general leclerc"},
		{"cedilla", "Besançon", "besancon"},
		{"punctuation to space", "rue d'Alger, Gaillac", "rue d alger gaillac"},
		{"collapse spaces", "  58   rue    Alger  ", "58 rue alger"},
		{"mixed", "Av. des Champs-Élysées", "av des champs elysees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{"Général Leclerc", "rue d'Alger", "  58   RUE  Alger "}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizeStreetType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"dotted rue", "58 R. Alger", "58 rue alger"},
		{"avenue", "12 av Foch", "12 avenue foch"},
		{"boulevard", "3 bd Voltaire", "3 boulevard voltaire"},
		{"place", "1 pl de la Mairie", "1 place de la mairie"},
		{"impasse", "imp des Lilas", "impasse des lilas"},
		{"chemin", "ch des Vignes", "chemin des vignes"},
		{"already canonical", "58 rue Alger", "58 rue alger"},
		{"unknown token untouched", "58 xyz Alger", "58 xyz alger"},
		{"accented allee", "allée des Tilleuls", "allee des tilleuls"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeStreetType(tt.input)
			if got != tt.expected {
				t.Errorf("NormalizeStreetType(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExtractDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"58 bis", []string{"58"}},
		{"58-60", []string{"58", "60"}},
		{"no digits", nil},
		{"81600", []string{"81600"}},
	}

	for _, tt := range tests {
		got := ExtractDigits(tt.input)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ExtractDigits(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
