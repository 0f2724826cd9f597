package comparator

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
)

func newTestComparator() *Comparator {
	return NewComparator(zap.NewNop())
}

func TestCompareNumbers(t *testing.T) {
	c := newTestComparator()

	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"equal", "58", "58", 1.0},
		{"different", "58", "60", 0.0},
		{"both empty", "", "", 1.0},
		{"one empty", "58", "", 0.0},
		{"bis suffix ignored", "58 bis", "58", 1.0},
		{"range takes first", "58-60", "58", 1.0},
		{"no digits both sides", "bis", "ter", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.CompareNumbers(tt.a, tt.b); got != tt.expected {
				t.Errorf("CompareNumbers(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestCompareStreets(t *testing.T) {
	c := newTestComparator()

	t.Run("identical after normalization", func(t *testing.T) {
		if got := c.CompareStreets("Rue Alger", "rue alger"); got != 1.0 {
			t.Errorf("got %v, want 1.0", got)
		}
	})

	t.Run("abbreviation expands", func(t *testing.T) {
		if got := c.CompareStreets("R. Alger", "rue Alger"); got != 1.0 {
			t.Errorf("got %v, want 1.0", got)
		}
	})

	t.Run("stop word ignored", func(t *testing.T) {
		if got := c.CompareStreets("rue d'Alger", "rue Alger"); got != 1.0 {
			t.Errorf("got %v, want 1.0", got)
		}
	})

	t.Run("typo stays above threshold", func(t *testing.T) {
		if got := c.CompareStreets("rue Alger", "rue Algre"); got < 0.75 {
			t.Errorf("got %v, want >= 0.75", got)
		}
	})

	t.Run("different street stays below threshold", func(t *testing.T) {
		if got := c.CompareStreets("rue Alger", "avenue Foch"); got >= 0.75 {
			t.Errorf("got %v, want < 0.75", got)
		}
	})

	t.Run("word order tolerated", func(t *testing.T) {
		if got := c.CompareStreets("Général Leclerc rue", "rue Général Leclerc"); got != 1.0 {
			t.Errorf("got %v, want 1.0", got)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		if got := c.CompareStreets("", ""); got != 1.0 {
			t.Errorf("got %v, want 1.0", got)
		}
	})

	t.Run("one empty", func(t *testing.T) {
		if got := c.CompareStreets("rue Alger", ""); got != 0.0 {
			t.Errorf("got %v, want 0.0", got)
		}
	})
}

func TestComparePostalCodesAndCities(t *testing.T) {
	c := newTestComparator()

	if got := c.ComparePostalCodes("81600", "81600"); got != 1.0 {
		t.Errorf("equal postal codes: got %v", got)
	}
	if got := c.ComparePostalCodes("81600", "81000"); got != 0.0 {
		t.Errorf("different postal codes: got %v", got)
	}
	if got := c.ComparePostalCodes("81 600", "81600"); got != 1.0 {
		t.Errorf("spaced postal code: got %v", got)
	}

	if got := c.CompareCities("Gaillac", "GAILLAC"); got != 1.0 {
		t.Errorf("case-insensitive city: got %v", got)
	}
	if got := c.CompareCities("Besançon", "Besancon"); got != 1.0 {
		t.Errorf("accent-insensitive city: got %v", got)
	}
	if got := c.CompareCities("Gaillac", "Albi"); got != 0.0 {
		t.Errorf("different cities: got %v", got)
	}
}

func TestParseAddressString(t *testing.T) {
	c := newTestComparator()

	tests := []struct {
		name     string
		input    string
		expected *models.Address
	}{
		{
			"strict pattern",
			"58 rue Alger 81600 Gaillac",
			&models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"},
		},
		{
			"comma before postal code",
			"58 rue d'Alger, 81600 Gaillac",
			&models.Address{Numero: "58", Voie: "rue d'Alger", CodePostal: "81600", Ville: "Gaillac"},
		},
		{
			"multi word city",
			"2 place du Marche 81140 Castelnau de Montmiral",
			&models.Address{Numero: "2", Voie: "place du Marche", CodePostal: "81140", Ville: "Castelnau de Montmiral"},
		},
		{"no postal code", "rue Alger Gaillac", nil},
		{"postal code first", "81600 rue Alger Gaillac", nil},
		{"too few parts", "58 81600 Gaillac", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ParseAddressString(tt.input)
			if tt.expected == nil {
				if got != nil {
					t.Errorf("ParseAddressString(%q) = %+v, want nil", tt.input, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseAddressString(%q) = nil, want %+v", tt.input, tt.expected)
			}
			if *got != *tt.expected {
				t.Errorf("ParseAddressString(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCompareAddresses(t *testing.T) {
	c := newTestComparator()
	addr := models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}

	t.Run("exact match", func(t *testing.T) {
		result := c.CompareAddresses(addr, "58 rue Alger 81600 Gaillac")
		if !result.IsMatch {
			t.Errorf("expected match, scores %+v", result.PerField)
		}
		if math.Abs(result.OverallSimilarity-1.0) > 1e-9 {
			t.Errorf("overall = %v, want 1.0", result.OverallSimilarity)
		}
	})

	t.Run("abbreviated and elided street matches", func(t *testing.T) {
		result := c.CompareAddresses(addr, "58 R. d'Alger, 81600 Gaillac")
		if !result.IsMatch {
			t.Errorf("expected match, scores %+v", result.PerField)
		}
	})

	t.Run("wrong house number vetoes", func(t *testing.T) {
		result := c.CompareAddresses(addr, "60 rue Alger 81600 Gaillac")
		if result.IsMatch {
			t.Error("expected no match with different numero")
		}
		if result.PerField.Voie != 1.0 {
			t.Errorf("voie score should stay 1.0, got %v", result.PerField.Voie)
		}
	})

	t.Run("wrong postal code vetoes", func(t *testing.T) {
		if c.IsAddressMatch(addr, "58 rue Alger 81000 Albi") {
			t.Error("expected no match with different code postal")
		}
	})

	t.Run("different street vetoes", func(t *testing.T) {
		if c.IsAddressMatch(addr, "58 avenue Foch 81600 Gaillac") {
			t.Error("expected no match with different street")
		}
	})

	t.Run("unparsable free text", func(t *testing.T) {
		result := c.CompareAddresses(addr, "pas une adresse")
		if result.IsMatch || result.OverallSimilarity != 0.0 {
			t.Errorf("expected zero non-match, got %+v", result)
		}
		if result.Reason == "" {
			t.Error("expected a reason for the failed parse")
		}
	})
}

func TestAddressKey(t *testing.T) {
	c := newTestComparator()

	t.Run("structured and free text collide", func(t *testing.T) {
		addr := models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}
		structured := c.AddressKey(addr)
		raw := c.RawAddressKey("58 rue d'Alger, 81600 Gaillac")
		if structured != raw {
			t.Errorf("keys differ: %q vs %q", structured, raw)
		}
	})

	t.Run("abbreviation collides", func(t *testing.T) {
		k1 := c.RawAddressKey("58 R. Alger, 81600 Gaillac")
		k2 := c.RawAddressKey("58 rue Alger 81600 GAILLAC")
		if k1 != k2 {
			t.Errorf("keys differ: %q vs %q", k1, k2)
		}
	})

	t.Run("different addresses stay distinct", func(t *testing.T) {
		k1 := c.RawAddressKey("58 rue Alger 81600 Gaillac")
		k2 := c.RawAddressKey("60 rue Alger 81600 Gaillac")
		if k1 == k2 {
			t.Errorf("distinct addresses share key %q", k1)
		}
	})
}

func TestFingerprintStable(t *testing.T) {
	c := newTestComparator()
	addr := models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}

	f1 := c.Fingerprint(addr, "58 rue Alger 81600 Gaillac")
	f2 := c.Fingerprint(addr, "58 rue Alger 81600 Gaillac")
	if f1 != f2 {
		t.Error("fingerprint should be deterministic")
	}
	if f1 == c.Fingerprint(addr, "60 rue Alger 81600 Gaillac") {
		t.Error("different inputs should not collide")
	}
}
