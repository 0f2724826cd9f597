package fusion

import (
	"testing"

	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
	"github.com/prospect-fusion/internal/comparator"
)

func newTestFuser() *Fuser {
	logger := zap.NewNop()
	return NewFuser(comparator.NewComparator(logger), logger)
}

func coords(lat, lon float64) *models.Coordinates {
	return &models.Coordinates{Latitude: lat, Longitude: lon}
}

func TestFuseByCoordinateBucket(t *testing.T) {
	f := newTestFuser()

	directory := []models.DirectoryRecord{
		{
			Address: models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"},
			Coords:  coords(43.90141, 1.89863),
			Contact: &models.DirectoryContact{Title: "Boulangerie Martin", Phone: "0563570000"},
		},
	}
	registry := []models.RegistryRecord{
		{
			Name:    "SARL Martin",
			Address: "adresse illisible",
			// Same ~11 m bucket, different sub-precision digits.
			Coords: coords(43.901412, 1.898633),
			Phones: []string{"0563570001"},
		},
	}

	fused := f.Fuse(directory, registry)
	if len(fused) != 1 {
		t.Fatalf("expected 1 fused record, got %d", len(fused))
	}
	rec := fused[0]
	if rec.CompanyName != "SARL Martin" {
		t.Errorf("registry fields not merged: %+v", rec)
	}
	if rec.DirectoryTitle != "Boulangerie Martin" {
		t.Errorf("directory fields lost: %+v", rec)
	}
	if !rec.HasCoords() || *rec.Latitude != 43.90141 {
		t.Error("directory coordinates should win over registry coordinates")
	}
}

func TestFuseByAddressKey(t *testing.T) {
	f := newTestFuser()

	directory := []models.DirectoryRecord{
		{Address: models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}},
	}
	registry := []models.RegistryRecord{
		{
			Name:    "SARL Martin",
			Address: "58 rue d'Alger, 81600 Gaillac",
			Coords:  coords(43.90141, 1.89863),
		},
	}

	fused := f.Fuse(directory, registry)
	if len(fused) != 1 {
		t.Fatalf("expected 1 fused record, got %d", len(fused))
	}
	rec := fused[0]
	if rec.CompanyName != "SARL Martin" {
		t.Error("address-key match failed despite abbreviation and elision")
	}
	if !rec.HasCoords() {
		t.Error("registry coordinates should fill the missing directory coordinates")
	}
}

func TestFuseConsumesRegistryOnce(t *testing.T) {
	f := newTestFuser()

	addr := models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}
	directory := []models.DirectoryRecord{
		{Address: addr},
		{Address: addr},
	}
	registry := []models.RegistryRecord{
		{Name: "Premier", Address: "58 rue Alger 81600 Gaillac"},
	}

	fused := f.Fuse(directory, registry)
	if len(fused) != 2 {
		t.Fatalf("expected 2 fused records, got %d", len(fused))
	}

	merged := 0
	for _, rec := range fused {
		if rec.CompanyName == "Premier" {
			merged++
		}
	}
	if merged != 1 {
		t.Errorf("registry record merged %d times, want exactly 1", merged)
	}
}

func TestFuseConsumedBucketFallsThroughToKey(t *testing.T) {
	f := newTestFuser()

	addr1 := models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}
	addr2 := models.Address{Numero: "60", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}
	directory := []models.DirectoryRecord{
		{Address: addr1, Coords: coords(43.9014, 1.8986)},
		{Address: addr2, Coords: coords(43.9014, 1.8986)},
	}
	registry := []models.RegistryRecord{
		{Name: "Au 58", Address: "adresse illisible", Coords: coords(43.9014, 1.8986)},
		{Name: "Au 60", Address: "60 rue Alger 81600 Gaillac"},
	}

	fused := f.Fuse(directory, registry)
	if len(fused) != 2 {
		t.Fatalf("expected 2 fused records, got %d", len(fused))
	}
	if fused[0].CompanyName != "Au 58" {
		t.Errorf("first record should take the bucket match, got %q", fused[0].CompanyName)
	}
	if fused[1].CompanyName != "Au 60" {
		t.Errorf("second record should fall through to the key match, got %q", fused[1].CompanyName)
	}
}

func TestFuseSynthesizesUnmatchedRegistry(t *testing.T) {
	f := newTestFuser()

	registry := []models.RegistryRecord{
		{
			Name:    "Garage Dupont",
			Address: "12 avenue Foch 81600 Gaillac",
			Company: &models.CompanyInfo{Siren: "123456789"},
		},
		{
			Name:    "Sans Adresse",
			Address: "quelque part",
		},
	}

	fused := f.Fuse(nil, registry)
	if len(fused) != 2 {
		t.Fatalf("expected 2 fused records, got %d", len(fused))
	}

	if fused[0].Voie != "avenue Foch" || fused[0].CodePostal != "81600" {
		t.Errorf("parsable registry address should fill components: %+v", fused[0])
	}
	if fused[0].Siren != "123456789" {
		t.Error("company identifiers should carry over")
	}

	if fused[1].CompanyName != "Sans Adresse" {
		t.Error("unparsable registry record must still survive")
	}
	if !fused[1].Addr().IsZero() {
		t.Errorf("unparsable address should leave components empty: %+v", fused[1].Addr())
	}
}

func TestFuseKeepsCompanyIdentifiers(t *testing.T) {
	f := newTestFuser()

	directory := []models.DirectoryRecord{
		{Address: models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}},
	}
	registry := []models.RegistryRecord{
		{
			Name:    "Boulangerie Martin",
			Address: "58 rue Alger 81600 Gaillac",
			Company: &models.CompanyInfo{
				Siren:    "123456789",
				Siret:    "12345678900012",
				Naf:      "1071C",
				NafLabel: "Boulangerie et boulangerie-patisserie",
			},
		},
	}

	fused := f.Fuse(directory, registry)
	if len(fused) != 1 {
		t.Fatalf("expected 1 fused record, got %d", len(fused))
	}
	rec := fused[0]
	if rec.Siren != "123456789" || rec.Siret != "12345678900012" {
		t.Errorf("siren/siret lost: %+v", rec)
	}
	if rec.Naf != "1071C" {
		t.Errorf("naf code lost: %q", rec.Naf)
	}
	if rec.NafLabel != "Boulangerie et boulangerie-patisserie" {
		t.Errorf("naf label lost: %q", rec.NafLabel)
	}
}

func TestFuseSkipsAddresslessDirectoryRecords(t *testing.T) {
	f := newTestFuser()

	directory := []models.DirectoryRecord{
		{
			Coords:  coords(43.9014, 1.8986),
			Contact: &models.DirectoryContact{Title: "Sans Adresse", Phone: "0563570000"},
		},
		{Address: models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}},
	}

	fused := f.Fuse(directory, nil)
	if len(fused) != 1 {
		t.Fatalf("expected 1 fused record, got %d", len(fused))
	}
	if fused[0].DirectoryTitle == "Sans Adresse" {
		t.Error("addressless directory record should be discarded")
	}
	if fused[0].Numero != "58" {
		t.Errorf("addressed record lost: %+v", fused[0])
	}
}

func TestFuseLossless(t *testing.T) {
	f := newTestFuser()

	directory := []models.DirectoryRecord{
		{Address: models.Address{Numero: "1", Voie: "rue A", CodePostal: "81600", Ville: "Gaillac"}},
		{Address: models.Address{Numero: "2", Voie: "rue B", CodePostal: "81600", Ville: "Gaillac"}},
		{Address: models.Address{Numero: "3", Voie: "rue C", CodePostal: "81600", Ville: "Gaillac"}},
	}
	registry := []models.RegistryRecord{
		{Name: "R1", Address: "2 rue B 81600 Gaillac"},
		{Name: "R2", Address: "9 rue Z 81600 Gaillac"},
	}

	fused := f.Fuse(directory, registry)
	// 3 directory records + 1 unmatched registry record.
	if len(fused) != 4 {
		t.Fatalf("expected 4 fused records, got %d", len(fused))
	}
	if fused[0].Numero != "1" || fused[1].Numero != "2" || fused[2].Numero != "3" {
		t.Error("directory order not preserved")
	}
	if fused[1].CompanyName != "R1" {
		t.Error("matched registry record should enrich the directory record")
	}
	if fused[3].CompanyName != "R2" {
		t.Error("unmatched registry record should come last")
	}
}
