package services

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/prospect-fusion/app/models"
	"github.com/prospect-fusion/internal/comparator"
	"github.com/prospect-fusion/internal/filter"
	"github.com/prospect-fusion/internal/fusion"
)

func newTestProspectService(t *testing.T) *ProspectService {
	t.Helper()
	logger := zap.NewNop()
	cmp := comparator.NewComparator(logger)
	cache, err := NewMemoryCacheService(100)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	return NewProspectService(cmp, fusion.NewFuser(cmp, logger), filter.NewZoneFilter(logger),
		cache, nil, nil, logger)
}

func TestRunProspectEndToEnd(t *testing.T) {
	ps := newTestProspectService(t)
	ctx := context.Background()

	lat, lon := 43.9014, 1.8986
	directory := []models.DirectoryRecord{
		{
			Address: models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"},
			Coords:  &models.Coordinates{Latitude: lat, Longitude: lon},
			Contact: &models.DirectoryContact{Title: "Boulangerie Martin", Phone: "0563570000"},
		},
		{
			// No payload beyond the address: dropped before classification.
			Address: models.Address{Numero: "60", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"},
			Coords:  &models.Coordinates{Latitude: lat, Longitude: lon},
		},
	}
	registry := []models.RegistryRecord{
		{
			Name:    "SARL Martin",
			Address: "58 rue d'Alger, 81600 Gaillac",
			Company: &models.CompanyInfo{Siren: "123456789"},
		},
		{
			Name:    "Garage Lointain",
			Address: "1 avenue Foch 81000 Albi",
			Coords:  &models.Coordinates{Latitude: lat + 0.2, Longitude: lon},
			Phones:  []string{"0563000000"},
			Company: &models.CompanyInfo{Siren: "987654321"},
		},
	}

	run, err := ps.RunProspect(ctx, directory, registry, lat, lon, 5.0)
	if err != nil {
		t.Fatalf("RunProspect: %v", err)
	}

	if run.RunID == "" {
		t.Error("run should carry an id")
	}
	if run.FusedCount != 3 {
		t.Errorf("fused count = %d, want 3", run.FusedCount)
	}
	if run.DroppedEmpty != 1 {
		t.Errorf("dropped = %d, want 1 (bare-address record)", run.DroppedEmpty)
	}

	if len(run.InZone) != 1 {
		t.Fatalf("in zone = %d, want 1", len(run.InZone))
	}
	merged := run.InZone[0]
	if merged.DirectoryTitle != "Boulangerie Martin" || merged.CompanyName != "SARL Martin" {
		t.Errorf("directory and registry sides not merged: %+v", merged)
	}
	if merged.Siren != "123456789" {
		t.Error("siren lost in fusion")
	}

	// ~22 km away with phone + siren: out of zone but interesting.
	if len(run.OutZoneInteresting) != 1 || run.OutZoneInteresting[0].CompanyName != "Garage Lointain" {
		t.Errorf("distant rich record misplaced: %+v", run.OutZoneInteresting)
	}

	got, err := ps.GetRun(ctx, run.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.RunID != run.RunID {
		t.Error("GetRun returned a different run")
	}

	if _, err := ps.GetRun(ctx, "run_inconnu"); err != ErrRunNotFound {
		t.Errorf("unknown run: err = %v, want ErrRunNotFound", err)
	}
}

func TestRunProspectRejectsBadRadius(t *testing.T) {
	ps := newTestProspectService(t)
	if _, err := ps.RunProspect(context.Background(), nil, nil, 43.9, 1.9, 0); err == nil {
		t.Error("zero radius should be rejected")
	}
}

func TestCompareAddressesUsesCache(t *testing.T) {
	ps := newTestProspectService(t)
	ctx := context.Background()
	addr := models.Address{Numero: "58", Voie: "rue Alger", CodePostal: "81600", Ville: "Gaillac"}

	_, hit, err := ps.CompareAddresses(ctx, addr, "58 rue Alger 81600 Gaillac")
	if err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v", hit, err)
	}

	result, hit, err := ps.CompareAddresses(ctx, addr, "58 rue Alger 81600 Gaillac")
	if err != nil || !hit {
		t.Fatalf("second call should hit the cache: hit=%v err=%v", hit, err)
	}
	if !result.IsMatch {
		t.Error("cached result should still be a match")
	}
}
