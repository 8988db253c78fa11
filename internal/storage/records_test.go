// ABOUTME: Tests for typed record persistence.
// ABOUTME: Verifies lossless round trips, absent keys, legacy shapes, and dataset fallback.
package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/healthtrack/internal/models"
)

type failingKV struct{ *MemoryStore }

func (failingKV) Set(context.Context, string, []byte) error { return errors.New("disk full") }

func sampleDataset() *models.HealthDataset {
	at := time.Date(2025, 6, 16, 8, 30, 0, 0, time.Local)
	ds := models.NewHealthDataset()
	ds.WaterIntake = append(ds.WaterIntake, models.NewWaterIntake(250, at), models.NewWaterIntake(500, at.Add(time.Hour)))
	ds.StepCounts = append(ds.StepCounts, models.NewStepCount(8421, at))
	ds.Weights = append(ds.Weights, models.NewWeight(81.4, at).WithNote("after run"))
	ds.BloodPressures = append(ds.BloodPressures, models.NewBloodPressure(135, 85, at))
	ds.HeartRates = append(ds.HeartRates, models.NewHeartRate(64, at))
	h := models.NewHabit("Stretch", []string{"Mon", "Wed"}, at).WithDescription("ten minutes")
	h = h.ToggleCompletion("2025-06-16")
	ds.Habits = append(ds.Habits, h)
	return ds
}

func TestRecordStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewRecordStore(kv, nil)
			want := sampleDataset()

			if err := s.Set(ctx, models.CategoryWeight, want.Weights); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			var got []models.Weight
			found, err := s.Get(ctx, models.CategoryWeight, &got)
			if err != nil || !found {
				t.Fatalf("Get = %v, %v", found, err)
			}
			if len(got) != 1 || got[0].ID != want.Weights[0].ID || got[0].Value != 81.4 {
				t.Errorf("Get = %+v", got)
			}
			if got[0].Note == nil || *got[0].Note != "after run" {
				t.Errorf("note lost: %v", got[0].Note)
			}
			if !got[0].Timestamp.Equal(want.Weights[0].Timestamp) {
				t.Errorf("timestamp = %v, want %v", got[0].Timestamp, want.Weights[0].Timestamp)
			}
		})
	}
}

func TestRecordStoreGetAbsent(t *testing.T) {
	s := NewRecordStore(NewMemoryStore(), nil)
	var got []models.HeartRate
	found, err := s.Get(context.Background(), models.CategoryHeartRate, &got)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("expected found=false for absent key")
	}
}

func TestRecordStoreLegacyCategory(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	legacy := `[{"id":"1","rate":72,"date":"2025-06-16","timestamp":"2025-06-16T08:00:00Z"}]`
	_ = kv.Set(ctx, KeyHeartRate, []byte(legacy))

	var got []models.HeartRate
	if _, err := NewRecordStore(kv, nil).Get(ctx, models.CategoryHeartRate, &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0].BPM != 72 {
		t.Errorf("legacy rate not mapped to bpm: %+v", got)
	}
}

func TestRecordStoreCorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	_ = kv.Set(ctx, KeySteps, []byte(`not json`))

	var got []models.StepCount
	_, err := NewRecordStore(kv, nil).Get(ctx, models.CategorySteps, &got)
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Op != "decode" {
		t.Errorf("expected decode PersistenceError, got %v", err)
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := NewRecordStore(kv, nil)
			want := sampleDataset()
			if err := s.SaveDataset(ctx, want); err != nil {
				t.Fatalf("SaveDataset failed: %v", err)
			}

			got, found, err := s.LoadDataset(ctx)
			if err != nil || !found {
				t.Fatalf("LoadDataset = %v, %v", found, err)
			}
			for _, c := range models.AllCategories {
				if got.Len(c) != want.Len(c) {
					t.Errorf("%s: got %d records, want %d", c, got.Len(c), want.Len(c))
				}
			}
			if got.BloodPressures[0].Systolic != 135 || got.BloodPressures[0].Diastolic != 85 {
				t.Errorf("blood pressure = %+v", got.BloodPressures[0])
			}
			h := got.Habits[0]
			if h.Name != "Stretch" || !h.IsCompletedOn("2025-06-16") || *h.Description != "ten minutes" {
				t.Errorf("habit = %+v", h)
			}
		})
	}
}

func TestLoadDatasetEmpty(t *testing.T) {
	ds, found, err := NewRecordStore(NewMemoryStore(), nil).LoadDataset(context.Background())
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if found {
		t.Error("expected found=false on empty store")
	}
	if ds.WaterIntake == nil || ds.Habits == nil {
		t.Error("collections should be empty, not nil")
	}
}

func TestLoadDatasetFallsBackToCategoryKeys(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryStore(), nil)
	want := sampleDataset()

	for _, c := range []models.Category{models.CategoryWater, models.CategoryHabit} {
		if err := s.SaveCategory(ctx, want, c); err != nil {
			t.Fatalf("SaveCategory(%s) failed: %v", c, err)
		}
	}

	got, found, err := s.LoadDataset(ctx)
	if err != nil || !found {
		t.Fatalf("LoadDataset = %v, %v", found, err)
	}
	if len(got.WaterIntake) != 2 || len(got.Habits) != 1 || len(got.Weights) != 0 {
		t.Errorf("fallback dataset = %d water, %d habits, %d weights",
			len(got.WaterIntake), len(got.Habits), len(got.Weights))
	}
}

func TestLoadDatasetLegacyAggregate(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	raw := `{"weights":[{"id":"w1","weight":80,"date":"2025-06-16","timestamp":"2025-06-16T08:00:00Z"}],
		"stepCounts":[{"id":"s1","steps":1200,"date":"2025-06-16","timestamp":"2025-06-16T08:00:00Z"}]}`
	_ = kv.Set(ctx, KeyDataset, []byte(raw))

	ds, _, err := NewRecordStore(kv, nil).LoadDataset(ctx)
	if err != nil {
		t.Fatalf("LoadDataset failed: %v", err)
	}
	if ds.Weights[0].Value != 80 || ds.StepCounts[0].Count != 1200 {
		t.Errorf("legacy fields not renamed: %+v %+v", ds.Weights, ds.StepCounts)
	}
	if ds.HeartRates == nil {
		t.Error("missing collections should be normalized to empty")
	}
}

func TestSetWrapsBackendFailure(t *testing.T) {
	s := NewRecordStore(failingKV{NewMemoryStore()}, nil)
	err := s.SaveDataset(context.Background(), models.NewHealthDataset())
	var pe *PersistenceError
	if !errors.As(err, &pe) || pe.Op != "set" || pe.Key != KeyDataset {
		t.Errorf("expected set PersistenceError, got %v", err)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	s := NewRecordStore(kv, nil)
	_ = s.SaveDataset(ctx, sampleDataset())
	_ = s.SaveCategory(ctx, sampleDataset(), models.CategoryWater)
	_ = kv.Set(ctx, "unrelated", []byte("x"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	keys, _ := kv.Keys(ctx)
	if len(keys) != 1 || keys[0] != "unrelated" {
		t.Errorf("keys after Clear = %v, want [unrelated]", keys)
	}
}

func TestKeyForUnknownCategory(t *testing.T) {
	if _, err := KeyFor("sleep"); err == nil {
		t.Error("expected error for unknown category")
	}
}
