// ABOUTME: Typed record persistence over a KV backend.
// ABOUTME: Maps categories to fixed storage keys and serializes collections as JSON.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthtrack/internal/models"
)

// Storage keys. These match data written by earlier versions of the app.
const (
	KeyWater         = "@health_tracker_water_intake"
	KeySteps         = "@health_tracker_steps"
	KeyWeight        = "@health_tracker_weight"
	KeyBloodPressure = "@health_tracker_blood_pressure"
	KeyHeartRate     = "@health_tracker_heart_rate"
	KeyHabits        = "@health_tracker_habits"
	KeyDataset       = "healthData"
)

var categoryKeys = map[models.Category]string{
	models.CategoryWater:         KeyWater,
	models.CategorySteps:         KeySteps,
	models.CategoryWeight:        KeyWeight,
	models.CategoryBloodPressure: KeyBloodPressure,
	models.CategoryHeartRate:     KeyHeartRate,
	models.CategoryHabit:         KeyHabits,
}

// AllKeys lists every key the record store writes.
var AllKeys = []string{
	KeyWater, KeySteps, KeyWeight, KeyBloodPressure, KeyHeartRate, KeyHabits, KeyDataset,
}

// KeyFor returns the storage key for a category.
func KeyFor(c models.Category) (string, error) {
	key, ok := categoryKeys[c]
	if !ok {
		return "", fmt.Errorf("no storage key for category %q", c)
	}
	return key, nil
}

// RecordStore reads and writes record collections by category.
type RecordStore struct {
	kv     KV
	logger *log.Logger
}

// NewRecordStore wraps kv. A nil logger uses the charm default logger.
func NewRecordStore(kv KV, logger *log.Logger) *RecordStore {
	if logger == nil {
		logger = log.Default()
	}
	return &RecordStore{kv: kv, logger: logger}
}

// KV returns the underlying backend.
func (s *RecordStore) KV() KV {
	return s.kv
}

// Close closes the underlying backend.
func (s *RecordStore) Close() error {
	return s.kv.Close()
}

// Get decodes the collection stored for category into dst. It reports
// false with a nil error when nothing has been stored yet.
func (s *RecordStore) Get(ctx context.Context, c models.Category, dst any) (bool, error) {
	key, err := KeyFor(c)
	if err != nil {
		return false, err
	}
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &PersistenceError{Op: "get", Key: key, Err: err}
	}

	raw, migrated, err := models.MigrateLegacyRecords(c, raw)
	if err != nil {
		return false, &PersistenceError{Op: "decode", Key: key, Err: err}
	}
	if migrated {
		s.logger.Info("renamed legacy record fields", "key", key)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, &PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// Set replaces the collection stored for category.
func (s *RecordStore) Set(ctx context.Context, c models.Category, records any) error {
	key, err := KeyFor(c)
	if err != nil {
		return err
	}
	return s.put(ctx, key, records)
}

// Delete removes the collection stored for category.
func (s *RecordStore) Delete(ctx context.Context, c models.Category) error {
	key, err := KeyFor(c)
	if err != nil {
		return err
	}
	if err := s.kv.Delete(ctx, key); err != nil {
		return &PersistenceError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// LoadDataset reads the aggregate dataset. When no aggregate exists it
// assembles one from the per-category keys. found is false only when
// nothing at all has been stored.
func (s *RecordStore) LoadDataset(ctx context.Context) (*models.HealthDataset, bool, error) {
	raw, err := s.kv.Get(ctx, KeyDataset)
	switch {
	case err == nil:
		raw, migrated, err := models.MigrateLegacy(raw)
		if err != nil {
			return nil, false, &PersistenceError{Op: "decode", Key: KeyDataset, Err: err}
		}
		if migrated {
			s.logger.Info("renamed legacy record fields", "key", KeyDataset)
		}
		ds := models.NewHealthDataset()
		if err := json.Unmarshal(raw, ds); err != nil {
			return nil, false, &PersistenceError{Op: "decode", Key: KeyDataset, Err: err}
		}
		ds.Normalize()
		return ds, true, nil
	case !errors.Is(err, ErrNotFound):
		return nil, false, &PersistenceError{Op: "get", Key: KeyDataset, Err: err}
	}

	ds := models.NewHealthDataset()
	found := false
	for _, c := range models.AllCategories {
		ok, err := s.Get(ctx, c, collectionOf(ds, c))
		if err != nil {
			return nil, false, err
		}
		found = found || ok
	}
	ds.Normalize()
	return ds, found, nil
}

// SaveDataset writes the full dataset under the aggregate key.
func (s *RecordStore) SaveDataset(ctx context.Context, ds *models.HealthDataset) error {
	return s.put(ctx, KeyDataset, ds)
}

// SaveCategory writes one collection of ds under its category key.
func (s *RecordStore) SaveCategory(ctx context.Context, ds *models.HealthDataset, c models.Category) error {
	ptr := collectionOf(ds, c)
	if ptr == nil {
		return fmt.Errorf("unknown category: %s", c)
	}
	return s.Set(ctx, c, ptr)
}

// Clear removes every key the record store owns.
func (s *RecordStore) Clear(ctx context.Context) error {
	for _, key := range AllKeys {
		if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return &PersistenceError{Op: "delete", Key: key, Err: err}
		}
	}
	return nil
}

func (s *RecordStore) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return &PersistenceError{Op: "set", Key: key, Err: err}
	}
	s.logger.Debug("stored", "key", key, "bytes", len(data))
	return nil
}

// collectionOf returns a pointer to the dataset slice for c.
func collectionOf(ds *models.HealthDataset, c models.Category) any {
	switch c {
	case models.CategoryWater:
		return &ds.WaterIntake
	case models.CategorySteps:
		return &ds.StepCounts
	case models.CategoryWeight:
		return &ds.Weights
	case models.CategoryBloodPressure:
		return &ds.BloodPressures
	case models.CategoryHeartRate:
		return &ds.HeartRates
	case models.CategoryHabit:
		return &ds.Habits
	default:
		return nil
	}
}
