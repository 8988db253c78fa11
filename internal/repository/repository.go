// ABOUTME: In-memory health dataset with load, snapshot and mutate-then-persist operations.
// ABOUTME: Constructed once at startup and shared by the CLI and MCP server.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthtrack/internal/models"
	"github.com/harperreed/healthtrack/internal/storage"
	"github.com/harperreed/healthtrack/internal/validation"
)

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used for new records.
func WithClock(c Clock) Option {
	return func(r *Repository) { r.clock = c }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Repository) { r.logger = l }
}

// Repository owns the in-memory dataset. Every mutation updates memory
// first and then writes the dataset back. A failed write is returned but
// the in-memory change stays in place.
//
// All methods are safe for concurrent use; writes are serialized so two
// callers cannot interleave a read-modify-write of the same collection.
type Repository struct {
	mu     sync.Mutex
	store  *storage.RecordStore
	data   *models.HealthDataset
	clock  Clock
	logger *log.Logger
}

// New creates a repository over store with an empty dataset. Call Load to
// read persisted data.
func New(store *storage.RecordStore, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		data:   models.NewHealthDataset(),
		clock:  time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now returns the repository clock's current time.
func (r *Repository) Now() time.Time {
	return r.clock()
}

// Load replaces the in-memory dataset with what is persisted. On failure
// the dataset is left empty and the error is returned.
func (r *Repository) Load(ctx context.Context) error {
	ds, found, err := r.store.LoadDataset(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.data = models.NewHealthDataset()
		r.logFailure("load", err)
		return fmt.Errorf("load dataset: %w", err)
	}
	r.data = ds
	r.logger.Debug("dataset loaded", "found", found,
		"water", len(ds.WaterIntake), "steps", len(ds.StepCounts), "habits", len(ds.Habits))
	return nil
}

// Snapshot returns a deep copy of the current dataset.
func (r *Repository) Snapshot() *models.HealthDataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data.Clone()
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.store.Close()
}

// AddWaterIntake appends a water entry and persists.
func (r *Repository) AddWaterIntake(ctx context.Context, w models.WaterIntake) error {
	return r.mutate(ctx, func(ds *models.HealthDataset) error {
		ds.WaterIntake = append(ds.WaterIntake, w)
		return nil
	}, models.CategoryWater)
}

// AddStepCount appends a step entry and persists.
func (r *Repository) AddStepCount(ctx context.Context, s models.StepCount) error {
	return r.mutate(ctx, func(ds *models.HealthDataset) error {
		ds.StepCounts = append(ds.StepCounts, s)
		return nil
	}, models.CategorySteps)
}

// AddWeight appends a weight entry and persists.
func (r *Repository) AddWeight(ctx context.Context, w models.Weight) error {
	return r.mutate(ctx, func(ds *models.HealthDataset) error {
		ds.Weights = append(ds.Weights, w)
		return nil
	}, models.CategoryWeight)
}

// AddBloodPressure appends a blood pressure reading and persists.
func (r *Repository) AddBloodPressure(ctx context.Context, bp models.BloodPressure) error {
	return r.mutate(ctx, func(ds *models.HealthDataset) error {
		ds.BloodPressures = append(ds.BloodPressures, bp)
		return nil
	}, models.CategoryBloodPressure)
}

// AddHeartRate appends a heart rate reading and persists.
func (r *Repository) AddHeartRate(ctx context.Context, hr models.HeartRate) error {
	return r.mutate(ctx, func(ds *models.HealthDataset) error {
		ds.HeartRates = append(ds.HeartRates, hr)
		return nil
	}, models.CategoryHeartRate)
}

// Reset clears every stored collection and the in-memory dataset.
func (r *Repository) Reset(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = models.NewHealthDataset()
	if err := r.store.Clear(ctx); err != nil {
		r.logFailure("reset", err)
		return err
	}
	return nil
}

// ImportSummary counts records added and rejected per category by Import.
type ImportSummary struct {
	Added   map[models.Category]int
	Skipped map[models.Category]int
}

// Total returns the number of records added.
func (s ImportSummary) Total() int {
	return sum(s.Added)
}

// SkippedTotal returns the number of invalid records left out.
func (s ImportSummary) SkippedTotal() int {
	return sum(s.Skipped)
}

func sum(m map[models.Category]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

// Import merges records from in, skipping any whose ID already exists.
// Records that fail validation are left out and counted in Skipped.
func (r *Repository) Import(ctx context.Context, in *models.HealthDataset) (ImportSummary, error) {
	summary := ImportSummary{Added: map[models.Category]int{}, Skipped: map[models.Category]int{}}
	in = in.Clone()
	m := merger{summary: summary, logger: r.logger}
	err := r.mutate(ctx, func(ds *models.HealthDataset) error {
		ds.WaterIntake = mergeByID(m, models.CategoryWater, ds.WaterIntake, in.WaterIntake,
			func(v models.WaterIntake) string { return v.ID }, validation.CheckWaterIntake)
		ds.StepCounts = mergeByID(m, models.CategorySteps, ds.StepCounts, in.StepCounts,
			func(v models.StepCount) string { return v.ID }, validation.CheckStepCount)
		ds.Weights = mergeByID(m, models.CategoryWeight, ds.Weights, in.Weights,
			func(v models.Weight) string { return v.ID }, validation.CheckWeight)
		ds.BloodPressures = mergeByID(m, models.CategoryBloodPressure, ds.BloodPressures, in.BloodPressures,
			func(v models.BloodPressure) string { return v.ID }, validation.CheckBloodPressure)
		ds.HeartRates = mergeByID(m, models.CategoryHeartRate, ds.HeartRates, in.HeartRates,
			func(v models.HeartRate) string { return v.ID }, validation.CheckHeartRate)
		ds.Habits = mergeByID(m, models.CategoryHabit, ds.Habits, in.Habits,
			func(v models.Habit) string { return v.ID }, validation.CheckHabit)
		return nil
	}, models.AllCategories...)
	return summary, err
}

type merger struct {
	summary ImportSummary
	logger  *log.Logger
}

func mergeByID[T any](m merger, c models.Category, dst, src []T, id func(T) string, check func(T) error) []T {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[id(v)] = true
	}
	for _, v := range src {
		if err := check(v); err != nil {
			m.summary.Skipped[c]++
			m.logger.Warn("skipping invalid record", "category", c, "id", id(v), "err", err)
			continue
		}
		if seen[id(v)] {
			continue
		}
		seen[id(v)] = true
		dst = append(dst, v)
		m.summary.Added[c]++
	}
	return dst
}

// mutate applies fn to the live dataset under the lock, then persists the
// aggregate and the touched category keys. If fn fails nothing is written.
func (r *Repository) mutate(ctx context.Context, fn func(*models.HealthDataset) error, touched ...models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := fn(r.data); err != nil {
		return err
	}

	if err := r.store.SaveDataset(ctx, r.data); err != nil {
		r.logFailure("save", err)
		return err
	}
	for _, c := range touched {
		if err := r.store.SaveCategory(ctx, r.data, c); err != nil {
			r.logFailure("save", err)
			return err
		}
	}
	return nil
}

func (r *Repository) logFailure(op string, err error) {
	var pe *storage.PersistenceError
	if errors.As(err, &pe) {
		r.logger.Error("persistence failed", "op", pe.Op, "key", pe.Key, "err", pe.Err)
		return
	}
	r.logger.Error("persistence failed", "op", op, "err", err)
}
