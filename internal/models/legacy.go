// ABOUTME: One-time rename pass for legacy record shapes.
// ABOUTME: Rewrites old field names (rate, weight, steps) to the canonical schema.
package models

import (
	"encoding/json"
	"fmt"
)

// legacyFields maps a category to its old-name -> canonical-name renames.
var legacyFields = map[Category]map[string]string{
	CategoryHeartRate: {"rate": "bpm"},
	CategoryWeight:    {"weight": "value"},
	CategorySteps:     {"steps": "count"},
}

// datasetKeys maps dataset JSON keys to their categories.
var datasetKeys = map[string]Category{
	"waterIntake":    CategoryWater,
	"stepCounts":     CategorySteps,
	"weights":        CategoryWeight,
	"bloodPressures": CategoryBloodPressure,
	"heartRates":     CategoryHeartRate,
	"habits":         CategoryHabit,
}

// MigrateLegacy rewrites legacy field names inside a serialized dataset.
// It reports whether anything changed; unchanged input is returned as-is.
func MigrateLegacy(raw []byte) ([]byte, bool, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, fmt.Errorf("decode dataset: %w", err)
	}

	changed := false
	for key, category := range datasetKeys {
		records, ok := doc[key]
		if !ok {
			continue
		}
		out, c, err := MigrateLegacyRecords(category, records)
		if err != nil {
			return nil, false, fmt.Errorf("migrate %s: %w", key, err)
		}
		if c {
			doc[key] = out
			changed = true
		}
	}

	if !changed {
		return raw, false, nil
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, false, fmt.Errorf("encode dataset: %w", err)
	}
	return out, true, nil
}

// MigrateLegacyRecords rewrites legacy field names in a serialized record list.
// A canonical field already present takes precedence over its legacy name.
func MigrateLegacyRecords(category Category, raw []byte) ([]byte, bool, error) {
	renames, ok := legacyFields[category]
	if !ok {
		return raw, false, nil
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, false, fmt.Errorf("decode records: %w", err)
	}

	changed := false
	for _, rec := range records {
		for oldName, newName := range renames {
			v, ok := rec[oldName]
			if !ok {
				continue
			}
			if _, exists := rec[newName]; !exists {
				rec[newName] = v
			}
			delete(rec, oldName)
			changed = true
		}
	}

	if !changed {
		return raw, false, nil
	}
	out, err := json.Marshal(records)
	if err != nil {
		return nil, false, fmt.Errorf("encode records: %w", err)
	}
	return out, true, nil
}
