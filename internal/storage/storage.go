package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/Tiliavir/shifttap/internal/model"
)

// typeAliases maps lower-cased labels written by the app (including its
// original Dutch labels) onto the canonical entry types.
var typeAliases = map[string]model.EntryType{
	"work":     model.TypeWork,
	"werk":     model.TypeWork,
	"recup":    model.TypeRecup,
	"vacation": model.TypeVacation,
	"vakantie": model.TypeVacation,
	"sick":     model.TypeSick,
	"ziekte":   model.TypeSick,
	"holiday":  model.TypeHoliday,
	"feestdag": model.TypeHoliday,
}

type rawState struct {
	Entries  []map[string]json.RawMessage `json:"entries"`
	Settings map[string]json.RawMessage   `json:"settings"`
}

// LoadState reads the state snapshot at path.
func LoadState(path string) (model.AppState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.AppState{}, fmt.Errorf("storage error reading %s: %w", path, err)
	}
	st, err := DecodeState(bytes.NewReader(data))
	if err != nil {
		return model.AppState{}, fmt.Errorf("corrupt JSON in %s: %w", path, err)
	}
	return st, nil
}

// DecodeState parses a state snapshot and applies the defaulting rules:
// tombstoned entries and entries without a string date are dropped, missing
// or non-numeric minute fields become 0, missing text fields become "".
func DecodeState(r io.Reader) (model.AppState, error) {
	var raw rawState
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return model.AppState{}, err
	}

	st := model.AppState{Entries: make([]model.TimeEntry, 0, len(raw.Entries))}
	for _, fields := range raw.Entries {
		if fields == nil || truthy(fields["deletedAt"]) {
			continue
		}
		date, ok := stringField(fields, "date")
		if !ok {
			continue
		}
		st.Entries = append(st.Entries, model.TimeEntry{
			ID:           text(fields, "id"),
			Date:         date,
			Type:         NormalizeType(text(fields, "type")),
			Start:        text(fields, "start"),
			End:          text(fields, "end"),
			NetMinutes:   minutes(fields, "netMin", "netMinutes"),
			PauseMinutes: minutes(fields, "pauseMin", "pauseMinutes"),
			Note:         text(fields, "note"),
			CreatedAt:    timestamp(fields["createdAt"]),
		})
	}

	if norm := minutes(raw.Settings, "normDayMin", "normDayMinutes"); norm > 0 {
		st.Settings.NormDayMinutes = &norm
	}
	return st, nil
}

// NormalizeType maps known labels onto canonical types and passes anything
// else through unchanged.
func NormalizeType(s string) model.EntryType {
	s = strings.TrimSpace(s)
	if t, ok := typeAliases[strings.ToLower(s)]; ok {
		return t
	}
	return model.EntryType(s)
}

// WriteFileAtomic writes r to path so that readers see either the previous
// file or the complete new one.
func WriteFileAtomic(path string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}
	if err := atomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("storage error writing %s: %w", path, err)
	}
	return nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func text(fields map[string]json.RawMessage, key string) string {
	s, _ := stringField(fields, key)
	return s
}

// minutes returns the first numeric value found under keys, rounded to whole
// minutes, or 0.
func minutes(fields map[string]json.RawMessage, keys ...string) int {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(math.Round(f))
	}
	return 0
}

// timestamp accepts epoch milliseconds or an RFC 3339 string.
func timestamp(raw json.RawMessage) int64 {
	if raw == nil {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int64(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

// truthy mirrors the app's tombstone test: null, false, 0 and "" mean "not
// deleted", anything else marks the entry deleted.
func truthy(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}
