// Package knowledge holds the read-only civic lookup tables: councils,
// their committees, and wards. The tables load once from JSON files in
// a data directory and are never mutated afterwards.
package knowledge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Council struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	Website string `json:"website,omitempty"`
}

type Committee struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Council string `json:"council"`
}

type Ward struct {
	Name        string   `json:"name"`
	Council     string   `json:"council"`
	Councillors []string `json:"councillors,omitempty"`
}

// Registry is the loaded lookup tables. Safe for concurrent reads.
type Registry struct {
	councils   []Council
	committees []Committee
	wards      []Ward
	wardIndex  map[string]int
}

// Load reads councils.json, committees.json and wards.json from
// dataDir. A missing file yields an empty table rather than an error;
// a file that exists but cannot be parsed is an error.
func Load(dataDir string) (*Registry, error) {
	registry := &Registry{}

	if err := loadTable(dataDir, "councils.json", &registry.councils); err != nil {
		return nil, err
	}
	if err := loadTable(dataDir, "committees.json", &registry.committees); err != nil {
		return nil, err
	}
	if err := loadTable(dataDir, "wards.json", &registry.wards); err != nil {
		return nil, err
	}

	registry.wardIndex = make(map[string]int, len(registry.wards))
	for i, ward := range registry.wards {
		registry.wardIndex[strings.ToLower(ward.Name)] = i
	}

	slog.Debug("knowledge tables loaded",
		"councils", len(registry.councils),
		"committees", len(registry.committees),
		"wards", len(registry.wards))
	return registry, nil
}

func loadTable(dataDir, filename string, dest any) error {
	path := filepath.Join(dataDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("knowledge table absent", "path", path)
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Councils lists every known council.
func (r *Registry) Councils() []Council {
	return r.councils
}

// Committees lists the committees of one council (case-insensitive
// match); an empty council name lists all committees.
func (r *Registry) Committees(council string) []Committee {
	if council == "" {
		return r.committees
	}
	var out []Committee
	for _, committee := range r.committees {
		if strings.EqualFold(committee.Council, council) {
			out = append(out, committee)
		}
	}
	return out
}

// WardByName looks a ward up by name, case-insensitively.
func (r *Registry) WardByName(name string) (Ward, bool) {
	i, ok := r.wardIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Ward{}, false
	}
	return r.wards[i], true
}
