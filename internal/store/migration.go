package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/dshills/textdir/internal/direction"
)

// migration upgrades a directions document from one format version to the
// next. Each step receives the raw document bytes and returns the upgraded
// bytes.
type migration struct {
	fromVersion int
	toVersion   int
	description string
	migrate     func(data []byte) ([]byte, error)
}

// migrator applies ordered migrations to bring a raw document up to the
// current format version before it is decoded.
type migrator struct {
	migrations []migration
	current    int
}

// newMigrator creates a migrator targeting the given version.
func newMigrator(current int) *migrator {
	return &migrator{current: current}
}

// register adds a migration step, keeping steps ordered by source version.
func (m *migrator) register(mig migration) {
	m.migrations = append(m.migrations, mig)
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].fromVersion < m.migrations[j].fromVersion
	})
}

// documentVersion probes the raw document for its format version.
// Documents written before versioning carry no version field and probe
// as version 0. gjson tolerates shapes a strict decode would reject,
// which is what makes probing unknown documents safe.
func documentVersion(data []byte) int {
	if !gjson.ValidBytes(data) {
		return currentVersion
	}
	v := gjson.GetBytes(data, "version")
	if !v.Exists() {
		return 0
	}
	return int(v.Int())
}

// Migrate upgrades raw document bytes to the current version, applying
// each registered step in order. Documents already at or beyond the
// current version pass through untouched.
func (m *migrator) Migrate(data []byte) ([]byte, error) {
	version := documentVersion(data)
	if version >= m.current {
		return data, nil
	}

	for _, mig := range m.migrations {
		if mig.fromVersion < version || mig.toVersion > m.current {
			continue
		}
		migrated, err := mig.migrate(data)
		if err != nil {
			return data, fmt.Errorf("migration from version %d to %d failed: %w",
				mig.fromVersion, mig.toVersion, err)
		}
		data = migrated
		version = mig.toVersion
	}

	return data, nil
}

// defaultMigrator returns the migrator with all known steps registered.
func defaultMigrator() *migrator {
	m := newMigrator(currentVersion)
	m.register(migration{
		fromVersion: 0,
		toVersion:   1,
		description: "wrap flat path map in versioned document",
		migrate:     migrateLegacyFlatMap,
	})
	return m
}

// migrateLegacyFlatMap lifts the version 0 layout into the version 1
// document. Version 0 was a flat object whose keys were file paths mapped
// to direction strings, with two optional meta keys (defaultDirection,
// rememberPerFile) mixed in alongside the entries.
func migrateLegacyFlatMap(data []byte) ([]byte, error) {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("legacy document root is not an object")
	}

	doc := persistedConfig{
		Version:         1,
		RememberPerFile: true,
		FileDirections:  make(map[string]string),
	}

	root.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "defaultDirection":
			if d, err := direction.Parse(value.String()); err == nil {
				doc.DefaultDirection = d
			}
		case "rememberPerFile":
			doc.RememberPerFile = value.Bool()
		default:
			if value.Type == gjson.String {
				doc.FileDirections[key.String()] = value.String()
			}
		}
		return true
	})

	return json.Marshal(doc)
}
