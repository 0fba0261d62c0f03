package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Location is one scene in the world graph. Its full ID is "area.scene".
type Location struct {
	SceneID     string
	Name        string
	AreaID      string
	AreaName    string
	MonsterType string
	Exits       map[string]string // direction → full scene ID
}

// FullID returns the area-qualified scene identifier.
func (l *Location) FullID() string {
	return l.AreaID + "." + l.SceneID
}

type sceneEntry struct {
	SceneID     string            `yaml:"scene_id"`
	Name        string            `yaml:"name"`
	MonsterType string            `yaml:"monster_type"`
	Exits       map[string]string `yaml:"exits"`
}

type areaEntry struct {
	AreaID string       `yaml:"area_id"`
	Name   string       `yaml:"name"`
	Scenes []sceneEntry `yaml:"scenes"`
}

type locationFile struct {
	Areas []areaEntry `yaml:"areas"`
}

// LocationTable holds all scenes indexed by full scene ID.
type LocationTable struct {
	locations map[string]*Location
}

// LoadLocations loads the scene graph from a YAML file.
func LoadLocations(path string) (*LocationTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}
	var f locationFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse locations: %w", err)
	}
	t := &LocationTable{locations: make(map[string]*Location)}
	for _, area := range f.Areas {
		for _, scene := range area.Scenes {
			loc := &Location{
				SceneID:     scene.SceneID,
				Name:        scene.Name,
				AreaID:      area.AreaID,
				AreaName:    area.Name,
				MonsterType: scene.MonsterType,
				Exits:       scene.Exits,
			}
			t.locations[loc.FullID()] = loc
		}
	}
	return t, nil
}

// Get returns a location by full scene ID, or nil if not found.
func (t *LocationTable) Get(fullID string) *Location {
	return t.locations[fullID]
}

// Count returns the number of loaded scenes.
func (t *LocationTable) Count() int {
	return len(t.locations)
}

// ExitTo returns the destination of moving in a direction, or "" if the
// scene has no exit that way.
func (t *LocationTable) ExitTo(fullID, direction string) string {
	loc := t.locations[fullID]
	if loc == nil {
		return ""
	}
	return loc.Exits[direction]
}
