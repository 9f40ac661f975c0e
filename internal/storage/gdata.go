package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const gdataPrefsObject = "prefs"

// GdataPrefs keeps prefs in the platform's per-user app data directory, one
// small YAML document per key. Used when no score database is wanted.
type GdataPrefs struct {
	m *gdata.Manager
}

// OpenGdataPrefs opens the app data store named appName.
func OpenGdataPrefs(appName string) (*GdataPrefs, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data %s: %w", appName, err)
	}
	return &GdataPrefs{m: m}, nil
}

type gdataInt struct {
	Value int `yaml:"value"`
}

// SetInt stores value under key.
func (p *GdataPrefs) SetInt(key string, value int) error {
	data, err := yaml.Marshal(gdataInt{Value: value})
	if err != nil {
		return fmt.Errorf("storage: cannot encode pref %s: %w", key, err)
	}
	if err := p.m.SaveObjectProp(gdataPrefsObject, key, data); err != nil {
		return fmt.Errorf("storage: cannot save pref %s: %w", key, err)
	}
	return nil
}

// Int returns the value stored under key, or 0 if the key was never set.
func (p *GdataPrefs) Int(key string) (int, error) {
	if !p.m.ObjectPropExists(gdataPrefsObject, key) {
		return 0, nil
	}
	data, err := p.m.LoadObjectProp(gdataPrefsObject, key)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load pref %s: %w", key, err)
	}
	var v gdataInt
	if err := yaml.Unmarshal(data, &v); err != nil {
		return 0, fmt.Errorf("storage: cannot decode pref %s: %w", key, err)
	}
	return v.Value, nil
}
