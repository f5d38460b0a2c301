package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileNames are the settings files looked up in the working directory,
// in order of preference
var DefaultFileNames = []string{"appSettings.json", "appSettings.yaml", "appSettings.yml"}

// LoadFile reads a settings file. Files ending in .yaml or .yml are decoded as
// YAML, everything else as JSON. Keys match case-insensitively in both.
func LoadFile(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read config file: %w", err)
	}

	src := Source{Name: filepath.Base(path)}
	if len(bytes.TrimSpace(data)) == 0 {
		return src, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &src)
	default:
		err = json.Unmarshal(data, &src)
	}
	if err != nil {
		return Source{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return src, nil
}

// LoadDefaultFile loads the first of DefaultFileNames found in dir. A missing
// settings file is not an error: an empty Source and an empty path are returned.
func LoadDefaultFile(dir string) (Source, string, error) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Source{}, "", fmt.Errorf("failed to stat config file: %w", err)
		}
		if info.IsDir() {
			continue
		}

		src, err := LoadFile(path)
		if err != nil {
			return Source{}, "", err
		}
		return src, path, nil
	}

	return Source{}, "", nil
}

// yamlKeys maps the lower cased yaml keys of Source to their spelling
var yamlKeys = func() map[string]string {
	keys := make(map[string]string)
	t := reflect.TypeOf(Source{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		if name != "" && name != "-" {
			keys[strings.ToLower(name)] = name
		}
	}
	return keys
}()

// decodeYAML decodes data into src after rewriting the top-level keys to the
// spelling of the struct tags, so "ProjectId" and "projectid" are read too
func decodeYAML(data []byte, src *Source) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i]
			if name, ok := yamlKeys[strings.ToLower(key.Value)]; ok {
				key.Value = name
			}
		}
	}
	return root.Decode(src)
}
