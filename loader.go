package polyglot

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadMessagesJSON builds a Messages map from JSON files in an fs.FS.
// The fs.FS root must contain locale directories directly; every file inside
// a locale directory merges into that locale's tree.
//
// Example structure:
//
//	en/common.json
//	en/errors.json
//	de/common.json
func LoadMessagesJSON(fsys fs.FS) (Messages, error) {
	return loadDir(fsys, ".json", func(data []byte, v any) error {
		return json.Unmarshal(data, v)
	})
}

// LoadMessagesYAML builds a Messages map from YAML files in an fs.FS.
// File convention: {locale}/{name}.yaml or {locale}/{name}.yml.
func LoadMessagesYAML(fsys fs.FS) (Messages, error) {
	return loadDir(fsys, ".yaml", func(data []byte, v any) error {
		return yaml.Unmarshal(data, v)
	})
}

func loadDir(fsys fs.FS, ext string, unmarshal func([]byte, any) error) (Messages, error) {
	messages := make(Messages)

	err := fs.WalkDir(fsys, ".", func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		fileExt := strings.ToLower(path.Ext(filePath))

		var matches bool
		if ext == ".yaml" {
			matches = fileExt == ".yaml" || fileExt == ".yml"
		} else {
			matches = fileExt == ext
		}
		if !matches {
			return nil
		}

		dir := path.Dir(filePath)
		if dir == "." || dir == "" {
			return fmt.Errorf("%w: file %q must be inside a locale directory", ErrInvalidFile, filePath)
		}

		locale := path.Base(dir)

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			return fmt.Errorf("reading %q: %w", filePath, err)
		}

		var tree map[string]any
		if err := unmarshal(data, &tree); err != nil {
			return fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filePath, err)
		}

		messages[locale] = mergeTrees(messages[locale], tree)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}
