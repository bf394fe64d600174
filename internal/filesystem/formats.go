package filesystem

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	toml "github.com/pelletier/go-toml/v2"
)

// initialContent returns the seed payload written into newly created files
// of structured formats. The boolean reports whether the extension has a
// defined seed: .json gets an empty object, .yaml/.yml an empty document,
// .toml an empty table set, and .csv an empty file.
func initialContent(ext string) ([]byte, bool) {
	switch strings.ToLower(ext) {
	case ".json":
		data, _ := sonic.Marshal(struct{}{})
		return data, true
	case ".yaml", ".yml":
		data, _ := yaml.Marshal(map[string]interface{}{})
		return data, true
	case ".toml":
		data, _ := toml.Marshal(map[string]interface{}{})
		return data, true
	case ".csv":
		return nil, true
	}
	return nil, false
}
