package doctor

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/nifeed/internal/config"
)

type configUnknownKeyDetail struct {
	Path       string
	Allowed    []string
	Suggestion string
}

type configSchemaNode struct {
	children map[string]*configSchemaNode
}

var (
	configSchemaOnce sync.Once
	configSchemaRoot *configSchemaNode
)

// summarizeUnknownKeys returns a compact summary suitable for single-line output.
func summarizeUnknownKeys(details []configUnknownKeyDetail) string {
	paths := make([]string, 0, len(details))
	for _, detail := range details {
		paths = append(paths, detail.Path)
	}
	sort.Strings(paths)
	return fmt.Sprintf("unrecognized config keys: %s", strings.Join(paths, ", "))
}

// formatUnknownKeyRecommendation renders a multi-line recommendation for unknown keys.
func formatUnknownKeyRecommendation(configPath string, details []configUnknownKeyDetail) string {
	lines := []string{fmt.Sprintf("Edit %s to remove or rename these keys:", configPath)}
	for _, detail := range details {
		line := "- " + detail.Path
		if len(detail.Allowed) > 0 {
			line = fmt.Sprintf("%s (allowed keys: %s)", line, strings.Join(detail.Allowed, ", "))
		}
		if detail.Suggestion != "" {
			line = fmt.Sprintf("%s (did you mean %s?)", line, detail.Suggestion)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// unknownConfigKeys returns the keys in data that config.Config does not define.
func unknownConfigKeys(data []byte) ([]configUnknownKeyDetail, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var details []configUnknownKeyDetail
	findUnknownConfigKeys(raw, configSchema(), "", &details)
	sort.Slice(details, func(i, j int) bool {
		return details[i].Path < details[j].Path
	})
	return details, nil
}

// configSchema builds and caches the key tree derived from config.Config.
func configSchema() *configSchemaNode {
	configSchemaOnce.Do(func() {
		configSchemaRoot = buildSchema(reflect.TypeOf(config.Config{}))
	})
	return configSchemaRoot
}

// buildSchema constructs a key tree from toml struct tags. Non-struct fields are leaves.
func buildSchema(t reflect.Type) *configSchemaNode {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	node := &configSchemaNode{}
	if t.Kind() != reflect.Struct {
		return node
	}
	node.children = make(map[string]*configSchemaNode)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key := strings.Split(strings.TrimSpace(field.Tag.Get("toml")), ",")[0]
		if key == "" || key == "-" {
			continue
		}
		node.children[key] = buildSchema(field.Type)
	}
	return node
}

func findUnknownConfigKeys(raw map[string]any, schema *configSchemaNode, path string, details *[]configUnknownKeyDetail) {
	allowed := schema.allowedKeys()
	for key, value := range raw {
		child, ok := schema.lookup(key)
		if !ok {
			*details = append(*details, configUnknownKeyDetail{
				Path:       joinConfigPath(path, key),
				Allowed:    allowed,
				Suggestion: suggestKeyRename(key, schema, path),
			})
			continue
		}
		if nested, ok := value.(map[string]any); ok && len(child.children) > 0 {
			findUnknownConfigKeys(nested, child, joinConfigPath(path, key), details)
		}
	}
}

// lookup finds the child for key. Keys match case-insensitively, as they do when decoding.
func (n *configSchemaNode) lookup(key string) (*configSchemaNode, bool) {
	if child, ok := n.children[key]; ok {
		return child, true
	}
	for name, child := range n.children {
		if strings.EqualFold(name, key) {
			return child, true
		}
	}
	return nil, false
}

func (n *configSchemaNode) allowedKeys() []string {
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func joinConfigPath(path string, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// suggestKeyRename maps an unknown key to a known key in the same table when
// they differ only by case or by dashes in place of underscores.
func suggestKeyRename(key string, schema *configSchemaNode, path string) string {
	normalized := strings.ReplaceAll(key, "-", "_")
	for allowed := range schema.children {
		if strings.EqualFold(normalized, allowed) {
			return joinConfigPath(path, allowed)
		}
	}
	return ""
}
