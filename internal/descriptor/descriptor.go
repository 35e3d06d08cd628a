package descriptor

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMalformed reports a descriptor whose content cannot be parsed into the
// expected key/value schema.
var ErrMalformed = errors.New("descriptor is malformed")

// ErrInvalidNeedType reports a needs entry that is not a string.
var ErrInvalidNeedType = errors.New("needs entry is not a string")

// File is the raw, unresolved content of one .bld descriptor. All paths are
// kept exactly as written; resolution against the descriptor's directory is
// the caller's job.
type File struct {
	Src     []string
	Include []string
	Needs   []string

	// Empty reports that the document contained no content at all. An empty
	// descriptor is valid and describes a leaf node.
	Empty bool
}

// Load reads and parses a single descriptor file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes one descriptor document. The recognized keys are src,
// include and needs, each an ordered list of strings; absent keys are
// treated as empty lists and unrecognized keys are ignored. A non-string
// needs entry yields ErrInvalidNeedType; any other schema violation yields
// ErrMalformed. The path argument is used only for error messages.
func Parse(path string, data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("descriptor %s: %w: %v", path, ErrMalformed, err)
	}

	file := &File{}

	if doc.Kind == 0 || len(doc.Content) == 0 {
		file.Empty = true
		return file, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		file.Empty = true
		return file, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("descriptor %s: %w: top level is not a mapping", path, ErrMalformed)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "src":
			entries, err := stringList(path, "src", value, ErrMalformed)
			if err != nil {
				return nil, err
			}
			file.Src = entries
		case "include":
			entries, err := stringList(path, "include", value, ErrMalformed)
			if err != nil {
				return nil, err
			}
			file.Include = entries
		case "needs":
			entries, err := stringList(path, "needs", value, ErrInvalidNeedType)
			if err != nil {
				return nil, err
			}
			file.Needs = entries
		}
	}

	return file, nil
}

// stringList decodes a sequence of string scalars. A non-sequence value is
// always ErrMalformed; a non-string element is reported as entryErr, which
// lets needs entries carry their own error kind.
func stringList(path, key string, node *yaml.Node, entryErr error) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("descriptor %s: %w: %q is not a list", path, ErrMalformed, key)
	}

	entries := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
			return nil, fmt.Errorf("descriptor %s: %w: %q entry %q", path, entryErr, key, item.Value)
		}
		entries = append(entries, item.Value)
	}
	return entries, nil
}
