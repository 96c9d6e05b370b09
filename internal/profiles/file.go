package profiles

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type profileFile struct {
	Profiles []yaml.Node `yaml:"profiles"`
}

// LoadFile reads profiles from a YAML document, either a bare list
//
//	- name: bench
//	  zoom: 1.0
//
// or the same list under a top-level profiles key. Fields left out inherit
// the value from Default.
func LoadFile(path string) ([]Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profiles file: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

func Decode(r io.Reader) ([]Profile, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	entries, err := profileEntries(&root)
	if err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	result := make([]Profile, 0, len(entries))
	for i := range entries {
		p := Default()
		p.Name = ""
		if err := decodeStrict(entries[i], &p); err != nil {
			return nil, fmt.Errorf("profile #%d: %w", i+1, err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	return result, nil
}

func profileEntries(root *yaml.Node) ([]*yaml.Node, error) {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = node.Content[0]
	}

	switch node.Kind {
	case yaml.SequenceNode:
		return node.Content, nil
	case yaml.MappingNode:
		var doc profileFile
		if err := decodeStrict(node, &doc); err != nil {
			return nil, err
		}
		entries := make([]*yaml.Node, 0, len(doc.Profiles))
		for i := range doc.Profiles {
			entries = append(entries, &doc.Profiles[i])
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("line %d: expected a list of profiles", node.Line)
	}
}

// decodeStrict re-encodes a node so KnownFields applies to it.
func decodeStrict(node *yaml.Node, out interface{}) error {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(out)
}
