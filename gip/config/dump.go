package config

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Dump writes the effective configuration as YAML, preserving section and
// option order as loaded.  It backs the dump-config command and the
// GIP_DUMP_CONFIG debugging hook.
func (s *Site) Dump(w io.Writer) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, section := range s.Sections() {
		sectionNode := &yaml.Node{Kind: yaml.MappingNode}
		for _, option := range s.Options(section) {
			sectionNode.Content = append(sectionNode.Content,
				scalar(option), scalar(s.Get(section, option, "")))
		}
		root.Content = append(root.Content, scalar(section), sectionNode)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return err
	}
	return enc.Close()
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}
