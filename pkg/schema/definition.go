package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Wildcard matches every unhandled symbol in Rule.Read and echoes the read symbol in Rule.Write.
const Wildcard = "*"

// AltBlank is accepted on the tape as a stand-in for the blank symbol.
const AltBlank = "U"

// Definition is the serializable description of a machine.
type Definition struct {
	Name        string `yaml:"name" json:"name" mapstructure:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`

	// Input defaults to 0 and 1.
	Input []string `yaml:"input,omitempty" json:"input,omitempty" mapstructure:"input"`
	// Tape holds one symbol per character. "#" and "U" are blank cells.
	Tape   string   `yaml:"tape" json:"tape" mapstructure:"tape"`
	States []string `yaml:"states" json:"states" mapstructure:"states"`
	// Start defaults to the first state.
	Start  string   `yaml:"start,omitempty" json:"start,omitempty" mapstructure:"start"`
	Accept []string `yaml:"accept" json:"accept" mapstructure:"accept"`

	// SkipDuplicates drops repeated (state, read) rules instead of rejecting the definition.
	SkipDuplicates bool   `yaml:"skip_duplicates,omitempty" json:"skip_duplicates,omitempty" mapstructure:"skip_duplicates"`
	Transitions    []Rule `yaml:"transitions" json:"transitions" mapstructure:"transitions"`
}

// Rule is one entry of the transition table.
type Rule struct {
	State string `yaml:"state" json:"state" mapstructure:"state"`
	Read  string `yaml:"read" json:"read" mapstructure:"read"`
	Write string `yaml:"write" json:"write" mapstructure:"write"`
	Move  string `yaml:"move" json:"move" mapstructure:"move"`
	Next  string `yaml:"next" json:"next" mapstructure:"next"`
}

func (r Rule) String() string {
	return fmt.Sprintf("(%s, %s) -> (%s, %s, %s)", r.State, r.Read, r.Next, r.Write, r.Move)
}

// Parse decodes a YAML or JSON definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	return &def, nil
}

// Load reads a definition file (YAML or JSON by extension).
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	var def Definition
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return &def, nil
}

// Decode converts a loosely typed map (e.g. tool arguments) into a Definition.
func Decode(raw map[string]any) (*Definition, error) {
	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}
	return &def, nil
}

// Marshal encodes the definition as YAML.
func (d *Definition) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}
