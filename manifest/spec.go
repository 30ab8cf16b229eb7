package manifest

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/voidgate/core"
	"github.com/lixenwraith/voidgate/tween"
	"github.com/lixenwraith/voidgate/vmath"
)

// File is the root of a sequence manifest document
// Sequences are a list, not a map, so duplicate names are detectable
// and declaration order is preserved
type File struct {
	Sequences []SequenceSpec `yaml:"sequences"`
}

// SequenceSpec is one named transition: every duration, easing choice
// and trigger threshold for it is defined here and nowhere else
type SequenceSpec struct {
	Name       string        `yaml:"name"`
	Duration   Duration      `yaml:"duration"`
	Tail       *Duration     `yaml:"tail"`
	OnComplete string        `yaml:"on_complete"`
	Channels   []ChannelSpec `yaml:"channels"`
	Triggers   []TriggerSpec `yaml:"triggers"`
}

// ChannelSpec is one animated property row
type ChannelSpec struct {
	Target   string    `yaml:"target"`
	From     ValueSpec `yaml:"from"`
	To       ValueSpec `yaml:"to"`
	Duration Duration  `yaml:"duration"`
	Easing   string    `yaml:"easing"`
}

// TriggerSpec is one one-shot effect row
type TriggerSpec struct {
	Name   string  `yaml:"name"`
	At     float64 `yaml:"at"`
	Effect string  `yaml:"effect"`
}

// Duration wraps time.Duration with YAML decoding from strings like
// "2500ms" or "1.2s"
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("duration: want a string like \"250ms\", got %s", node.Tag)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// ValueSpec is a polymorphic channel endpoint: a bare number is a
// scalar, "#rrggbb" is a color, a 3-element list is a vector
type ValueSpec struct {
	val tween.Value
}

func (v *ValueSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if strings.HasPrefix(node.Value, "#") {
			rgb, err := core.ParseHex(node.Value)
			if err != nil {
				return err
			}
			v.val = tween.Color(rgb)
			return nil
		}
		var f float64
		if err := node.Decode(&f); err != nil {
			return fmt.Errorf("value %q: want number, color or 3-vector", node.Value)
		}
		v.val = tween.Scalar(f)
		return nil

	case yaml.SequenceNode:
		var parts []float64
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("vector value: %w", err)
		}
		if len(parts) != 3 {
			return fmt.Errorf("vector value: want 3 components, got %d", len(parts))
		}
		v.val = tween.Vec3(vmath.Vec3{X: parts[0], Y: parts[1], Z: parts[2]})
		return nil

	default:
		return fmt.Errorf("value: unsupported YAML node kind %d", node.Kind)
	}
}

// Value returns the decoded tween value, nil if the spec was absent
func (v ValueSpec) Value() tween.Value {
	return v.val
}
