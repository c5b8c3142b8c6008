// Package scenario describes worlds and their agents in YAML
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidScenario reports a malformed scenario document
	ErrInvalidScenario = errors.New("invalid scenario")
)

// Strategy kinds
const (
	KindWander   = "wander"
	KindNavigate = "navigate"
	KindPuppet   = "puppet"
	KindStatic   = "static" // Placed but never driven
)

// Collision names
const (
	CollisionStop   = "stop"
	CollisionSlide  = "slide"
	CollisionBounce = "bounce"
)

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Box struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Agent is one movable element and the strategy driving it
type Agent struct {
	Name      string  `yaml:"name"`
	At        Point   `yaml:"at"`
	Size      *Size   `yaml:"size,omitempty"` // Default 1x1
	MassPad   float64 `yaml:"mass_pad,omitempty"`
	Speed     float64 `yaml:"speed"`
	Heading   float64 `yaml:"heading,omitempty"`
	Strategy  string  `yaml:"strategy"`
	Collision string  `yaml:"collision,omitempty"`
	Group     uint16  `yaml:"group,omitempty"`

	Target *Point `yaml:"target,omitempty"` // Navigate or puppet destination
	Follow string `yaml:"follow,omitempty"` // Navigate toward another agent by name
	// Curious gives a wanderer a fixed point of interest
	Curious *Point `yaml:"curious,omitempty"`
}

// Scenario is a world layout with agents
type Scenario struct {
	Name      string  `yaml:"name"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Obstacles []Box   `yaml:"obstacles"`
	Agents    []Agent `yaml:"agents"`
}

// Parse decodes a scenario, rejecting unknown fields, and validates it
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// LoadFile parses the scenario at path
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Validate checks structure without touching the simulation
func (sc *Scenario) Validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return fmt.Errorf("%w: world size %dx%d", ErrInvalidScenario, sc.Width, sc.Height)
	}

	names := make(map[string]bool, len(sc.Agents))
	for i, a := range sc.Agents {
		if a.Name == "" {
			return fmt.Errorf("%w: agent %d has no name", ErrInvalidScenario, i)
		}
		if names[a.Name] {
			return fmt.Errorf("%w: duplicate agent %q", ErrInvalidScenario, a.Name)
		}
		names[a.Name] = true
	}

	for _, a := range sc.Agents {
		if err := a.validate(names); err != nil {
			return fmt.Errorf("%w: agent %q: %v", ErrInvalidScenario, a.Name, err)
		}
	}
	for i, o := range sc.Obstacles {
		if o.Width <= 0 || o.Height <= 0 {
			return fmt.Errorf("%w: obstacle %d has no area", ErrInvalidScenario, i)
		}
	}
	return nil
}

func (a Agent) validate(names map[string]bool) error {
	if a.Size != nil && (a.Size.Width <= 0 || a.Size.Height <= 0) {
		return errors.New("size must be positive")
	}
	if a.Speed < 0 {
		return errors.New("negative speed")
	}
	switch a.Collision {
	case "", CollisionStop, CollisionSlide, CollisionBounce:
	default:
		return fmt.Errorf("unknown collision %q", a.Collision)
	}

	switch a.Strategy {
	case KindWander, KindStatic:
	case KindNavigate:
		switch {
		case a.Target == nil && a.Follow == "":
			return errors.New("navigate needs target or follow")
		case a.Target != nil && a.Follow != "":
			return errors.New("target and follow are exclusive")
		case a.Follow == a.Name:
			return errors.New("cannot follow itself")
		case a.Follow != "" && !names[a.Follow]:
			return fmt.Errorf("follows unknown agent %q", a.Follow)
		}
	case KindPuppet:
		if a.Target == nil {
			return errors.New("puppet needs target")
		}
	default:
		return fmt.Errorf("unknown strategy %q", a.Strategy)
	}
	return nil
}
