// Package settings holds the read-only knobs of a generation request.
package settings

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/multierr"

	"fixture-generator/utils"
)

// Mode controls how selectors that never matched are reported.
type Mode string

const (
	// ModeStrict fails the request with an UnusedSelectorError.
	ModeStrict Mode = "strict"
	// ModeLenient only reports unused selectors as diagnostics.
	ModeLenient Mode = "lenient"
)

// AssignmentPolicy controls member assignment failures.
type AssignmentPolicy string

const (
	AssignmentIgnore AssignmentPolicy = "ignore"
	AssignmentFail   AssignmentPolicy = "fail"
)

const (
	defaultMinSize   = 2
	defaultMaxSize   = 6
	defaultNumberMax = 10_000
)

// Settings are read-only for the duration of a request.
type Settings struct {
	Seed                  uint64           `yaml:"seed"`
	MaxDepth              int              `yaml:"maxDepth"`
	MaxGenerationAttempts int              `yaml:"maxGenerationAttempts"`
	FailOnMaxAttempts     bool             `yaml:"failOnMaxAttempts"`
	Mode                  Mode             `yaml:"mode"`
	OnAssignmentError     AssignmentPolicy `yaml:"onAssignmentError"`
	PopulateUnexported    bool             `yaml:"populateUnexported"`

	Collection CollectionSettings `yaml:"collection"`
	Map        MapSettings        `yaml:"map"`
	Array      ArraySettings      `yaml:"array"`
	String     StringSettings     `yaml:"string"`
	Integer    IntegerSettings    `yaml:"integer"`
	Float      FloatSettings      `yaml:"float"`
	Time       TimeSettings       `yaml:"time"`
	Duration   DurationSettings   `yaml:"duration"`
	Pointer    NullableSettings   `yaml:"pointer"`
	Record     NullableSettings   `yaml:"record"`
	Interface  NullableSettings   `yaml:"interface"`
}

type CollectionSettings struct {
	MinSize          int  `yaml:"minSize"`
	MaxSize          int  `yaml:"maxSize"`
	Nullable         bool `yaml:"nullable"`
	ElementsNullable bool `yaml:"elementsNullable"`
}

type MapSettings struct {
	MinSize        int  `yaml:"minSize"`
	MaxSize        int  `yaml:"maxSize"`
	Nullable       bool `yaml:"nullable"`
	KeysNullable   bool `yaml:"keysNullable"`
	ValuesNullable bool `yaml:"valuesNullable"`
}

type ArraySettings struct {
	ElementsNullable bool `yaml:"elementsNullable"`
}

type StringSettings struct {
	MinLength  int  `yaml:"minLength"`
	MaxLength  int  `yaml:"maxLength"`
	AllowEmpty bool `yaml:"allowEmpty"`
}

type IntegerSettings struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

type FloatSettings struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type TimeSettings struct {
	Min time.Time `yaml:"min"`
	Max time.Time `yaml:"max"`
}

type DurationSettings struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

type NullableSettings struct {
	Nullable bool `yaml:"nullable"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		MaxDepth:              8,
		MaxGenerationAttempts: 1000,
		FailOnMaxAttempts:     true,
		Mode:                  ModeStrict,
		OnAssignmentError:     AssignmentIgnore,
		Collection:            CollectionSettings{MinSize: defaultMinSize, MaxSize: defaultMaxSize},
		Map:                   MapSettings{MinSize: defaultMinSize, MaxSize: defaultMaxSize},
		String:                StringSettings{MinLength: 3, MaxLength: 10},
		Integer:               IntegerSettings{Min: 1, Max: defaultNumberMax},
		Float:                 FloatSettings{Min: 1, Max: defaultNumberMax},
		Time: TimeSettings{
			Min: time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
			Max: time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		Duration: DurationSettings{Min: time.Second, Max: 24 * time.Hour},
	}
}

// Validate rejects impossible settings and adjusts inverted ranges:
// a minimum above its maximum raises the maximum to the minimum.
func (s *Settings) Validate() error {
	var err error

	if s.MaxDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("maxDepth must not be negative: %d", s.MaxDepth))
	}

	if s.MaxGenerationAttempts < 1 {
		err = multierr.Append(err, fmt.Errorf("maxGenerationAttempts must be positive: %d", s.MaxGenerationAttempts))
	}

	switch s.Mode {
	case ModeStrict, ModeLenient:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown mode %q", s.Mode))
	}

	switch s.OnAssignmentError {
	case AssignmentIgnore, AssignmentFail:
	default:
		err = multierr.Append(err, fmt.Errorf("unknown onAssignmentError policy %q", s.OnAssignmentError))
	}

	err = multierr.Append(err, adjustSize("collection", &s.Collection.MinSize, &s.Collection.MaxSize))
	err = multierr.Append(err, adjustSize("map", &s.Map.MinSize, &s.Map.MaxSize))
	err = multierr.Append(err, adjustSize("string", &s.String.MinLength, &s.String.MaxLength))

	utils.RaiseMax(s.Integer.Min, &s.Integer.Max)

	if math.IsNaN(s.Float.Min) || math.IsNaN(s.Float.Max) {
		err = multierr.Append(err, errors.New("float range must not be NaN"))
	} else {
		utils.RaiseMax(s.Float.Min, &s.Float.Max)
	}

	if s.Time.Min.After(s.Time.Max) {
		s.Time.Max = s.Time.Min
	}

	utils.RaiseMax(s.Duration.Min, &s.Duration.Max)

	return err
}

func adjustSize(name string, min, max *int) error {
	if *min < 0 || *max < 0 {
		return fmt.Errorf("%s size range must not be negative: [%d, %d]", name, *min, *max)
	}

	utils.RaiseMax(*min, max)

	return nil
}
