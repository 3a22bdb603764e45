package config

// RawConfig is the as-decoded YAML document, before defaults and
// validation are applied. Every field is a pointer so that "absent" is
// distinguishable from "explicitly zero" (mirrors the teacher's
// internal/config/raw.go RawLayout pattern).
type RawConfig struct {
	DefaultRootContainerLayout      *string `yaml:"defaultRootContainerLayout"`
	DefaultRootContainerOrientation *string `yaml:"defaultRootContainerOrientation"`

	AccordionPadding *int `yaml:"accordionPadding"`

	DwindleDefaultSplitRatio *float64 `yaml:"dwindleDefaultSplitRatio"`
	SplitWidthMultiplier     *float64 `yaml:"splitWidthMultiplier"`

	MasterDefaultPercent *float64 `yaml:"masterDefaultPercent"`

	NiriFocusedWidthRatio *float64 `yaml:"niriFocusedWidthRatio"`

	Gaps *RawGaps `yaml:"gaps"`

	MouseSensitivity *float64 `yaml:"mouseSensitivity"`

	NoOuterGapsInFullscreen *bool `yaml:"noOuterGapsInFullscreen"`

	EnableNormalizationFlattenContainers                       *bool `yaml:"enableNormalizationFlattenContainers"`
	EnableNormalizationOppositeOrientationForNestedContainers *bool `yaml:"enableNormalizationOppositeOrientationForNestedContainers"`
}

// RawGaps mirrors Gaps with optional fields.
type RawGaps struct {
	Inner *RawInnerGaps `yaml:"inner"`
	Outer *RawOuterGaps `yaml:"outer"`
}

type RawInnerGaps struct {
	Horizontal *int `yaml:"horizontal"`
	Vertical   *int `yaml:"vertical"`
}

type RawOuterGaps struct {
	Top    *int `yaml:"top"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
	Right  *int `yaml:"right"`
}

func derefBool(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
