// Package config loads and validates the engine configuration described in
// spec.md §6, following the teacher's strict-YAML-with-validated-effective-
// config pattern (internal/config/loader.go, internal/config/effective.go)
// trimmed of the project-workspace-override and include-file machinery that
// has no equivalent in this spec.
package config

// RootLayout is the initial layout applied to a freshly created workspace root.
type RootLayout string

const (
	RootLayoutTiles     RootLayout = "tiles"
	RootLayoutAccordion RootLayout = "accordion"
	RootLayoutDwindle   RootLayout = "dwindle"
	RootLayoutScroll    RootLayout = "scroll"
	RootLayoutMaster    RootLayout = "master"
)

// RootOrientation is the initial orientation applied to a freshly created workspace root.
type RootOrientation string

const (
	OrientationHorizontal RootOrientation = "horizontal"
	OrientationVertical   RootOrientation = "vertical"
	OrientationAuto       RootOrientation = "auto"
)

// InnerGaps is the gap size between sibling windows/containers.
type InnerGaps struct {
	Horizontal int `yaml:"horizontal"`
	Vertical   int `yaml:"vertical"`
}

// OuterGaps is the gap size between the workspace edge and its outermost windows.
type OuterGaps struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Gaps bundles inner and outer gap configuration.
type Gaps struct {
	Inner InnerGaps `yaml:"inner"`
	Outer OuterGaps `yaml:"outer"`
}

// Config is the validated, effective engine configuration — the table in
// spec.md §6, one field per row.
type Config struct {
	DefaultRootContainerLayout      RootLayout      `yaml:"defaultRootContainerLayout"`
	DefaultRootContainerOrientation RootOrientation `yaml:"defaultRootContainerOrientation"`

	AccordionPadding int `yaml:"accordionPadding"`

	DwindleDefaultSplitRatio float64 `yaml:"dwindleDefaultSplitRatio"`
	SplitWidthMultiplier     float64 `yaml:"splitWidthMultiplier"`

	MasterDefaultPercent float64 `yaml:"masterDefaultPercent"`

	NiriFocusedWidthRatio float64 `yaml:"niriFocusedWidthRatio"`

	Gaps Gaps `yaml:"gaps"`

	MouseSensitivity float64 `yaml:"mouseSensitivity"`

	NoOuterGapsInFullscreen bool `yaml:"noOuterGapsInFullscreen"`

	EnableNormalizationFlattenContainers                       bool `yaml:"enableNormalizationFlattenContainers"`
	EnableNormalizationOppositeOrientationForNestedContainers bool `yaml:"enableNormalizationOppositeOrientationForNestedContainers"`
}

// Default returns the configuration with every default from spec.md §6 applied.
func Default() *Config {
	return &Config{
		DefaultRootContainerLayout:      RootLayoutTiles,
		DefaultRootContainerOrientation: OrientationAuto,
		AccordionPadding:                30,
		DwindleDefaultSplitRatio:        1.0,
		SplitWidthMultiplier:            1.0,
		MasterDefaultPercent:            0.5,
		NiriFocusedWidthRatio:           0.8,
		MouseSensitivity:                1.0,
		NoOuterGapsInFullscreen:         true,
		EnableNormalizationFlattenContainers:                      true,
		EnableNormalizationOppositeOrientationForNestedContainers: true,
	}
}
