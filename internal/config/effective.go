package config

import "fmt"

// ValidationError reports a single out-of-range or unrecognised config
// value, mirroring the teacher's internal/config/effective.go.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// BuildEffectiveConfig merges raw over the defaults and validates ranges
// (spec.md §6 table: masterDefaultPercent in [0.1,0.9],
// niriFocusedWidthRatio in [0.1,1.0], etc).
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := Default()

	if raw.DefaultRootContainerLayout != nil {
		layout := RootLayout(*raw.DefaultRootContainerLayout)
		switch layout {
		case RootLayoutTiles, RootLayoutAccordion, RootLayoutDwindle, RootLayoutScroll, RootLayoutMaster:
			cfg.DefaultRootContainerLayout = layout
		default:
			return nil, &ValidationError{Field: "defaultRootContainerLayout", Message: fmt.Sprintf("unknown layout %q", layout)}
		}
	}

	if raw.DefaultRootContainerOrientation != nil {
		o := RootOrientation(*raw.DefaultRootContainerOrientation)
		switch o {
		case OrientationHorizontal, OrientationVertical, OrientationAuto:
			cfg.DefaultRootContainerOrientation = o
		default:
			return nil, &ValidationError{Field: "defaultRootContainerOrientation", Message: fmt.Sprintf("unknown orientation %q", o)}
		}
	}

	if raw.AccordionPadding != nil {
		if *raw.AccordionPadding < 0 {
			return nil, &ValidationError{Field: "accordionPadding", Message: "must be >= 0"}
		}
		cfg.AccordionPadding = *raw.AccordionPadding
	}

	if raw.DwindleDefaultSplitRatio != nil {
		v := *raw.DwindleDefaultSplitRatio
		if v < 0.1 || v > 1.9 {
			return nil, &ValidationError{Field: "dwindleDefaultSplitRatio", Message: "must be in [0.1, 1.9]"}
		}
		cfg.DwindleDefaultSplitRatio = v
	}

	if raw.SplitWidthMultiplier != nil {
		if *raw.SplitWidthMultiplier <= 0 {
			return nil, &ValidationError{Field: "splitWidthMultiplier", Message: "must be > 0"}
		}
		cfg.SplitWidthMultiplier = *raw.SplitWidthMultiplier
	}

	if raw.MasterDefaultPercent != nil {
		v := *raw.MasterDefaultPercent
		if v < 0.1 || v > 0.9 {
			return nil, &ValidationError{Field: "masterDefaultPercent", Message: "must be in [0.1, 0.9]"}
		}
		cfg.MasterDefaultPercent = v
	}

	if raw.NiriFocusedWidthRatio != nil {
		v := *raw.NiriFocusedWidthRatio
		if v < 0.1 || v > 1.0 {
			return nil, &ValidationError{Field: "niriFocusedWidthRatio", Message: "must be in [0.1, 1.0]"}
		}
		cfg.NiriFocusedWidthRatio = v
	}

	if raw.Gaps != nil {
		if raw.Gaps.Inner != nil {
			if raw.Gaps.Inner.Horizontal != nil {
				if *raw.Gaps.Inner.Horizontal < 0 {
					return nil, &ValidationError{Field: "gaps.inner.horizontal", Message: "must be >= 0"}
				}
				cfg.Gaps.Inner.Horizontal = *raw.Gaps.Inner.Horizontal
			}
			if raw.Gaps.Inner.Vertical != nil {
				if *raw.Gaps.Inner.Vertical < 0 {
					return nil, &ValidationError{Field: "gaps.inner.vertical", Message: "must be >= 0"}
				}
				cfg.Gaps.Inner.Vertical = *raw.Gaps.Inner.Vertical
			}
		}
		if raw.Gaps.Outer != nil {
			o := raw.Gaps.Outer
			for field, p := range map[string]*int{
				"gaps.outer.top": o.Top, "gaps.outer.bottom": o.Bottom,
				"gaps.outer.left": o.Left, "gaps.outer.right": o.Right,
			} {
				if p != nil && *p < 0 {
					return nil, &ValidationError{Field: field, Message: "must be >= 0"}
				}
			}
			if o.Top != nil {
				cfg.Gaps.Outer.Top = *o.Top
			}
			if o.Bottom != nil {
				cfg.Gaps.Outer.Bottom = *o.Bottom
			}
			if o.Left != nil {
				cfg.Gaps.Outer.Left = *o.Left
			}
			if o.Right != nil {
				cfg.Gaps.Outer.Right = *o.Right
			}
		}
	}

	if raw.MouseSensitivity != nil {
		if *raw.MouseSensitivity <= 0 {
			return nil, &ValidationError{Field: "mouseSensitivity", Message: "must be > 0"}
		}
		cfg.MouseSensitivity = *raw.MouseSensitivity
	}

	cfg.NoOuterGapsInFullscreen = derefBool(raw.NoOuterGapsInFullscreen, cfg.NoOuterGapsInFullscreen)
	cfg.EnableNormalizationFlattenContainers = derefBool(raw.EnableNormalizationFlattenContainers, cfg.EnableNormalizationFlattenContainers)
	cfg.EnableNormalizationOppositeOrientationForNestedContainers = derefBool(
		raw.EnableNormalizationOppositeOrientationForNestedContainers,
		cfg.EnableNormalizationOppositeOrientationForNestedContainers,
	)

	return cfg, nil
}
