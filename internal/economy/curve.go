package economy

import (
	"fmt"
	"math"
	"strings"
)

// CurveLevels is the number of levels produced by the curve designer.
const CurveLevels = 99

// CurveMode selects the shape of a generated level curve.
type CurveMode string

const (
	CurveLinear      CurveMode = "LINEAR"
	CurveExponential CurveMode = "EXPONENTIAL"
	CurveEase        CurveMode = "EASE"
	CurveScript      CurveMode = "SCRIPT"
)

// ParseCurveMode accepts mode names case-insensitively.
func ParseCurveMode(s string) (CurveMode, error) {
	switch m := CurveMode(strings.ToUpper(strings.TrimSpace(s))); m {
	case CurveLinear, CurveExponential, CurveEase, CurveScript:
		return m, nil
	case "EXP":
		return CurveExponential, nil
	default:
		return "", fmt.Errorf("economy: unknown curve mode %q", s)
	}
}

// GenerateCurve returns the XP required for levels 1..99.
// SCRIPT mode needs a Lua source and goes through GenerateScriptCurve instead.
func GenerateCurve(mode CurveMode, base, factor float64) ([]int, error) {
	if !isFinite(base) || !isFinite(factor) {
		return nil, fmt.Errorf("economy: curve parameters must be finite")
	}
	curve := make([]int, 0, CurveLevels)
	for i := 1; i <= CurveLevels; i++ {
		var xp float64
		switch mode {
		case CurveLinear:
			xp = base + float64(i-1)*factor*10
		case CurveExponential:
			xp = base * math.Pow(factor, float64(i-1))
		case CurveEase:
			t := float64(i-1) / float64(CurveLevels-1)
			ease := t * t * (3 - 2*t)
			xp = base + ease*(base*50*factor)
		default:
			return nil, fmt.Errorf("economy: curve mode %q cannot be generated directly", mode)
		}
		curve = append(curve, clampXP(xp))
	}
	return curve, nil
}

// clampXP floors v and saturates at math.MaxInt; steep curves pass the int
// range long before level 99.
func clampXP(v float64) int {
	if v >= math.MaxInt {
		return math.MaxInt
	}
	return int(math.Floor(v))
}

// DefaultRequiredXP is the threshold used for levels the curve does not cover.
func DefaultRequiredXP(level int) int {
	return int(math.Floor(100 * math.Pow(1.1, float64(level-1))))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
