package economy

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func TestGenerateCurve(t *testing.T) {
	tests := []struct {
		mode        CurveMode
		base        float64
		factor      float64
		first, next int
		last        int
	}{
		{CurveLinear, 100, 1.1, 100, 111, 1178},
		{CurveExponential, 100, 1.1, 100, 110, 0},
		{CurveEase, 100, 1.1, 100, 0, 5600},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			curve, err := GenerateCurve(tt.mode, tt.base, tt.factor)
			if err != nil {
				t.Fatalf("GenerateCurve() error: %v", err)
			}
			if len(curve) != CurveLevels {
				t.Fatalf("len = %d, expected %d", len(curve), CurveLevels)
			}
			if curve[0] != tt.first {
				t.Errorf("level 1 = %d, expected %d", curve[0], tt.first)
			}
			if tt.next != 0 && curve[1] != tt.next {
				t.Errorf("level 2 = %d, expected %d", curve[1], tt.next)
			}
			if tt.last != 0 && curve[CurveLevels-1] != tt.last {
				t.Errorf("level 99 = %d, expected %d", curve[CurveLevels-1], tt.last)
			}
			for i := 1; i < len(curve); i++ {
				if curve[i] < curve[i-1] {
					t.Fatalf("curve decreases at level %d", i+1)
				}
			}
		})
	}
}

func TestGenerateCurveSaturates(t *testing.T) {
	curve, err := GenerateCurve(CurveExponential, 100, 2)
	if err != nil {
		t.Fatalf("GenerateCurve() error: %v", err)
	}
	for i := 1; i < len(curve); i++ {
		if curve[i] < curve[i-1] {
			t.Fatalf("level %d = %d is below level %d = %d", i+1, curve[i], i, curve[i-1])
		}
	}
	if curve[CurveLevels-1] != math.MaxInt {
		t.Errorf("level 99 = %d, expected math.MaxInt", curve[CurveLevels-1])
	}

	pr := NewProgress(NewWallet(0))
	pr.SetLevelCurve(curve)
	pr.SetLevel(60)
	if gained := pr.AddXP(5); gained != 0 || pr.Level != 60 {
		t.Errorf("AddXP(5) gained %d levels, now level %d; expected to stay at 60", gained, pr.Level)
	}
}

func TestGenerateCurveRejects(t *testing.T) {
	if _, err := GenerateCurve(CurveScript, 100, 1); err == nil {
		t.Error("SCRIPT mode should need a script")
	}
	if _, err := GenerateCurve(CurveLinear, 100, math.NaN()); err == nil {
		t.Error("NaN factor should be rejected")
	}
}

func TestParseCurveMode(t *testing.T) {
	for in, want := range map[string]CurveMode{"linear": CurveLinear, " Ease ": CurveEase, "exp": CurveExponential} {
		got, err := ParseCurveMode(in)
		if err != nil || got != want {
			t.Errorf("ParseCurveMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseCurveMode("cubic"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestGenerateScriptCurve(t *testing.T) {
	curve, err := GenerateScriptCurve(context.Background(), `function xp(level, base, factor) return base * level + factor end`, 50, 0.5)
	if err != nil {
		t.Fatalf("GenerateScriptCurve() error: %v", err)
	}
	if len(curve) != CurveLevels || curve[0] != 50 || curve[2] != 150 {
		t.Errorf("unexpected curve head: %v", curve[:3])
	}
}

func TestGenerateScriptCurveErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"syntax", `function xp(`, "load curve script"},
		{"missing function", `x = 1`, "does not define"},
		{"wrong type", `function xp(l) return "a" .. l end`, "expected number"},
		{"runtime error", `function xp(l) error("boom") end`, "level 1"},
		{"no os access", `function xp(l) return os.time() end`, "level 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateScriptCurve(context.Background(), tt.source, 100, 1)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, expected it to mention %q", err, tt.want)
			}
		})
	}
}

func TestGenerateScriptCurveSaturates(t *testing.T) {
	curve, err := GenerateScriptCurve(context.Background(), `function xp(level) return 2 ^ (level + 60) end`, 0, 0)
	if err != nil {
		t.Fatalf("GenerateScriptCurve() error: %v", err)
	}
	for i, v := range curve {
		if v <= 0 {
			t.Fatalf("level %d = %d, expected a positive threshold", i+1, v)
		}
	}
}

func TestGenerateScriptCurveStopsRunawayScripts(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"loop at load", `while true do end`},
		{"loop in xp", `function xp(level) while true do end end`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err := GenerateScriptCurve(ctx, tt.source, 100, 1)
			if !errors.Is(err, ErrScriptTimeout) {
				t.Fatalf("error = %v, expected ErrScriptTimeout", err)
			}
			if elapsed := time.Since(start); elapsed > ScriptTimeout {
				t.Errorf("script ran for %v", elapsed)
			}
		})
	}
}
