package marquee

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// EaseFunc is a gween easing curve: t elapsed, b begin, c change, d duration.
type EaseFunc = ease.TweenFunc

// easeNames maps the curve names used in configuration to gween curves.
var easeNames = map[string]EaseFunc{
	"none":         ease.Linear,
	"linear":       ease.Linear,
	"power1.out":   ease.OutQuad,
	"power2.out":   ease.OutCubic,
	"power3.out":   ease.OutQuart,
	"power4.out":   ease.OutQuint,
	"power2.in":    ease.InCubic,
	"power3.in":    ease.InQuart,
	"power2.inOut": ease.InOutCubic,
	"power3.inOut": ease.InOutQuart,
	"sine.out":     ease.OutSine,
	"sine.inOut":   ease.InOutSine,
	"expo.out":     ease.OutExpo,
	"expo.in":      ease.InExpo,
	"circ.out":     ease.OutCirc,
	"back.out":     ease.OutBack,
	"back.in":      ease.InBack,
	"bounce.out":   ease.OutBounce,
	"elastic.out":  ease.OutElastic,
}

// LookupEase returns the curve registered under name. An empty name is linear.
func LookupEase(name string) (EaseFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easeNames[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q (known: %s)", name, strings.Join(EaseNames(), ", "))
	}
	return fn, nil
}

// mustEase is LookupEase for names already checked by Config.Validate.
func mustEase(name string) EaseFunc {
	fn, err := LookupEase(name)
	if err != nil {
		return ease.Linear
	}
	return fn
}

// EaseNames returns the registered curve names, sorted.
func EaseNames() []string {
	names := make([]string, 0, len(easeNames))
	for n := range easeNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Interpolate returns from + fn(f)·(to−from) for a progress fraction f in
// [0, 1]. Endpoints are exact regardless of the curve.
func Interpolate(from, to, f float64, fn EaseFunc) float64 {
	switch {
	case f <= 0:
		return from
	case f >= 1:
		return to
	}
	if fn == nil {
		fn = ease.Linear
	}
	return from + float64(fn(float32(f), 0, 1, 1))*(to-from)
}
