package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"linear":    ease.Linear,
	"outquad":   ease.OutQuad,
	"outcubic":  ease.OutCubic,
	"outquart":  ease.OutQuart,
	"outexpo":   ease.OutExpo,
	"outsine":   ease.OutSine,
	"inoutsine": ease.InOutSine,
	"outbounce": ease.OutBounce,
}

// LookupEasing returns the easing function registered under name,
// ignoring case.
func LookupEasing(name string) (ease.TweenFunc, error) {
	if fn, ok := easings[strings.ToLower(name)]; ok {
		return fn, nil
	}
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown easing %q (want one of %s)", name, strings.Join(names, ", "))
}

// glow is a 1 -> 0 intensity that restarts on every pulse.
type glow struct {
	duration float32
	easing   ease.TweenFunc
	tween    *gween.Tween
	value    float32
}

func newGlow(seconds float64, easing ease.TweenFunc) *glow {
	if easing == nil {
		easing = ease.OutCubic
	}
	return &glow{duration: float32(seconds), easing: easing}
}

func (g *glow) pulse() {
	if g.duration <= 0 {
		return
	}
	g.tween = gween.New(1, 0, g.duration, g.easing)
	g.value = 1
}

// update advances the glow by dt seconds and returns the new intensity.
func (g *glow) update(dt float32) float32 {
	if g.tween == nil {
		return 0
	}
	v, finished := g.tween.Update(dt)
	g.value = v
	if finished {
		g.tween = nil
		g.value = 0
	}
	return g.value
}
