package rotation

import "fmt"

// Easing maps linear progress in [0,1] to eased progress in [0,1]. It must
// return 0 at 0 and 1 at 1.
type Easing func(t float64) float64

// Linear advances the angle at a constant rate.
func Linear(t float64) float64 { return t }

// EaseOutQuad starts fast and settles into the target.
func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

// ParseEasing returns the easing registered under name.
func ParseEasing(name string) (Easing, error) {
	switch name {
	case "", "ease-out", "ease_out", "power1.out":
		return EaseOutQuad, nil
	case "linear", "none":
		return Linear, nil
	}
	return nil, fmt.Errorf("rotation: unknown easing %q", name)
}
