package fx

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrUnknownTransition is returned when a transition name cannot be resolved.
var ErrUnknownTransition = errors.New("unknown transition")

// Transition maps linear progress p in [0,1] to eased progress.
// Some curves (back, elastic) leave [0,1] before settling at 1.
type Transition func(p float64) float64

// Linear is the identity transition.
func Linear(p float64) float64 {
	return p
}

// EaseIn returns the curve as-is.
func EaseIn(t Transition) Transition {
	return t
}

// EaseOut mirrors the curve so that it decelerates toward the end.
func EaseOut(t Transition) Transition {
	return func(p float64) float64 {
		return 1 - t(1-p)
	}
}

// EaseInOut accelerates through the first half and decelerates through the second.
func EaseInOut(t Transition) Transition {
	return func(p float64) float64 {
		if p <= 0.5 {
			return t(2*p) / 2
		}
		return (2 - t(2*(1-p))) / 2
	}
}

// Pow returns p raised to x.
func Pow(x float64) Transition {
	return func(p float64) float64 {
		return math.Pow(p, x)
	}
}

// Expo is an exponential curve.
func Expo(p float64) float64 {
	return math.Pow(2, 8*(p-1))
}

// Circ follows a quarter circle.
func Circ(p float64) float64 {
	return 1 - math.Sin(math.Acos(p))
}

// Sine follows a quarter cosine wave.
func Sine(p float64) float64 {
	return 1 - math.Cos(p*math.Pi/2)
}

// Back pulls back slightly before moving forward.
func Back(p float64) float64 {
	const x = 1.618
	return math.Pow(p, 2) * ((x+1)*p - x)
}

// Bounce bounces toward the start.
func Bounce(p float64) float64 {
	if p < 0 {
		p = 0
	}
	var value float64
	for a, b := 0.0, 1.0; ; a, b = a+b, b/2 {
		if p >= (7-4*a)/11 {
			value = b*b - math.Pow((11-6*a-11*p)/4, 2)
			break
		}
	}
	return value
}

// Elastic oscillates with decaying amplitude.
func Elastic(p float64) float64 {
	p--
	return math.Pow(2, 10*p) * math.Cos(20*p*math.Pi/3)
}

var curves = map[string]Transition{
	"quad":    Pow(2),
	"cubic":   Pow(3),
	"quart":   Pow(4),
	"quint":   Pow(5),
	"pow":     Pow(6),
	"expo":    Expo,
	"circ":    Circ,
	"sine":    Sine,
	"back":    Back,
	"bounce":  Bounce,
	"elastic": Elastic,
}

// DefaultTransition is Circ eased out.
var DefaultTransition = EaseOut(Circ)

// ParseTransition resolves names like "linear", "circ:out", "sine:in:out".
// A bare curve name means ease-in.
func ParseTransition(name string) (Transition, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(name)), ":")
	if parts[0] == "linear" && len(parts) == 1 {
		return Linear, nil
	}

	curve, ok := curves[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, name)
	}

	switch strings.Join(parts[1:], ":") {
	case "", "in":
		return EaseIn(curve), nil
	case "out":
		return EaseOut(curve), nil
	case "in:out":
		return EaseInOut(curve), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, name)
	}
}

// TransitionNames lists every name ParseTransition accepts.
func TransitionNames() []string {
	names := []string{"linear"}
	keys := make([]string, 0, len(curves))
	for k := range curves {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		names = append(names, k+":in", k+":out", k+":in:out")
	}
	return names
}
