// Package rainbow implements the hue rotation applied to the display gamma.
package rainbow

import "math"

// Triple is an RGB gamma triple. Each channel is a gamma correction factor;
// the X server accepts values in [0.1, 10.0].
type Triple [3]float64

// Neutral is the identity gamma correction.
var Neutral = Triple{1, 1, 1}

// At returns the gamma triple for elapsed time t (in scaled seconds). All
// three channels start at luminosity, and a boost of total weight 1.0
// cross-fades from channel floor(t) mod 3 to the next one as the fractional
// part of t advances, cycling red, green, blue with period 3. The result is
// continuous in t, including at integer boundaries where the boost hands off
// between channels.
//
// t must be non-negative and finite, pre-scaled by the speed factor;
// luminosity must be in [0.1, 9.9].
func At(t, luminosity float64) Triple {
	c := Triple{luminosity, luminosity, luminosity}
	frac := t - math.Floor(t)
	i := int(math.Floor(t)) % 3
	c[i] += 1 - frac
	c[(i+1)%3] += frac
	return c
}
