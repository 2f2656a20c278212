package field

import "math"

// GradTheta returns the central-difference gradient along the angular axis,
// periodic at the wraparound between bin 11 and bin 0.
func GradTheta(f PolarField) PolarField {
	var out PolarField
	for a := 0; a < GridSize; a++ {
		ap := wrap(a + 1)
		am := wrap(a - 1)
		for b := 0; b < GridSize; b++ {
			out[a][b] = (f[ap][b] - f[am][b]) / (2 * DTheta)
		}
	}
	return out
}

// GradR returns the central-difference gradient along the radial axis, with
// zero-flux (Neumann) boundaries: the result is exactly 0 at b=0 and b=11.
// The r-step divisor is 2, not 2*Δr, since r bins are used directly as the
// spatial coordinate.
func GradR(f PolarField) PolarField {
	var out PolarField
	for a := 0; a < GridSize; a++ {
		for b := 1; b < GridSize-1; b++ {
			out[a][b] = (f[a][b+1] - f[a][b-1]) / 2
		}
		// out[a][0] and out[a][GridSize-1] remain exactly 0.
	}
	return out
}

// GradMagnitude returns the elementwise magnitude of the (GradTheta,
// GradR) vector field. Always non-negative.
func GradMagnitude(f PolarField) PolarField {
	gt := GradTheta(f)
	gr := GradR(f)
	var out PolarField
	for a := 0; a < GridSize; a++ {
		for b := 0; b < GridSize; b++ {
			out[a][b] = math.Sqrt(gt[a][b]*gt[a][b] + gr[a][b]*gr[a][b])
		}
	}
	return out
}
