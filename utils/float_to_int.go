// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 clamps x to [-1, 1] and scales it by 32767, truncating
// toward zero.
func Float32ToInt16(x float32) int16 {
	return int16(clamp(x) * math.MaxInt16)
}

// RoundToInt16 clamps x to [-1, 1], scales it by 32767 and rounds half up,
// so -0.5 rounds to 0 and 0.5 rounds to 1. This is the conversion used
// before companding samples into u-law storage bytes.
func RoundToInt16(x float32) int16 {
	return int16(math.Floor(float64(clamp(x))*math.MaxInt16 + 0.5))
}

func clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
