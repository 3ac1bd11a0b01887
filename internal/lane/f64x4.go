// Package lane provides fixed-width float64 lane types for batch geometry
// processing. The numeric batch backend operates on lanes of 4 values in
// structure-of-arrays layout so the compiler can keep the hot loops free of
// bounds checks and pointer chasing.
package lane

import "math"

// Width is the number of values in one lane batch.
const Width = 4

// F64x4 represents 4 float64 values processed together.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type F64x4 [Width]float64

// Splat creates F64x4 with all elements set to n.
func Splat(n float64) F64x4 {
	var result F64x4
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs element-wise addition.
func (v F64x4) Add(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F64x4) Sub(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F64x4) Mul(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// MulAdd computes v*m + a element-wise.
func (v F64x4) MulAdd(m, a F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i]*m[i] + a[i]
	}
	return result
}

// Min performs element-wise minimum. NaN handling follows math.Min.
func (v F64x4) Min(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = math.Min(v[i], other[i])
	}
	return result
}

// Max performs element-wise maximum. NaN handling follows math.Max.
func (v F64x4) Max(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = math.Max(v[i], other[i])
	}
	return result
}

// Sincos computes sin and cos of each element in one pass.
func (v F64x4) Sincos() (sin, cos F64x4) {
	for i := range v {
		sin[i], cos[i] = math.Sincos(v[i])
	}
	return sin, cos
}

// HorizontalMin returns the smallest element.
func (v F64x4) HorizontalMin() float64 {
	m := v[0]
	for i := 1; i < Width; i++ {
		m = math.Min(m, v[i])
	}
	return m
}

// HorizontalMax returns the largest element.
func (v F64x4) HorizontalMax() float64 {
	m := v[0]
	for i := 1; i < Width; i++ {
		m = math.Max(m, v[i])
	}
	return m
}

// Ramp returns {0, 1, 2, 3} scaled by step and offset by base:
// result[i] = base + float64(i)*step. Used to seed linearly spaced
// angle batches.
func Ramp(base, step float64) F64x4 {
	var result F64x4
	for i := range result {
		result[i] = base + float64(i)*step
	}
	return result
}
