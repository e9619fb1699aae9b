package arc

import "math"

// Angles are fixed-point fractions of a turn and trigonometric results are
// fixed-point fractions of MaxRatio.
const (
	MaxAngle int32 = 0x10000
	MaxRatio int32 = 0xffff

	Angle90  = MaxAngle / 4
	Angle180 = MaxAngle / 2
	Angle270 = 3 * MaxAngle / 4
)

// quarter holds sin over [0, Angle90] inclusive.
var quarter [Angle90 + 1]int32

func init() {
	for i := range quarter {
		quarter[i] = int32(math.Round(math.Sin(float64(i)*math.Pi/2/float64(Angle90)) * float64(MaxRatio)))
	}
}

// Normalize maps any angle into [0, MaxAngle).
func Normalize(a int32) int32 {
	a %= MaxAngle
	if a < 0 {
		a += MaxAngle
	}
	return a
}

// Deg converts whole degrees to the fixed-point angle unit.
func Deg(d int) int32 {
	return int32(int64(d) * int64(MaxAngle) / 360)
}

// Sin returns sin(a) scaled by MaxRatio.
func Sin(a int32) int32 {
	a = Normalize(a)
	r := a % Angle90
	switch a / Angle90 {
	case 0:
		return quarter[r]
	case 1:
		return quarter[Angle90-r]
	case 2:
		return -quarter[r]
	default:
		return -quarter[Angle90-r]
	}
}

// Cos returns cos(a) scaled by MaxRatio.
func Cos(a int32) int32 {
	return Sin(a + Angle90)
}
