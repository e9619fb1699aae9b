package dial

import (
	"time"

	"arc-touch-go/internal/arc"
)

// Angles holds the hand positions derived from the wall clock. The From/To
// pairs bracket each hand by its half-width.
type Angles struct {
	Minute     int32
	MinuteFrom int32
	MinuteTo   int32

	Hour     int32
	HourFrom int32
	HourTo   int32
}

// Calc converts t into hand angles. The Angle90 offset moves angle zero from
// east to twelve o'clock; the hour hand advances continuously with minutes.
func Calc(t time.Time, g Geometry) Angles {
	m := int32(t.Minute())
	h := int32(t.Hour() % 12)

	var a Angles
	a.Minute = arc.MaxAngle*m/60 - arc.Angle90
	a.MinuteFrom = a.Minute - g.MinuteHalfWidth
	a.MinuteTo = a.Minute + g.MinuteHalfWidth

	a.Hour = arc.MaxAngle*(60*h+m)/720 - arc.Angle90
	a.HourFrom = a.Hour - g.HourHalfWidth
	a.HourTo = a.Hour + g.HourHalfWidth
	return a
}
