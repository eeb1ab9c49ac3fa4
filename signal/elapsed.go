package signal

import "time"

// Elapsed is a measuring time split into the components written to file headers.
// Each component is the truncated remainder of the next larger unit.
type Elapsed struct {
	Days         int32
	Hours        int32
	Minutes      int32
	Seconds      int32
	Milliseconds int32
}

// NewElapsed splits d into days, hours, minutes, seconds and milliseconds.
// Negative durations are clamped to zero.
func NewElapsed(d time.Duration) Elapsed {
	if d < 0 {
		d = 0
	}

	return Elapsed{
		Days:         int32(d / (24 * time.Hour)),                 //nolint:gosec
		Hours:        int32((d % (24 * time.Hour)) / time.Hour),   //nolint:gosec
		Minutes:      int32((d % time.Hour) / time.Minute),        //nolint:gosec
		Seconds:      int32((d % time.Minute) / time.Second),      //nolint:gosec
		Milliseconds: int32((d % time.Second) / time.Millisecond), //nolint:gosec
	}
}

// Duration returns the elapsed time as a time.Duration.
func (e Elapsed) Duration() time.Duration {
	return time.Duration(e.Days)*24*time.Hour +
		time.Duration(e.Hours)*time.Hour +
		time.Duration(e.Minutes)*time.Minute +
		time.Duration(e.Seconds)*time.Second +
		time.Duration(e.Milliseconds)*time.Millisecond
}
