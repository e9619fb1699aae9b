package sequencer

import "time"

// Step is the sequencer's position. Each range counts up from its base; the
// base itself is never displayed.
type Step int

const (
	Idle Step = 0

	InfoTime    Step = 1
	InfoDate    Step = 2
	InfoPhone   Step = 3
	InfoBattery Step = 4
	InfoHide    Step = 5

	configBase  Step = 100
	ConfigSaved Step = 101
	ConfigHide  Step = 102

	bluetoothBase   Step = 200
	BluetoothStatus Step = 201
	BluetoothHide   Step = 202
)

// Range groups the steps of one display cycle.
type Range int

const (
	RangeIdle Range = iota
	RangeInfo
	RangeConfig
	RangeBluetooth
)

func (s Step) Range() Range {
	switch {
	case s >= InfoTime && s <= InfoHide:
		return RangeInfo
	case s > configBase && s <= ConfigHide:
		return RangeConfig
	case s > bluetoothBase && s <= BluetoothHide:
		return RangeBluetooth
	}
	return RangeIdle
}

func (r Range) String() string {
	switch r {
	case RangeInfo:
		return "info"
	case RangeConfig:
		return "config"
	case RangeBluetooth:
		return "bluetooth"
	}
	return "idle"
}

// How long each visible step stays on screen.
const (
	InfoDuration      = 1000 * time.Millisecond
	LongDuration      = 2000 * time.Millisecond
	BluetoothDuration = 5000 * time.Millisecond
)

// DisconnectPattern is the vibration played once when the phone link drops:
// on, off, on.
var DisconnectPattern = []time.Duration{400 * time.Millisecond, 100 * time.Millisecond, 400 * time.Millisecond}
