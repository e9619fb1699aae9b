package device

import (
	"os"
	"strconv"
	"strings"

	"arc-touch-go/internal/logging"
)

// Battery reads a sysfs power-supply capacity file. Boards without a
// battery report 100.
type Battery struct {
	path string
	last int
}

func NewBattery(path string) *Battery {
	return &Battery{path: path, last: 100}
}

// ChargePercent returns the charge in percent. A failed read returns the
// last good value.
func (b *Battery) ChargePercent() int {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		logging.Logger().Debug("battery read failed", "path", b.path, "err", err)
		return b.last
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		logging.Logger().Debug("battery value malformed", "path", b.path, "value", string(raw))
		return b.last
	}
	b.last = min(max(n, 0), 100)
	return b.last
}
