package source

import (
	"context"
	"fmt"

	"github.com/distatus/battery"
)

// readBattery returns the first battery that reports a usable capacity.
// battery.GetAll can return partial errors alongside usable entries.
func readBattery(ctx context.Context) (*Battery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bats, err := battery.GetAll()
	for _, b := range bats {
		if b == nil || b.Full <= 0 {
			continue
		}
		return &Battery{
			Percent:  clampPercent(b.Current / b.Full * 100),
			Charging: b.State.Raw == battery.Charging,
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read battery: %w", err)
	}
	return nil, nil
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
