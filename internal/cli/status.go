package cli

import (
	"fmt"
	"time"

	"github.com/quenchapp/quench/internal/schedule"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	config, err := ctx.Schedule.Config()
	if err != nil {
		return err
	}

	today := ctx.Tracker.Today()
	percent := ctx.Tracker.PercentComplete(config.Slots)

	fmt.Printf("Hydration for %s\n\n", time.Now().Format("2006-01-02"))
	fmt.Printf("Schedule: every %dh between %s and %s\n\n", config.IntervalHours, config.StartTime, config.EndTime)

	for _, slot := range config.Slots {
		mark := "○"
		if today[slot] {
			mark = "✓"
		}
		fmt.Printf("  %s %s\n", mark, slot)
	}

	fmt.Printf("\nProgress: %d%%\n", percent)
	if next, ok := schedule.Upcoming(config.Slots, time.Now()); ok {
		fmt.Printf("Up next:  %s\n", next)
	} else {
		fmt.Println("Up next:  done for today")
	}

	return nil
}
