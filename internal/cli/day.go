package cli

import (
	"fmt"
	"time"

	"github.com/quenchapp/quench/internal/constants"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Parse date
	var day time.Time
	if c.Date == "today" {
		day = time.Now()
	} else {
		var err error
		day, err = time.Parse(constants.DateFormat, c.Date)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
		}
	}
	dateStr := day.Format(constants.DateFormat)

	record, err := ctx.Store.GetHydrationDay(dateStr)
	if err != nil {
		return fmt.Errorf("failed to load hydration record for %s: %w", dateStr, err)
	}

	config, err := ctx.Schedule.Config()
	if err != nil {
		return err
	}

	fmt.Printf("Hydration for %s:\n\n", dateStr)

	if len(config.Slots) == 0 {
		fmt.Println("  No reminder slots configured")
		return nil
	}

	completed := 0
	for _, slot := range config.Slots {
		mark := "○"
		if record.Completed[slot] {
			mark = "✓"
			completed++
		}
		fmt.Printf("  %s %s\n", mark, slot)
	}

	fmt.Printf("\n%d of %d reminders acknowledged\n", completed, len(config.Slots))
	return nil
}
