package cli

import (
	"context"
	"fmt"
	"strings"
)

type ScheduleCmd struct {
	Show ScheduleShowCmd `cmd:"" help:"Show the current reminder schedule." default:"1"`
	Set  ScheduleSetCmd  `cmd:"" help:"Change the reminder schedule."`
}

type ScheduleShowCmd struct{}

func (c *ScheduleShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	config, err := ctx.Schedule.Config()
	if err != nil {
		return err
	}

	fmt.Printf("Interval: every %d hour(s)\n", config.IntervalHours)
	fmt.Printf("Window:   %s - %s\n", config.StartTime, config.EndTime)
	fmt.Printf("Slots:    %s\n", strings.Join(config.Slots, ", "))
	return nil
}

type ScheduleSetCmd struct {
	Interval int    `help:"Hours between reminders." short:"i" default:"0"`
	Start    string `help:"First reminder time (HH:MM)." short:"s" default:""`
	End      string `help:"Last reminder time (HH:MM)." short:"e" default:""`
}

func (c *ScheduleSetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	current, err := ctx.Schedule.Config()
	if err != nil {
		return err
	}

	// Unset flags keep their current values.
	interval := c.Interval
	if interval == 0 {
		interval = current.IntervalHours
	}
	start := c.Start
	if start == "" {
		start = current.StartTime
	}
	end := c.End
	if end == "" {
		end = current.EndTime
	}

	config, err := ctx.Schedule.Save(context.Background(), interval, start, end)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Schedule saved: every %dh between %s and %s (%d reminders)\n",
		config.IntervalHours, config.StartTime, config.EndTime, len(config.Slots))
	fmt.Println("Today's progress was reset. Restart the daemon to re-arm reminders.")
	return nil
}
