package cli

import (
	"fmt"
	"time"
)

type DrinkCmd struct {
	Slot string `arg:"" help:"Slot to log (HH:MM or 'now')." default:"now"`
}

func (c *DrinkCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	config, err := ctx.Schedule.Config()
	if err != nil {
		return err
	}

	slot, err := ResolveSlot(c.Slot, config.Slots, time.Now())
	if err != nil {
		return err
	}

	if err := ctx.Tracker.AddStat(slot); err != nil {
		return err
	}

	fmt.Printf("✓ Logged a drink for %s (%d%% of today's goal)\n", slot, ctx.Tracker.PercentComplete(config.Slots))
	return nil
}

type UndoCmd struct {
	Slot string `arg:"" help:"Slot to unlog (HH:MM or 'now')." default:"now"`
}

func (c *UndoCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	config, err := ctx.Schedule.Config()
	if err != nil {
		return err
	}

	slot, err := ResolveSlot(c.Slot, config.Slots, time.Now())
	if err != nil {
		return err
	}

	if err := ctx.Tracker.RemoveStat(slot); err != nil {
		return err
	}

	fmt.Printf("✓ Removed the drink logged for %s\n", slot)
	return nil
}

type ClearCmd struct{}

func (c *ClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Tracker.ClearToday(); err != nil {
		return err
	}

	fmt.Println("✓ Cleared today's hydration record")
	return nil
}
