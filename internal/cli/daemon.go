package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/quenchapp/quench/internal/daemon"
)

type DaemonCmd struct{}

func (c *DaemonCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	d, err := daemon.New(daemon.Options{
		ConfigDir: filepath.Dir(ctx.Store.GetConfigPath()),
		Schedule:  ctx.Schedule,
		Tracker:   ctx.Tracker,
	})
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return d.Run(runCtx)
}
