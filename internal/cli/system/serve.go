package system

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/daypilot/internal/api"
	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/constants"
)

type ServeCmd struct {
	Listen string `help:"Address to listen on (overrides config)."`
}

func (c *ServeCmd) addr(ctx *cli.Context) string {
	switch {
	case c.Listen != "":
		return c.Listen
	case ctx.Config != nil && ctx.Config.API.Listen != "":
		return ctx.Config.API.Listen
	}
	return constants.DefaultListenAddr
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.Events()
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := c.addr(ctx)
	ctx.Printf("Serving daypilot API on http://%s (Ctrl+C to stop)\n", addr)
	return api.New(mgr, ctx.Settings()).Run(sigCtx, addr)
}
