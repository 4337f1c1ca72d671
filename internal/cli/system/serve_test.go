package system

import (
	"testing"

	"github.com/julianstephens/daypilot/internal/cli"
	"github.com/julianstephens/daypilot/internal/config"
	"github.com/julianstephens/daypilot/internal/constants"
)

func TestServeCmd_Addr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.API.Listen = "127.0.0.1:9999"

	tests := []struct {
		name string
		cmd  ServeCmd
		ctx  *cli.Context
		want string
	}{
		{"flag wins", ServeCmd{Listen: ":7000"}, &cli.Context{Config: cfg}, ":7000"},
		{"config", ServeCmd{}, &cli.Context{Config: cfg}, "127.0.0.1:9999"},
		{"default", ServeCmd{}, &cli.Context{}, constants.DefaultListenAddr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.addr(tt.ctx); got != tt.want {
				t.Errorf("addr() = %q, want %q", got, tt.want)
			}
		})
	}
}
