package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/callkeeper/internal/app"
	"github.com/dmitrijs2005/callkeeper/internal/common"
	"github.com/dmitrijs2005/callkeeper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDisconnectedCLI builds a CLI over an App that was never connected, the
// same state the REPL is in after a logout tore the connection down.
func newDisconnectedCLI(t *testing.T, input string) *CLI {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	a, err := app.NewApp(cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	return &CLI{app: a, reader: bufio.NewReader(strings.NewReader(input)), out: &out}
}

func TestRepositoryCommands_AfterLogout_NoPanic(t *testing.T) {
	tests := []struct {
		name string
		run  func(ctx context.Context, c *CLI) error
	}{
		{"add", func(ctx context.Context, c *CLI) error { return c.AddMaster(ctx) }},
		{"list", func(ctx context.Context, c *CLI) error { return c.ListMaster(ctx) }},
		{"delete", func(ctx context.Context, c *CLI) error { return c.DeleteMaster(ctx) }},
		{"log", func(ctx context.Context, c *CLI) error { return c.LogCall(ctx) }},
		{"report", func(ctx context.Context, c *CLI) error { return c.Report(ctx) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newDisconnectedCLI(t, "")
			err := tt.run(context.Background(), c)
			assert.ErrorIs(t, err, common.ErrConfiguration)
		})
	}
}
