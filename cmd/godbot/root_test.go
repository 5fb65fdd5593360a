package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/godbot/internal/models"
)

func TestRootRegistersSubcommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"scan", "settle", "update-stats", "cleanup", "stats",
		"backtest", "optimize", "rest-study", "arbitrage", "schedule",
	} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestBacktestFlags(t *testing.T) {
	cmd := newBacktestCmd(&app{})
	for _, flag := range []string{"mode", "days", "start", "seed", "bootstrap", "profile"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}

func TestParseProfile(t *testing.T) {
	profile, w, err := parseProfile(" shiva ")
	require.NoError(t, err)
	assert.Equal(t, models.ProfileShiva, profile)
	assert.Equal(t, "SHIVA", w.Name)

	_, _, err = parseProfile("APOLLO")
	assert.Error(t, err)
}

func TestResolveMode(t *testing.T) {
	mode, err := resolveMode("", models.ProfileLoki)
	require.NoError(t, err)
	assert.Equal(t, models.PickTypeMoneyline, mode)

	mode, err = resolveMode("total", models.ProfileZeus)
	require.NoError(t, err)
	assert.Equal(t, models.PickTypeTotal, mode)

	_, err = resolveMode("parlay", models.ProfileZeus)
	assert.Error(t, err)
}

func TestArbitrageTradesSubcommand(t *testing.T) {
	cmd := newArbitrageCmd(&app{})
	assert.NotNil(t, cmd.Flags().Lookup("record"))

	trades, _, err := cmd.Find([]string{"trades"})
	require.NoError(t, err)
	assert.Equal(t, "trades", trades.Name())
	assert.NotNil(t, trades.Flags().Lookup("settle"))
}
