package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/coin"
	"github.com/iov-one/heirloom/history"
	"github.com/iov-one/heirloom/x/bank"
	"github.com/iov-one/heirloom/x/will"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
	"go.uber.org/goleak"
)

// goleveldb drains its memory pool in a goroutine that outlives Close by
// up to a second.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"),
	)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := rootCommand()
	root.SetOutput(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigEnvAndFlags(t *testing.T) {
	home := t.TempDir()
	os.Setenv("HEIRLOOM_HOME", home)
	os.Setenv("HEIRLOOM_BIND", "tcp://127.0.0.1:1234")
	os.Setenv("HEIRLOOM_HISTORY", "false")
	defer func() {
		os.Unsetenv("HEIRLOOM_HOME")
		os.Unsetenv("HEIRLOOM_BIND")
		os.Unsetenv("HEIRLOOM_HISTORY")
	}()

	cmd := startCommand()
	cmd.Flags().String(flagHome, "", "")
	cmd.Flags().String(flagLogLevel, "info", "")
	cmd.Flags().Bool(flagDebug, false, "")

	cfg, err := loadConfig(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, "tcp://127.0.0.1:1234", cfg.Bind)
	assert.Equal(t, "localhost:9464", cfg.MetricsAddr)
	assert.False(t, cfg.History)

	// explicitly set flags win over the environment
	require.NoError(t, cmd.Flags().Parse([]string{"--bind", "unix://heirloom.sock", "--history", "--debug"}))
	cfg, err = loadConfig(cmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, "unix://heirloom.sock", cfg.Bind)
	assert.True(t, cfg.History)
	assert.True(t, cfg.Debug)

	_, err = newLogger(&Config{LogLevel: "loud"})
	assert.Error(t, err)
}

func TestInitWritesAppState(t *testing.T) {
	home := t.TempDir()
	genesis := filepath.Join(home, "genesis.json")
	require.NoError(t, ioutil.WriteFile(genesis, []byte(`{"chain_id": "heirloom-dev", "validators": []}`), 0600))

	out, err := run(t, "init", "--home", home, "--genesis", genesis, "--funds", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "owner key written")

	seed, err := ioutil.ReadFile(filepath.Join(home, ownerKeyFile))
	require.NoError(t, err)
	assert.Len(t, seed, 64)

	raw, err := ioutil.ReadFile(genesis)
	require.NoError(t, err)
	var doc struct {
		ChainID  string           `json:"chain_id"`
		AppState heirloom.Options `json:"app_state"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "heirloom-dev", doc.ChainID)

	var gen bank.Genesis
	require.NoError(t, doc.AppState.ReadOptions("bank", &gen))
	require.Len(t, gen.Wallets, 1)
	assert.Equal(t, []coin.Coin{coin.Native(42)}, gen.Wallets[0].Coins)

	var conf heirloom.Options
	require.NoError(t, doc.AppState.ReadOptions("conf", &conf))
	var willConf will.Configuration
	require.NoError(t, conf.ReadOptions("will", &willConf))
	assert.Equal(t, will.DefaultConfiguration(), willConf)

	owner := heirloom.NewCondition("test", "owner", []byte{1}).Address()
	out, err = run(t, "init", "--home", home, "--genesis", genesis, "--owner", owner.String())
	require.NoError(t, err)
	assert.NotContains(t, out, "owner key written")
	assert.Contains(t, out, owner.String())

	_, err = run(t, "init", "--home", home, "--genesis", filepath.Join(home, "missing.json"))
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	home := t.TempDir()
	store, err := history.Open(filepath.Join(home, historyFile))
	require.NoError(t, err)
	require.NoError(t, store.Record(&history.Event{Height: 1, Path: "will/create"}))
	require.NoError(t, store.Record(&history.Event{Height: 2, Path: "will/deposit"}))
	require.NoError(t, store.Close())

	out, err := run(t, "history", "--home", home)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"path":"will/create"`)

	out, err = run(t, "history", "--home", home, "--path", "will/deposit")
	require.NoError(t, err)
	assert.Contains(t, out, `"height":2`)
	assert.NotContains(t, out, "will/create")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, heirloom.Version()+"\n", out)
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := &Config{
		Home:    t.TempDir(),
		Bind:    "tcp://127.0.0.1:0",
		History: true,
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, log.NewNopLogger()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return")
	}
	_, err := os.Stat(filepath.Join(cfg.Home, historyFile))
	assert.NoError(t, err)
}
