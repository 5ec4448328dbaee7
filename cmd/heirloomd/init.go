package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/heirloom"
	"github.com/iov-one/heirloom/cmd/heirloomd/app"
	"github.com/iov-one/heirloom/errors"
	"github.com/spf13/cobra"
)

const (
	flagGenesis = "genesis"
	flagOwner   = "owner"
	flagFunds   = "funds"

	ownerKeyFile = "owner.key"
)

func initCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize app options in genesis file",
		Long: `Adds the app_state of a development chain to a tendermint genesis
file. Unless an owner address is given, a new key is generated and its seed
is written to <home>/owner.key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			genesis, _ := cmd.Flags().GetString(flagGenesis)
			owner, _ := cmd.Flags().GetString(flagOwner)
			funds, _ := cmd.Flags().GetUint64(flagFunds)
			return runInit(cmd, cfg, genesis, owner, funds)
		},
	}
	defaultGenesis := filepath.Join(os.ExpandEnv("$HOME"), ".tendermint", "config", "genesis.json")
	cmd.Flags().String(flagGenesis, defaultGenesis, "tendermint genesis file to update")
	cmd.Flags().String(flagOwner, "", "address of the funded wallet, generated when empty")
	cmd.Flags().Uint64(flagFunds, app.DefaultGenesisFunds, "native units given to the owner")
	return cmd
}

func runInit(cmd *cobra.Command, cfg *Config, genesis, owner string, funds uint64) error {
	var addr heirloom.Address
	if owner != "" {
		a, err := heirloom.ParseAddress(owner)
		if err != nil {
			return errors.Wrap(err, "owner")
		}
		addr = a
	} else {
		key, a, err := app.GenerateOwnerKey()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(cfg.Home, 0700); err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		keyPath := filepath.Join(cfg.Home, ownerKeyFile)
		if err := ioutil.WriteFile(keyPath, []byte(hex.EncodeToString(key.Seed())), 0600); err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "owner key written to %s\n", keyPath)
		addr = a
	}

	options, err := app.GenInitOptions(addr, funds)
	if err != nil {
		return err
	}
	if err := addGenesisOptions(genesis, options); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "owner %s funded in %s\n", addr, genesis)
	return nil
}

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrNotFound, err.Error())
	}

	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	doc["app_state"] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return ioutil.WriteFile(filename, out, 0600)
}
