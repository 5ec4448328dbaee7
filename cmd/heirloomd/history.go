package main

import (
	"encoding/json"
	"path/filepath"

	"github.com/iov-one/heirloom/history"
	"github.com/spf13/cobra"
)

const flagPath = "path"

func historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the recorded will operations as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString(flagPath)
			return printHistory(cmd, filepath.Join(cfg.Home, historyFile), path)
		},
	}
	cmd.Flags().String(flagPath, "", "only show operations of this message path, eg. will/claim")
	return cmd
}

func printHistory(cmd *cobra.Command, dbPath, msgPath string) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.List(msgPath)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, e := range events {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
