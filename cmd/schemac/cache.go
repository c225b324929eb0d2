package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"schemac/internal/driver"
	"schemac/internal/project"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the disk cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear <project.toml>",
	Short: "Remove every cached translation for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := project.LoadManifest(args[0])
		if err != nil {
			return err
		}
		cache, err := driver.OpenDiskCache(m.CacheDir())
		if err != nil {
			return err
		}
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", m.CacheDir())
		return nil
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats <project.toml>",
	Short: "Report how many entries are in a project's disk cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := project.LoadManifest(args[0])
		if err != nil {
			return err
		}
		cache, err := driver.OpenDiskCache(m.CacheDir())
		if err != nil {
			return err
		}
		count, err := cache.Stats()
		if err != nil {
			return fmt.Errorf("cache stats: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cached entries\n", m.CacheDir(), count)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}
