// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-scout/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the result cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry count and size",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cache.Open(loadConfig().Cache)
		if err != nil {
			return err
		}
		defer c.Close()

		st, err := c.Stats()
		if err != nil {
			return err
		}

		if !st.Enabled {
			fmt.Println("cache disabled")
			return nil
		}
		fmt.Printf("path:    %s\n", st.Path)
		fmt.Printf("entries: %d\n", st.Entries)
		fmt.Printf("size:    %d bytes\n", st.TotalBytes)
		fmt.Printf("ttl:     %s\n", st.TTL)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached search results",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := cache.Open(loadConfig().Cache)
		if err != nil {
			return err
		}
		defer c.Close()

		n, err := c.Clear()
		if err != nil {
			return err
		}
		fmt.Printf("removed %d cached search(es)\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
