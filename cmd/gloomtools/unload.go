package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var unloadCmd = &cobra.Command{
	Use:   "unload [id]",
	Short: "Remove a document from the cache",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fatal("Error initializing service", err)
		}
		if !service.UnloadByID(args[0]) {
			fmt.Fprintln(os.Stderr, "not found")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(unloadCmd)
}
