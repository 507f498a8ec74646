package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var readFull bool

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Read a document",
	Long:  `Read a document by its id. Outputs the JSON content by default, or the full document with --full.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		service, err := newService()
		if err != nil {
			fatal("Error initializing service", err)
		}

		doc, err := service.FetchByID(context.Background(), id)
		if err != nil {
			fatal("Error reading document", err)
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if readFull {
			if err := encoder.Encode(doc); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		if ce := doc.Err(); ce != nil {
			fmt.Fprintf(os.Stderr, "Document is not usable: %v\n", ce)
			os.Exit(1)
		}
		if err := encoder.Encode(doc.Content()); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readFull, "full", false, "Output the full document, metadata included")
}
