package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new document",
	Long:  `Create a new document in the application folder. Content is read from stdin as JSON; with no stdin the document starts as an empty object.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		service, err := newService()
		if err != nil {
			fatal("Error initializing service", err)
		}

		var content any = map[string]any{}
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal("Error reading stdin", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &content); err != nil {
				fatal("Stdin is not valid JSON", err)
			}
		}

		doc, err := service.CreateAndSaveNewJSONFile(context.Background(), name, content)
		if err != nil {
			fatal("Error creating document", err)
		}
		fmt.Println(doc.ID)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
