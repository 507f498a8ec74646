package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var saveName string

var saveCmd = &cobra.Command{
	Use:   "save [id]",
	Short: "Replace a document's content",
	Long:  `Load a document, replace its content with JSON read from stdin and save it back. A byte-identical replacement is a no-op.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		service, err := newService()
		if err != nil {
			fatal("Error initializing service", err)
		}
		ctx := context.Background()

		doc, err := service.LoadByID(ctx, id)
		if err != nil {
			fatal("Error loading document", err)
		}

		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal("Error reading stdin", err)
		}
		var content any
		if err := json.Unmarshal(raw, &content); err != nil {
			fatal("Stdin is not valid JSON", err)
		}
		doc.SetContent(content)
		if saveName != "" {
			doc.Name = saveName
		}

		saved, err := service.SaveJSONFile(ctx, doc)
		if err != nil {
			fatal("Error saving document", err)
		}
		fmt.Printf("saved %s (%s)\n", saved.ID, saved.Name)
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVar(&saveName, "name", "", "Rename the document while saving")
}
