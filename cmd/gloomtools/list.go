package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	listJSON    bool
	listPattern string
	listLoaded  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List accessible documents",
	Long: `List every document the configured account can access. With --loaded the
documents are also pulled into the cache, which makes --pattern match
against cached names.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fatal("Error initializing service", err)
		}
		ctx := context.Background()

		if listLoaded {
			if err := service.LoadAllAccessibleFiles(ctx); err != nil {
				fatal("Error loading documents", err)
			}
			docs := service.Documents()
			if listPattern != "" {
				docs, err = service.FindDocuments(listPattern)
				if err != nil {
					fatal("Error matching pattern", err)
				}
			}
			if listJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(docs); err != nil {
					fatal("Error encoding JSON", err)
				}
				return
			}
			for _, doc := range docs {
				fmt.Printf("%s  %s\n", doc.ID, doc.Name)
			}
			return
		}

		refs, err := service.GetAllAccessibleFiles(ctx)
		if err != nil {
			fatal("Error listing documents", err)
		}
		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(refs); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}
		for _, ref := range refs {
			fmt.Printf("%s  %s\n", ref.ID, ref.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listPattern, "pattern", "", "Filter loaded documents by name glob")
	listCmd.Flags().BoolVar(&listLoaded, "loaded", false, "Load documents into the cache before listing")
}
