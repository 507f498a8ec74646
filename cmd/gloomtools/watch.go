package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream document life-cycle events",
	Long:  `Load every accessible document and print each life-cycle event as it is published, until interrupted.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fatal("Error initializing service", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		events := service.ListenDocumentLoad(ctx)

		if err := service.LoadAllAccessibleFiles(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: not all documents loaded: %v\n", err)
		}

		for e := range events {
			stamp := time.Unix(e.Time, 0).Format(time.TimeOnly)
			if e.File == nil {
				fmt.Printf("%s  %-6s\n", stamp, e.Action)
				continue
			}
			fmt.Printf("%s  %-6s  %s  %s\n", stamp, e.Action, e.File.ID, e.File.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
