package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alovak/cardflow-swipe/internal/readerdev"
	"github.com/alovak/cardflow-swipe/reader"
	"github.com/alovak/cardflow-swipe/reader/models"
)

func decodeCmd() *cobra.Command {
	var (
		remote  string
		asJSON  bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "decode <hex>",
		Short: "Decode one raw reader message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var res *models.Result
			if remote != "" {
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()
				r, err := readerdev.New(remote, nil).Decode(ctx, args[0])
				if err != nil {
					return err
				}
				res = r
			} else {
				r := reader.NewService(logger, cfg).Process(args[0])
				res = &r
			}

			var sink reader.Sink = reader.NewTextSink(cmd.OutOrStdout())
			if asJSON {
				sink = reader.NewJSONSink(cmd.OutOrStdout())
			}
			if err := sink.Show(*res); err != nil {
				return err
			}
			if res.Error != nil {
				return fmt.Errorf("swipe rejected: %s", res.Error.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&remote, "remote", "", "decode through a reader service at this base URL")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "remote request timeout")
	return cmd
}
