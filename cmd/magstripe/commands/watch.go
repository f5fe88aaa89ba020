package commands

import (
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/alovak/cardflow-swipe/reader"
	"github.com/alovak/cardflow-swipe/reader/iso8583"
)

func watchCmd() *cobra.Command {
	var (
		input  string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Decode reader messages line by line",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			svc := reader.NewService(logger, cfg)
			if cfg.ISO8583Addr != "" {
				client := iso8583.NewClient(logger, cfg.ISO8583Addr, cfg.SendTimeout)
				if err := client.Connect(); err != nil {
					return err
				}
				defer client.Close()
				svc.SetAuthorizer(client)
			}

			var sink reader.Sink = reader.NewTextSink(cmd.OutOrStdout())
			if asJSON {
				sink = reader.NewJSONSink(cmd.OutOrStdout())
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return svc.Run(ctx, reader.NewLineSource(in), sink)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "capture file with one hex message per line (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print one JSON result per line")
	return cmd
}
