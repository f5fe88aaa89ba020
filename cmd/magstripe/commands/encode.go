package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alovak/cardflow-swipe/internal/cardgen"
	"github.com/alovak/cardflow-swipe/internal/expiry"
	"github.com/alovak/cardflow-swipe/internal/security"
	"github.com/alovak/cardflow-swipe/internal/track2"
)

func encodeCmd() *cobra.Command {
	var (
		pan           string
		bin           string
		panLen        int
		yymm          string
		years         int
		serviceCode   string
		discretionary string
		withCVV       bool
		opts          track2.EncodeOptions
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a synthetic reader message for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pan == "" {
				generated, err := cardgen.GeneratePAN(bin, panLen)
				if err != nil {
					return err
				}
				pan = generated
			}
			pan = cardgen.NormalizePAN(pan)
			if yymm == "" {
				yymm = expiry.YYMM(time.Now(), years)
			}
			if err := expiry.ValidateYYMM(yymm); err != nil {
				return err
			}
			if len(serviceCode) != 3 || !cardgen.IsDigits(serviceCode) {
				return fmt.Errorf("service code must be 3 digits")
			}

			if withCVV {
				if cfg.CVVKey == "" {
					return fmt.Errorf("--cvv needs cvv_key in config or CVK_DEMO")
				}
				provider := security.NewDemoProvider([]byte(cfg.CVVKey))
				defer provider.Wipe()
				dd, err := security.Embed(provider, pan, yymm, serviceCode, discretionary,
					security.Placement{Offset: cfg.CVVOffset, Width: cfg.CVVWidth})
				if err != nil {
					return err
				}
				discretionary = dd
			}

			chars := string(track2.StartSentinel) + pan + string(track2.Separator) +
				yymm + serviceCode + discretionary + string(track2.EndSentinel)
			raw, err := track2.Encode(chars, opts)
			if err != nil {
				return err
			}

			logger.Debug("encoded swipe", "pan", cardgen.MaskPAN(pan), "chars", len(chars))
			fmt.Fprintln(cmd.OutOrStdout(), raw)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&pan, "pan", "", "card number (generated from --bin when empty)")
	f.StringVar(&bin, "bin", "421234", "6/8/9-digit BIN prefix for generated PANs")
	f.IntVar(&panLen, "pan-length", 16, "length of generated PANs (13..19)")
	f.StringVar(&yymm, "expiry", "", "expiration as YYMM (default: now + --years)")
	f.IntVar(&years, "years", 5, "validity years when --expiry is empty")
	f.StringVar(&serviceCode, "service-code", "101", "3-digit service code")
	f.StringVar(&discretionary, "discretionary", "", "discretionary data digits")
	f.BoolVar(&withCVV, "cvv", false, "embed the demo CVV1 into the discretionary data")
	f.IntVar(&opts.SilenceBytes, "silence", 4, "idle bytes before the data")
	f.IntVar(&opts.LeadingZeros, "lead-zeros", 0, "clocking zero bits before the first symbol")
	f.IntVar(&opts.TrailingBytes, "trailing", 2, "idle bytes after the end marker")
	return cmd
}
