package main

import (
	"fmt"
	"strings"

	"github.com/cicconee/payouts/internal/platform/validation"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <kind> <value> [<end>]",
		Short: "Check a value against one of the form rules",
		Long: "Check a value against one of the form rules.\n\nKinds: " +
			strings.Join(validation.Kinds(), ", ") +
			".\nFor date_range, <value> is the start date and <end> the end date.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var end string
			if len(args) == 3 {
				end = args[2]
			}

			res, err := validation.Run(args[0], args[1], end)
			if err != nil {
				return fmt.Errorf("%w %q (expected one of %s)", err, args[0], strings.Join(validation.Kinds(), ", "))
			}

			out := cmd.OutOrStdout()
			if !res.Valid {
				fmt.Fprintln(out, res.Error)
				return errInvalid
			}
			fmt.Fprintln(out, "ok")
			return nil
		},
	}
}

func newFormatIBANCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format-iban <value>",
		Short: "Print an IBAN grouped in blocks of four",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), validation.FormatIBAN(args[0]))
			return nil
		},
	}
}
