package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ormanli/slipscan/internal/app/slip"
)

var errRejected = errors.New("some codes were rejected")

// result is the outcome of decoding one code.
type result struct {
	Code    string `json:"code" yaml:"code"`
	Amount  string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Display string `json:"display,omitempty" yaml:"display,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newDecodeCommand() *cobra.Command {
	policy := slip.ZeroRun
	output := "text"

	cmd := &cobra.Command{
		Use:   "decode CODE...",
		Short: "Decode the amount of one or more slip codes",
		Long: `Decode prints the amount of every code given as argument.

Policies:
  zero-run      amount follows the first run of six (or five) zeros
  fixed-length  44 or 47 digit code, last 10 digits are cents`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoder := slip.NewDecoder(policy)

			results := make([]result, 0, len(args))
			failed := false
			for _, code := range args {
				r := result{Code: code}
				amount, err := decoder.Decode(code)
				if err != nil {
					r.Error = err.Error()
					failed = true
				} else {
					r.Amount = amount.String()
					r.Display = amount.Display()
				}
				results = append(results, r)
			}

			if err := writeResults(cmd.OutOrStdout(), output, results); err != nil {
				return err
			}
			if failed {
				return errRejected
			}

			return nil
		},
	}

	cmd.Flags().Var(&policy, "policy", "decoding policy: zero-run or fixed-length")
	cmd.Flags().StringVarP(&output, "output", "o", output, "output format: text, yaml or json")

	return cmd
}

func writeResults(w io.Writer, format string, results []result) error {
	switch format {
	case "text":
		for _, r := range results {
			if r.Error != "" {
				if _, err := fmt.Fprintf(w, "%s\trejected: %s\n", r.Code, r.Error); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", r.Code, r.Amount, r.Display); err != nil {
				return err
			}
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
