package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"ai-meal-ranker/internal/reco"
	"ai-meal-ranker/internal/validation"
)

// The offline commands run the engine over a JSON request file ("-" for stdin)
// and print the response as indented JSON.

func newRankCmd() *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "rank <request.json>",
		Short: "Rank the candidates of a rank request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req reco.RankRequest
			if err := readRequest(cmd.InOrStdin(), args[0], &req); err != nil {
				return err
			}
			if cmd.Flags().Changed("k") {
				req.K = &k
			}
			return writeJSON(cmd.OutOrStdout(), req.Run(reco.DefaultK).Items)
		},
	}
	cmd.Flags().IntVar(&k, "k", reco.DefaultK, "number of items to return, overrides the request")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "plan <request.json>",
		Short: "Assemble a plan from a plan request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req reco.PlanRequest
			if err := readRequest(cmd.InOrStdin(), args[0], &req); err != nil {
				return err
			}
			if cmd.Flags().Changed("days") {
				req.Days = &days
			}
			return writeJSON(cmd.OutOrStdout(), req.Run(reco.DefaultDays))
		},
	}
	cmd.Flags().IntVar(&days, "days", reco.DefaultDays, "number of plan days, overrides the request")
	return cmd
}

func readRequest(stdin io.Reader, path string, v any) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	if err := validation.ValidateStruct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
