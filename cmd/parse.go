package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-matcher/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse documents and print the extracted fields as JSON",
}

var parseResumeCmd = &cobra.Command{
	Use:   "resume FILE...",
	Short: "Parse resumes (pdf or plain text)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApplication()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		ctx := cmdContext(cmd)
		candidates, uploadErr := uploadFiles(a.logger, args, func(name string, data []byte) (parser.Candidate, error) {
			return a.portal.UploadResume(ctx, name, data)
		})

		if err := printJSON(cmd, candidates); err != nil {
			return err
		}
		return uploadErr
	},
}

var parseJobCmd = &cobra.Command{
	Use:   "job FILE...",
	Short: "Parse job postings (pdf or plain text)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApplication()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		ctx := cmdContext(cmd)
		jobs, uploadErr := uploadFiles(a.logger, args, func(name string, data []byte) (parser.Job, error) {
			return a.portal.UploadJob(ctx, name, data)
		})

		if err := printJSON(cmd, jobs); err != nil {
			return err
		}
		return uploadErr
	},
}

func init() {
	parseCmd.AddCommand(parseResumeCmd, parseJobCmd)
	rootCmd.AddCommand(parseCmd)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
