package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/dashboard"
	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/parser"
)

const (
	PromptAllJobs = "All jobs"
	PromptExit    = "Exit"
)

var errExit = errors.New("exit requested")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Upload resumes and jobs, then rank candidates for every job",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringSliceP("resume", "r", nil, "resume files to upload")
	matchCmd.Flags().StringSlice("job", nil, "job posting files to upload")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "do not ask which job to show, rank all of them")
	matchCmd.Flags().Bool("dump", false, "dump the dashboard to a temporary json file")
	matchCmd.Flags().Float64("minimum-score", 0, "drop candidates scoring below this value")
	matchCmd.Flags().Int("limit", 0, "show at most this many candidates per job (0 is unlimited)")

	matchCmd.MarkFlagRequired("job")

	viper.BindPFlag("dump", matchCmd.Flags().Lookup("dump"))
	viper.BindPFlag("filters.minimum-score", matchCmd.Flags().Lookup("minimum-score"))
	viper.BindPFlag("filters.limit", matchCmd.Flags().Lookup("limit"))
}

func match(cmd *cobra.Command) error {
	a, err := newApplication()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	ctx := cmdContext(cmd)
	resumes, _ := cmd.Flags().GetStringSlice("resume")
	jobFiles, _ := cmd.Flags().GetStringSlice("job")

	a.logger.Info("starting the resume-matcher", zap.String("version", version))

	if _, err := uploadFiles(a.logger, resumes, func(name string, data []byte) (parser.Candidate, error) {
		return a.portal.UploadResume(ctx, name, data)
	}); err != nil {
		a.logger.Warn("some resumes were skipped", zap.Error(err))
	}

	jobs, err := uploadFiles(a.logger, jobFiles, func(name string, data []byte) (parser.Job, error) {
		return a.portal.UploadJob(ctx, name, data)
	})
	if err != nil {
		a.logger.Warn("some jobs were skipped", zap.Error(err))
	}

	if len(jobs) == 0 {
		a.logger.Info("exiting", zap.String("reason", "no jobs uploaded"))
		return nil
	}

	selected := []string{}
	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); !autoApprove {
		selected, err = selectJobs(jobs)
		if errors.Is(err, errExit) {
			a.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
			return nil
		}
		if err != nil {
			return err
		}
	}

	d, err := a.portal.Dashboard(ctx, selected...)
	if err != nil {
		return fmt.Errorf("building dashboard: %w", err)
	}

	for _, status := range filtering.Describe(a.filters) {
		a.logger.Debug("filter",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	if err := dashboard.Render(cmd.OutOrStdout(), d); err != nil {
		return err
	}

	if a.config.Dump {
		filename, err := dashboard.DumpToTmpFile(d)
		if err != nil {
			return fmt.Errorf("dump dashboard to file: %w", err)
		}
		a.logger.Info("dumping dashboard to file", zap.String("filename", filename))
	}

	return nil
}

// selectJobs asks which job to rank. An empty result means all jobs.
func selectJobs(jobs []parser.Job) ([]string, error) {
	items := jobLabels(jobs)

	prompt := promptui.Select{
		Label: "Choose a job and press ENTER",
		Items: append([]string{PromptAllJobs}, append(items, PromptExit)...),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return nil, err
	}

	return pickJobs(jobs, idx)
}

func jobLabels(jobs []parser.Job) []string {
	labels := make([]string, 0, len(jobs))
	for _, j := range jobs {
		labels = append(labels, fmt.Sprintf("%s / %s", j.Title, j.Filename))
	}
	return labels
}

// pickJobs maps the index of a prompt answer back to job IDs. The prompt
// lists "All jobs" first and "Exit" last.
func pickJobs(jobs []parser.Job, idx int) ([]string, error) {
	switch {
	case idx == 0:
		return []string{}, nil
	case idx > 0 && idx <= len(jobs):
		return []string{jobs[idx-1].ID}, nil
	case idx == len(jobs)+1:
		return nil, errExit
	default:
		return nil, fmt.Errorf("invalid selection: %d", idx)
	}
}
