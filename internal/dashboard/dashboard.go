package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/spigell/resume-matcher/internal/portal"
	"github.com/spigell/resume-matcher/internal/utils"
)

const (
	dumpPattern      = "dashboard_*.json"
	maxExperienceLen = 60
	notFound         = "-"
)

// Render writes the candidate, job and ranking tables to w.
func Render(w io.Writer, d *portal.Dashboard) error {
	if d == nil {
		return fmt.Errorf("dashboard is required")
	}

	sections := []struct {
		title string
		data  pterm.TableData
		empty string
	}{
		{title: "Candidates", data: candidatesTable(d), empty: "No resumes uploaded yet."},
		{title: "Jobs", data: jobsTable(d), empty: "No jobs uploaded yet."},
	}

	for _, s := range sections {
		if err := writeSection(w, s.title, s.data, s.empty); err != nil {
			return err
		}
	}

	for _, jm := range d.Matches {
		title := fmt.Sprintf("Matches for %s", jm.Job.Title)
		if err := writeSection(w, title, matchesTable(jm), "No matching candidates."); err != nil {
			return err
		}
	}

	return nil
}

// DumpToTmpFile writes the dashboard as JSON into a temporary file and returns its path.
func DumpToTmpFile(d *portal.Dashboard) (string, error) {
	return utils.DumpToTmpFile(dumpPattern, d)
}

func writeSection(w io.Writer, title string, data pterm.TableData, empty string) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", pterm.LightCyan(title)); err != nil {
		return err
	}

	// Only the header row is present.
	if len(data) < 2 {
		_, err := fmt.Fprintf(w, "  %s\n", pterm.Gray(empty))
		return err
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("render %s table: %w", strings.ToLower(title), err)
	}

	_, err = fmt.Fprintln(w, table)
	return err
}

func candidatesTable(d *portal.Dashboard) pterm.TableData {
	data := pterm.TableData{{"Name", "Email", "Phone", "Skills", "Experience", "File"}}
	for _, c := range d.Candidates {
		data = append(data, []string{
			orDash(c.Name),
			orDash(c.Email),
			orDash(c.Phone),
			orDash(strings.Join(c.Skills, ", ")),
			orDash(oneLine(utils.TruncateForLog(c.Experience, maxExperienceLen))),
			orDash(c.Filename),
		})
	}
	return data
}

func jobsTable(d *portal.Dashboard) pterm.TableData {
	data := pterm.TableData{{"Title", "Required skills", "File"}}
	for _, j := range d.Jobs {
		data = append(data, []string{
			j.Title,
			orDash(strings.Join(j.SkillsRequired, ", ")),
			orDash(j.Filename),
		})
	}
	return data
}

func matchesTable(jm portal.JobMatches) pterm.TableData {
	data := pterm.TableData{{"#", "Candidate", "Score"}}
	for i, r := range jm.Ranked {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			orDash(r.Name),
			colorScore(r.Score),
		})
	}
	return data
}

func colorScore(score float64) string {
	s := fmt.Sprintf("%.2f", score)
	switch {
	case score >= 0.75:
		return pterm.Green(s)
	case score >= 0.5:
		return pterm.Yellow(s)
	default:
		return pterm.Red(s)
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return notFound
	}
	return s
}
