package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dsfetch/internal/cli/config"
	"github.com/leapstack-labs/dsfetch/internal/cli/output"
	"github.com/leapstack-labs/dsfetch/internal/kaggle"
	"github.com/leapstack-labs/dsfetch/internal/setup"
)

// Health check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the environment before running setup",
		Long: `Inspect configuration, Kaggle credentials, the datasets root and the
installed datasets, without downloading or writing anything.

The report includes:
- Health checks grouped by category (Configuration, Kaggle, Storage, Datasets)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Plain text
  - JSON: Machine-readable format`,
		Example: `  # Run health check
  dsfetch doctor

  # Output as JSON
  dsfetch doctor --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}

	return cmd
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	HealthChecks    []HealthCheck `json:"health_checks"`
	Score           int           `json:"score"`
	Recommendations []string      `json:"recommendations"`
	IssueCount      int           `json:"issue_count"`
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	RuleID     string   `json:"rule_id"`
	Name       string   `json:"name"`
	Group      string   `json:"group"`
	Status     string   `json:"status"` // "pass", "warn", "error"
	IssueCount int      `json:"issue_count"`
	Details    []string `json:"details,omitempty"`
}

func runDoctor(cmd *cobra.Command) error {
	cfg := config.GetConfig(cmd.Context())
	mode, err := output.ParseMode(cfg.Output)
	if err != nil {
		return err
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	checks := []HealthCheck{checkConfigFile()}

	// A broken catalog file is reported rather than returned so the other
	// checks still run.
	cmdCtx, catalogErr := NewCommandContext(cmd)
	checks = append(checks, checkCatalog(catalogErr))

	checks = append(checks, checkKaggle(cfg)...)
	checks = append(checks, checkRoot(cfg.Root))
	if catalogErr == nil {
		checks = append(checks, checkDatasets(setup.Verify(cmdCtx.Catalog)))
	}

	doctorOutput := buildDoctorOutput(checks)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func checkConfigFile() HealthCheck {
	check := HealthCheck{RuleID: "CF01", Name: "Config file", Group: "configuration", Status: statusPass}
	if path := config.GetConfigFileUsed(); path != "" {
		check.Details = []string{"using " + path}
	} else {
		check.Details = []string{"no dsfetch.yaml found, defaults in use"}
	}
	return check
}

func checkCatalog(err error) HealthCheck {
	check := HealthCheck{RuleID: "CF02", Name: "Dataset catalog", Group: "configuration", Status: statusPass}
	if err != nil {
		check.Status = statusError
		check.IssueCount = 1
		check.Details = []string{err.Error()}
	}
	return check
}

func checkKaggle(cfg *config.Config) []HealthCheck {
	enabled := HealthCheck{RuleID: "KG01", Name: "Kaggle client enabled", Group: "kaggle", Status: statusPass}
	creds := HealthCheck{RuleID: "KG02", Name: "Kaggle credentials", Group: "kaggle", Status: statusPass}

	if !cfg.Kaggle.Enabled {
		enabled.Status = statusWarn
		enabled.IssueCount = 1
		enabled.Details = []string{"gated datasets will need a manual download"}
		creds.Details = []string{"skipped, client disabled"}
		return []HealthCheck{enabled, creds}
	}

	src := kaggle.CredentialSource{ConfigDir: cfg.Kaggle.ConfigDir}
	_, origin, err := kaggle.LoadCredentials(src)
	if err != nil {
		creds.Status = statusWarn
		creds.IssueCount = 1
		creds.Details = []string{err.Error()}
		return []HealthCheck{enabled, creds}
	}
	creds.Details = []string{"found in " + origin}

	checks := []HealthCheck{enabled, creds}
	if origin != "environment" && runtime.GOOS != "windows" {
		checks = append(checks, checkCredentialPermissions(origin))
	}
	return checks
}

func checkCredentialPermissions(path string) HealthCheck {
	check := HealthCheck{RuleID: "KG03", Name: "kaggle.json permissions", Group: "kaggle", Status: statusPass}
	info, err := os.Stat(path)
	if err != nil {
		check.Status = statusWarn
		check.IssueCount = 1
		check.Details = []string{err.Error()}
		return check
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		check.Status = statusWarn
		check.IssueCount = 1
		check.Details = []string{fmt.Sprintf("%s is readable by other users (mode %04o)", path, perm)}
	}
	return check
}

func checkRoot(root string) HealthCheck {
	check := HealthCheck{RuleID: "ST01", Name: "Datasets root", Group: "storage", Status: statusPass}
	fail := func(detail string) HealthCheck {
		check.Status = statusError
		check.IssueCount = 1
		check.Details = []string{detail}
		return check
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		ancestor, err := existingAncestor(root)
		if err != nil {
			return fail(fmt.Sprintf("%s cannot be created: %v", root, err))
		}
		if err := tryWrite(ancestor); err != nil {
			return fail(fmt.Sprintf("%s cannot be created, %s is not writable: %v", root, ancestor, err))
		}
		check.Details = []string{root + " does not exist yet and will be created"}
	case err != nil:
		return fail(err.Error())
	case !info.IsDir():
		return fail(root + " exists but is not a directory")
	default:
		if err := tryWrite(root); err != nil {
			return fail(fmt.Sprintf("%s is not writable: %v", root, err))
		}
		check.Details = []string{root}
	}
	return check
}

// existingAncestor returns the closest existing parent of path. It fails if
// that parent is not a directory.
func existingAncestor(path string) (string, error) {
	dir := filepath.Clean(path)
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no existing parent directory")
		}
		dir = parent

		info, err := os.Stat(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%s is not a directory", dir)
		}
		return dir, nil
	}
}

// tryWrite creates and removes a temporary directory inside dir.
func tryWrite(dir string) error {
	tmp, err := os.MkdirTemp(dir, ".dsfetch-doctor-")
	if err != nil {
		return err
	}
	return os.Remove(tmp)
}

func checkDatasets(report setup.Report) HealthCheck {
	check := HealthCheck{RuleID: "DS01", Name: "Datasets installed", Group: "datasets", Status: statusPass}
	missing := report.Missing()
	if len(missing) == 0 {
		check.Details = []string{fmt.Sprintf("all %d datasets present", len(report.Checks))}
		return check
	}
	check.Status = statusWarn
	check.IssueCount = len(missing)
	for _, c := range missing {
		check.Details = append(check.Details, "missing "+c.Name)
	}
	return check
}

func buildDoctorOutput(checks []HealthCheck) *DoctorOutput {
	// Sort health checks by group then by rule ID
	sort.SliceStable(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return groupOrder(checks[i].Group) < groupOrder(checks[j].Group)
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	issues := 0
	for _, c := range checks {
		issues += c.IssueCount
	}

	return &DoctorOutput{
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

func groupOrder(group string) int {
	switch group {
	case "configuration":
		return 0
	case "kaggle":
		return 1
	case "storage":
		return 2
	default:
		return 3
	}
}

// calculateHealthScore computes a health score from 0-100. Each failing
// check costs a fixed penalty regardless of its issue count; errors count
// double.
func calculateHealthScore(checks []HealthCheck) int {
	score := 100
	for _, check := range checks {
		switch check.Status {
		case statusError:
			score -= 30
		case statusWarn:
			score -= 15
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// generateRecommendations creates actionable recommendations based on findings.
func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	for _, check := range checks {
		if check.Status == statusPass {
			continue
		}
		if rec := getRecommendation(check.RuleID); rec != "" {
			recommendations = append(recommendations, rec)
		}
	}
	return recommendations
}

// getRecommendation returns a recommendation for a specific rule.
func getRecommendation(ruleID string) string {
	switch ruleID {
	case "CF02":
		return "Fix the catalog file or remove catalog_file from the configuration"
	case "KG01":
		return "Enable the Kaggle client (kaggle.enabled: true) to download gated datasets automatically"
	case "KG02":
		return "Create an API token at https://www.kaggle.com/settings/account and save it as ~/.kaggle/kaggle.json"
	case "KG03":
		return "Restrict kaggle.json: chmod 600 ~/.kaggle/kaggle.json"
	case "ST01":
		return "Point --root at a writable directory"
	case "DS01":
		return "Run dsfetch setup to fetch missing datasets"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()

	r.Header("dsfetch Health Report")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			if currentGroup != "" {
				r.Println("")
			}
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render(output.PrefixOK)
		switch check.Status {
		case statusWarn:
			icon = styles.Warning.Render(output.PrefixWarning)
		case statusError:
			icon = styles.Error.Render(output.PrefixError)
		}
		r.Printf("   %s %s: %s\n", icon, check.RuleID, check.Name)

		for _, detail := range check.Details {
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Bold.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}

	return nil
}
