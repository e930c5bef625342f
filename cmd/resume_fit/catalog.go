package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-fit/internal/catalog"
	"github.com/jonathan/resume-fit/internal/observability"
	"github.com/jonathan/resume-fit/internal/types"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the roles in the role requirements catalog",
	Args:  cobra.NoArgs,
	RunE:  runRoles,
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the skills taxonomy by category",
	Args:  cobra.NoArgs,
	RunE:  runSkills,
}

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <role>",
	Short: "Print the learning roadmap for a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmap,
}

var validateCatalogCmd = &cobra.Command{
	Use:   "validate-catalog",
	Short: "Check the catalog documents against their schemas and each other",
	Long: `Validates skills_database.json, role_requirements.json and learning_roadmaps.json in the
data directory. Exits non-zero when any problem is found.`,
	Args: cobra.NoArgs,
	RunE: runValidateCatalog,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(roadmapCmd)
	rootCmd.AddCommand(validateCatalogCmd)
}

func runRoles(cmd *cobra.Command, _ []string) error {
	roles := catalog.LoadDir(appCfg.DataDir, appLog).Roles()
	if roles == nil {
		roles = []types.RoleRequirement{}
	}
	if appCfg.LogJSON {
		return writeJSON(cmd.OutOrStdout(), roles)
	}

	out := cmd.OutOrStdout()
	for _, r := range roles {
		fmt.Fprintf(out, "%s\n", r.Role)
		fmt.Fprintf(out, "  critical:    %s\n", strings.Join(r.CriticalSkills, ", "))
		fmt.Fprintf(out, "  recommended: %s\n", strings.Join(r.RecommendedSkills, ", "))
	}
	return nil
}

func runSkills(cmd *cobra.Command, _ []string) error {
	taxonomy := catalog.LoadDir(appCfg.DataDir, appLog).Taxonomy()
	if appCfg.LogJSON {
		categories := []types.SkillCategory(taxonomy)
		if categories == nil {
			categories = []types.SkillCategory{}
		}
		return writeJSON(cmd.OutOrStdout(), categories)
	}

	out := cmd.OutOrStdout()
	for _, c := range taxonomy {
		fmt.Fprintf(out, "%s (%d)\n", c.Name, len(c.Skills))
		fmt.Fprintf(out, "  %s\n", strings.Join(c.Skills, ", "))
	}
	fmt.Fprintf(out, "Total skills: %d\n", taxonomy.SkillCount())
	return nil
}

func runRoadmap(cmd *cobra.Command, args []string) error {
	role := args[0]
	steps := catalog.LoadDir(appCfg.DataDir, appLog).Roadmap(role)
	if len(steps) == 0 {
		return fmt.Errorf("no learning roadmap for role %q", role)
	}
	if appCfg.LogJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"role": role, "steps": steps})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintRoadmap(role, steps)
	return nil
}

func runValidateCatalog(cmd *cobra.Command, _ []string) error {
	errs := catalog.Validate(appCfg.DataDir)
	out := cmd.OutOrStdout()
	if len(errs) == 0 {
		fmt.Fprintf(out, "✓ Catalog in %s is valid\n", appCfg.DataDir)
		return nil
	}
	for _, err := range errs {
		fmt.Fprintf(out, "✗ %v\n", err)
	}
	return fmt.Errorf("catalog has %d problem(s)", len(errs))
}
