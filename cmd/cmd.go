// cmd.go - CLI Command Definitionen fuer aggregates
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/containerd/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ollama/aggregates/envconfig"
	"github.com/ollama/aggregates/version"
)

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// versionHandler - Gibt die Version aus
func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "aggregates version is %s\n", version.Version)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	if runtime.GOOS == "windows" && term.IsTerminal(int(os.Stdout.Fd())) {
		console.ConsoleFromFile(os.Stdin) //nolint:errcheck
	}

	rootCmd := &cobra.Command{
		Use:           "aggregates",
		Short:         "Batched execution of numeric aggregates",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	// Commands erstellen
	axpyCmd := newAxpyCmd()
	skipGramCmd := newSkipGramCmd()
	opsCmd := newOpsCmd()
	infoCmd := newInfoCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	runEnvs := []envconfig.EnvVar{
		envVars["AGG_DEBUG"],
		envVars["AGG_EXECUTOR"],
		envVars["AGG_NUM_PARALLEL"],
		envVars["AGG_MAX_BATCHES"],
		envVars["AGG_BATCH_LIMIT"],
		envVars["AGG_VERIFY"],
		envVars["AGG_SEED"],
	}

	for _, cmd := range []*cobra.Command{axpyCmd, skipGramCmd, infoCmd} {
		switch cmd {
		case skipGramCmd:
			appendEnvDocs(cmd, append(runEnvs, envVars["AGG_EXP_TABLE_SIZE"]))
		case infoCmd:
			appendEnvDocs(cmd, []envconfig.EnvVar{envVars["AGG_EXECUTOR"], envVars["AGG_NUM_PARALLEL"]})
		default:
			appendEnvDocs(cmd, runEnvs)
		}
	}

	rootCmd.AddCommand(
		axpyCmd,
		skipGramCmd,
		opsCmd,
		infoCmd,
	)

	return rootCmd
}
