package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/newhook/ci-feedback/internal/config"
	"github.com/newhook/ci-feedback/internal/summary"
	"github.com/spf13/cobra"
)

var (
	flagForce      bool
	flagShowOutput string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ci-feedback configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a documented config file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultFileName
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.SaveDocumentedConfig(path); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		effective := effectiveConfig(cfg)
		if flagShowOutput == "" {
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(effective)
		}
		if err := effective.SaveConfig(flagShowOutput); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", flagShowOutput)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing file")
	configShowCmd.Flags().StringVarP(&flagShowOutput, "output", "o", "", "write the effective config to this file instead of stdout")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

// effectiveConfig fills every default into a copy of c.
func effectiveConfig(c *config.Config) *config.Config {
	limits := c.Extract.Options()
	workers := c.Extract.GetWorkers()
	suffix := c.Layout.GetJobDirSuffix()

	jobs := append([]config.JobConfig(nil), c.GetJobs()...)
	for i := range jobs {
		jobs[i].ResultEnv = jobs[i].GetResultEnv()
		if jobs[i].Kind == "" {
			jobs[i].Kind = string(summary.InferJobKind(jobs[i].Name, ""))
		}
	}

	return &config.Config{
		Extract: config.ExtractConfig{
			MaxExcerptLines:       &limits.MaxExcerptLines,
			ContextBefore:         &limits.ContextBefore,
			ContextAfter:          &limits.ContextAfter,
			TailLines:             &limits.TailLines,
			CompilerContextBefore: &limits.CompilerContextBefore,
			CompilerContextAfter:  &limits.CompilerContextAfter,
			TestSearchWindow:      &limits.TestSearchWindow,
			StripPrefixes:         &limits.StripPrefixes,
			Workers:               &workers,
		},
		Layout: config.LayoutConfig{
			JobDirSuffix: &suffix,
			LogExtension: c.Layout.GetLogExtension(),
		},
		Output: config.OutputConfig{
			JSONFile:       c.Output.GetJSONFile(),
			MarkdownFile:   c.Output.GetMarkdownFile(),
			HTMLFile:       c.Output.HTMLFile,
			ArtifactPrefix: c.Output.GetArtifactPrefix(),
		},
		Jobs:      jobs,
		Artifacts: c.GetArtifacts(),
	}
}
