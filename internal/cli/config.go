package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/faizmokh/jejak/internal/config"
	"github.com/faizmokh/jejak/internal/files"
)

func newConfigCommand(manager *files.Manager) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration.",
		Long: "config prints the settings in use, taken from config.yaml in the jejak directory " +
			"with defaults for missing keys. --init writes them to config.yaml when the file does not exist yet.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := manager.ConfigPath()
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if initFile {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("stat config: %w", err)
				}
				if err := manager.EnsureDir(path); err != nil {
					return err
				}
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				fmt.Fprintf(out, "Wrote %s\n", path)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Fprintln(out, mutedStyle.Render("# "+path))
			fmt.Fprint(out, string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the current settings to config.yaml if it is missing")

	return cmd
}
