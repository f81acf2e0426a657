package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/base16gen/internal/render"
	"github.com/jmylchreest/base16gen/internal/theme"
)

func newShowCmd(global *globalOptions) *cobra.Command {
	var templateDir string

	cmd := &cobra.Command{
		Use:   "show <bundle>",
		Short: "Preview a theme bundle",
		Long: `Preview a theme saved with generate --bundle.

The palette is read from the bundle's theme.json and rendered again with the
current templates, so template overrides apply.

Examples:
  base16gen show ocean.tar.xz
  base16gen show --color always ocean.zip | less -R`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := expandHome(templateDir)
			if err != nil {
				return err
			}
			registry, err := render.NewLoader().
				WithCustomBase(dir).
				WithLogger(global.logger.Named("templates")).
				Registry()
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}

			th, err := theme.LoadBundle(args[0], render.NewRenderer(registry))
			if err != nil {
				return fmt.Errorf("load bundle: %w", err)
			}
			global.logger.Debug("loaded bundle", "path", args[0], "name", th.Name(), "variant", th.Variant())
			return th.RenderWithMode(cmd.OutOrStdout(), global.colourMode)
		},
	}
	cmd.Flags().StringVar(&templateDir, "template-dir", render.DefaultCustomBase(), "directory holding template overrides")
	return cmd
}
