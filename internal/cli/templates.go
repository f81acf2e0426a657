package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/base16gen/internal/render"
)

func newTemplatesCmd(global *globalOptions) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List and customise output templates",
		Long: `List and customise the templates used to render theme files.

Templates can be customised by dumping them to
$XDG_CONFIG_HOME/base16gen/templates/<format>/ and editing them. Custom
templates are used instead of the embedded ones.

Examples:
  base16gen templates list
  base16gen templates dump
  base16gen templates dump vim --force
  base16gen templates dump -l ./templates`,
	}
	cmd.PersistentFlags().StringVarP(&location, "location", "l", render.DefaultCustomBase(), "template override directory")

	cmd.AddCommand(newTemplatesListCmd(global, &location))
	cmd.AddCommand(newTemplatesDumpCmd(global, &location))
	return cmd
}

func newTemplatesListCmd(global *globalOptions, location *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Long: `List the built-in templates and whether a custom override is active.

Templates with an active override are marked with an asterisk (*).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := expandHome(*location)
			if err != nil {
				return err
			}
			loader := render.NewLoader().WithCustomBase(base).WithLogger(global.logger.Named("templates"))
			out := cmd.OutOrStdout()

			table := NewTable([]string{"Format", "Template", "Output", "Description"})
			table.SetColumnMaxWidth(3, 40)
			hasCustom := false
			for _, t := range render.Builtins() {
				info := loader.GetInfo(t)
				name := info.Filename
				if info.CustomExists {
					name += "*"
					hasCustom = true
				}
				table.AddRow([]string{t.Format, name, "<name>" + t.Extension, t.Description})
			}
			fmt.Fprint(out, table.Render())

			fmt.Fprintln(out)
			if base != "" {
				fmt.Fprintf(out, "Custom template directory: %s\n", base)
			}
			if hasCustom {
				fmt.Fprintln(out, "Templates with active overrides are shown with an asterisk (*).")
			}
			fmt.Fprintln(out, "To customise a template, use: base16gen templates dump <format>")
			return nil
		},
	}
}

func newTemplatesDumpCmd(global *globalOptions, location *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "dump [format...]",
		Short: "Dump embedded templates for customisation",
		Long: `Write the embedded templates to <location>/<format>/ so they can be edited.

By default every format is dumped. Existing files are kept unless --force
is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := expandHome(*location)
			if err != nil {
				return err
			}
			if base == "" {
				return fmt.Errorf("no template directory: set --location")
			}

			templates, err := selectTemplates(args)
			if err != nil {
				return err
			}

			loader := render.NewLoader().WithCustomBase(base).WithLogger(global.logger.Named("templates"))
			out := cmd.OutOrStdout()

			dumped, dumpErr := loader.DumpAll(templates, force)
			for _, path := range dumped {
				fmt.Fprintf(out, "  %s\n", path)
			}
			if dumpErr != nil {
				if force || !strings.Contains(dumpErr.Error(), "already exists") {
					return fmt.Errorf("failed to dump templates: %w", dumpErr)
				}
				for _, t := range templates {
					if info := loader.GetInfo(t); info.CustomExists && !slices.Contains(dumped, info.CustomPath) {
						fmt.Fprintf(out, "  %s (already exists)\n", info.CustomPath)
					}
				}
			}

			if len(dumped) == 0 {
				fmt.Fprintln(out, "No templates were dumped. Use --force to overwrite existing templates.")
				return nil
			}
			fmt.Fprintf(out, "Dumped %d template(s) to %s\n", len(dumped), base)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing custom templates")
	return cmd
}

// selectTemplates returns the built-in templates named by formats, or all of
// them when formats is empty.
func selectTemplates(formats []string) ([]render.Template, error) {
	all := render.Builtins()
	if len(formats) == 0 {
		return all, nil
	}

	var selected []render.Template
	for _, format := range formats {
		found := false
		for _, t := range all {
			if t.Format == format {
				selected = append(selected, t)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
		}
	}
	return selected, nil
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
