package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/base16gen/internal/base16"
	"github.com/jmylchreest/base16gen/internal/colour"
	"github.com/jmylchreest/base16gen/internal/render"
	"github.com/jmylchreest/base16gen/internal/theme"
)

type generateOptions struct {
	variant      string
	intensity    int
	algorithm    string
	colours      int
	accentOrder  string
	strict       bool
	maxImageSide int
	templateDir  string

	preview      bool
	dryRun       bool
	shellOut     string
	vimOut       string
	outputDir    string
	backup       bool
	bundle       string
	previewImage string
	dither       bool
}

func newGenerateCmd(global *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	defaults := theme.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "generate <image> <name>",
		Short: "Generate a base16 theme from an image",
		Long: `Generate a base16 theme from an image.

The image's colours are extracted, filtered to sixteen distinct colours and
mapped onto base00-base0F by luminance. The theme is written as <name>.sh
(base16-shell) and <name>.vim (Vim colour scheme).

Examples:
  # Dark theme in the current directory
  base16gen generate wallpaper.jpg ocean

  # Light theme, preview only
  base16gen generate -V light --preview --dry-run wallpaper.jpg paper

  # Pick dark or light from the image and write into ~/.config/base16
  base16gen generate -V auto -o ~/.config/base16 wallpaper.jpg ocean

  # Only use the darkest 40% of colours, and bundle the result
  base16gen generate -i 40 --bundle ocean.tar.xz wallpaper.jpg ocean`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, global, opts, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.variant, "variant", "V", string(base16.VariantDark), "theme variant (dark, light, auto)")
	flags.IntVarP(&opts.intensity, "intensity", "i", defaults.Intensity, "keep only the darkest (dark) or lightest (light) N% of the brightness range (1-100)")
	flags.StringVarP(&opts.algorithm, "algorithm", "a", string(defaults.Algorithm), "extraction algorithm (kmeans, prominent)")
	flags.IntVarP(&opts.colours, "colours", "c", defaults.Colours, "number of candidate colours to extract (1-256)")
	flags.StringVar(&opts.accentOrder, "accent-order", string(defaults.AccentOrder), "accent layout for base08-base0F (luminance, hue)")
	flags.BoolVar(&opts.strict, "strict", false, "fail instead of repeating colours when the image has fewer than 16")
	flags.IntVar(&opts.maxImageSide, "max-image-side", defaults.MaxImageSide, "downscale images larger than this before extraction (0 disables)")
	flags.StringVar(&opts.templateDir, "template-dir", render.DefaultCustomBase(), "directory of custom template overrides (empty disables)")

	flags.BoolVarP(&opts.preview, "preview", "p", false, "show a preview of the theme")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "show what would be written without writing files")
	flags.StringVar(&opts.shellOut, "shell-out", "", "shell script path (default: <output-dir>/<name>.sh)")
	flags.StringVar(&opts.vimOut, "vim-out", "", "Vim colour scheme path (default: <output-dir>/<name>.vim)")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", ".", "directory for theme files")
	flags.BoolVar(&opts.backup, "backup", false, "keep existing files as <path>.backup")
	flags.StringVar(&opts.bundle, "bundle", "", "also write every theme file into an archive (.tar.xz, .tar.gz, .zip)")
	flags.StringVar(&opts.previewImage, "preview-image", "", "write the image redrawn in the theme colours as a PNG")
	flags.BoolVar(&opts.dither, "dither", false, "dither the preview image (Floyd-Steinberg)")

	return cmd
}

func runGenerate(cmd *cobra.Command, global *globalOptions, opts *generateOptions, imagePath, name string) error {
	logger := global.logger.Named("generate")
	out := cmd.OutOrStdout()

	if err := render.ValidateName(name); err != nil {
		return err
	}
	variant, err := base16.ParseVariant(opts.variant)
	if err != nil {
		return err
	}
	accentOrder, err := base16.ParseAccentOrder(opts.accentOrder)
	if err != nil {
		return err
	}

	templateDir, err := expandHome(opts.templateDir)
	if err != nil {
		return err
	}
	outputDir, err := expandHome(opts.outputDir)
	if err != nil {
		return err
	}

	registry, err := render.NewLoader().
		WithCustomBase(templateDir).
		WithLogger(global.logger.Named("templates")).
		Registry()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	logger.Debug("loading image", "path", imagePath)
	gen, err := theme.NewGenerator(imagePath, theme.Options{
		Algorithm:    colour.Algorithm(opts.algorithm),
		Colours:      opts.colours,
		Intensity:    opts.intensity,
		Strict:       opts.strict,
		AccentOrder:  accentOrder,
		MaxImageSide: opts.maxImageSide,
		Registry:     registry,
		Logger:       global.logger,
	})
	if err != nil {
		return fmt.Errorf("extract palette: %w", err)
	}

	th, err := gen.CreateTheme(name, variant)
	if err != nil {
		return fmt.Errorf("create theme: %w", err)
	}

	if opts.preview {
		if err := th.RenderWithMode(out, global.colourMode); err != nil {
			return fmt.Errorf("render preview: %w", err)
		}
		fmt.Fprintln(out)
	}

	saveOpts := theme.SaveOptions{
		ShellPath:  opts.shellOut,
		EditorPath: opts.vimOut,
		OutputDir:  outputDir,
		Backup:     opts.backup,
	}

	if opts.dryRun {
		printDryRun(out, th, saveOpts, opts)
		return nil
	}

	result, saveErr := th.Save(saveOpts)
	if result != nil {
		for _, path := range result.Written {
			logger.Debug("wrote theme file", "path", path)
			if !global.quiet {
				fmt.Fprintf(out, "  %s\n", path)
			}
		}
		for _, path := range result.Backups {
			logger.Info("kept backup", "path", path)
		}
	}
	if saveErr != nil {
		return fmt.Errorf("save theme: %w", saveErr)
	}

	if opts.bundle != "" {
		if err := th.Bundle(opts.bundle); err != nil {
			return fmt.Errorf("write bundle: %w", err)
		}
		if !global.quiet {
			fmt.Fprintf(out, "  %s\n", opts.bundle)
		}
	}

	if opts.previewImage != "" {
		if err := th.PreviewImage(gen.Image(), opts.previewImage, opts.dither); err != nil {
			return fmt.Errorf("write preview image: %w", err)
		}
		if !global.quiet {
			fmt.Fprintf(out, "  %s\n", opts.previewImage)
		}
	}

	if !global.quiet {
		fmt.Fprintf(out, "Generated %s theme %q\n", th.Variant(), th.Name())
	}
	return nil
}

func printDryRun(w io.Writer, th *theme.Theme, saveOpts theme.SaveOptions, opts *generateOptions) {
	paths := th.Paths(saveOpts)
	formats := make([]string, 0, len(paths))
	for format := range paths {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	for _, format := range formats {
		o, _ := th.Output(format)
		fmt.Fprintf(w, "  Would write: %s (%d bytes)\n", paths[format], len(o.Content))
	}
	if opts.bundle != "" {
		fmt.Fprintf(w, "  Would write: %s\n", opts.bundle)
	}
	if opts.previewImage != "" {
		fmt.Fprintf(w, "  Would write: %s\n", opts.previewImage)
	}
}

// exitCode maps an error to a process exit status.
func exitCode(err error) int {
	var saveErr *theme.SaveError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &saveErr):
		return 2
	default:
		return 1
	}
}
