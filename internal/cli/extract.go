package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/base16gen/internal/colour"
	"github.com/jmylchreest/base16gen/internal/image"
	"github.com/jmylchreest/base16gen/internal/theme"
)

type extractOptions struct {
	colours   int
	algorithm string
	format    string
	output    string
	preview   bool
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the raw colour palette from an image",
		Long: `Extract a colour palette from an image without mapping it to base16.

This shows the candidate colours generate works from, heaviest first.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract 16 colours as hex codes
  base16gen extract wallpaper.jpg

  # Extract 32 colours with swatches
  base16gen extract -c 32 --preview wallpaper.png

  # Table with weights, or JSON for scripts
  base16gen extract -f table wallpaper.jpg
  base16gen extract -f json -o palette.json wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.colours, "colours", "c", 16, "number of colours to extract (1-256)")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", string(colour.AlgorithmKMeans), "extraction algorithm (kmeans, prominent)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, json, table)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour swatches")

	return cmd
}

func runExtract(cmd *cobra.Command, global *globalOptions, opts *extractOptions, imagePath string) error {
	logger := global.logger.Named("extract")

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	config := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(opts.algorithm),
		ColorCount: opts.colours,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Debug("extracting colours", "path", imagePath, "algorithm", config.Algorithm, "count", config.ColorCount)
	gen, err := theme.NewGenerator(imagePath, theme.Options{
		Algorithm: config.Algorithm,
		Colours:   config.ColorCount,
		Logger:    global.logger,
	})
	if err != nil {
		return fmt.Errorf("extract palette: %w", err)
	}
	palette := gen.Palette()
	logger.Debug("extracted colours", "count", palette.Len())

	// Swatches only make sense on a terminal, never in a file.
	mode := global.colourMode
	if opts.output != "" {
		mode = colour.ColourNever
	}
	sw := colour.NewSwatcher(cmd.OutOrStdout(), mode)

	output, err := formatPalette(sw, palette, opts.format, opts.preview)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(output), 0o644); err != nil { // #nosec G306 - palette output is not secret
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote palette", "path", opts.output)
		return nil
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), output)
	return err
}

// formatPalette formats the palette according to the specified format.
func formatPalette(sw *colour.Swatcher, palette *colour.Palette, format string, preview bool) (string, error) {
	switch format {
	case "hex":
		return formatLines(sw, palette, preview, colour.RGB.Hex), nil
	case "rgb":
		return formatLines(sw, palette, preview, colour.RGB.String), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return formatTable(sw, palette), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

func formatLines(sw *colour.Swatcher, palette *colour.Palette, preview bool, text func(colour.RGB) string) string {
	var sb strings.Builder
	for _, rgb := range palette.ToRGBSlice() {
		if preview {
			sb.WriteString(sw.Swatch(rgb, 8))
			sb.WriteString(" ")
		}
		sb.WriteString(text(rgb))
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatTable(sw *colour.Swatcher, palette *colour.Palette) string {
	table := NewTable([]string{"#", "Colour", "Hex", "RGB", "Weight"})
	for i, rgb := range palette.ToRGBSlice() {
		weight := ""
		if i < len(palette.Weights) {
			weight = fmt.Sprintf("%.1f%%", palette.Weights[i]*100)
		}
		table.AddRow([]string{
			fmt.Sprintf("%d", i+1),
			sw.Swatch(rgb, 6),
			rgb.Hex(),
			rgb.String(),
			weight,
		})
	}
	return table.Render()
}
