package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fmueller/chordpdf/internal/chordpro"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNoSongInput = errors.New("no song given; pass a .cho file or pipe song text on stdin")

type generateOptions struct {
	output    string
	transpose int
	timeout   time.Duration
	open      bool
}

func newGenerateCmd(app *appState) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [song-file|-]",
		Short: "Generate a PDF from ChordPro song text",
		Long: "Generate a PDF from ChordPro song text read from a file or stdin.\n" +
			"Without --output the PDF is named after the song's {title} directive.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			song, err := loadSong(cmd, args)
			if err != nil {
				return err
			}

			outputPath, err := resolveOutputPath(opts.output, song)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("timeout") {
				app.cfg.Timeout = opts.timeout
			}
			gen := app.newGenerator()

			app.log().Info("generating pdf", zap.String("output", outputPath), zap.String("script", gen.ScriptPath()))
			stopSpinner := startSpinner(app.progressEnabled(), "Generating PDF")
			result, err := gen.Generate(cmd.Context(), chordpro.Request{
				SongText:   song,
				OutputPath: outputPath,
				Transpose:  opts.transpose,
			})
			stopSpinner()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Message)

			if opts.open && app.openFn != nil {
				if err := app.openFn(result.OutputPath); err != nil {
					app.log().Warn("failed to open generated pdf", zap.String("path", result.OutputPath), zap.Error(err))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output PDF path (default: <title>.pdf in the current directory)")
	cmd.Flags().IntVar(&opts.transpose, "transpose", 0, "Transpose chords by this many semitones")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Abort chordpro after this long, e.g. 30s; 0 disables (default from config)")
	cmd.Flags().BoolVar(&opts.open, "open", false, "Open the generated PDF in the system viewer")

	return cmd
}

func loadSong(cmd *cobra.Command, args []string) (string, error) {
	if isStdinArg(args) {
		in := cmd.InOrStdin()
		if isTerminalReader(in) {
			return "", errNoSongInput
		}
		song, err := readSong(in)
		if err != nil {
			return "", fmt.Errorf("read song from stdin: %w", err)
		}
		return song, nil
	}

	path := filepath.Clean(args[0])
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read song file: %w", err)
	}
	return string(data), nil
}

func resolveOutputPath(flagValue, song string) (string, error) {
	output := strings.TrimSpace(flagValue)
	if output == "" {
		output = chordpro.DefaultOutputName(chordpro.SongTitle(song))
	}

	abs, err := filepath.Abs(output)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	return abs, nil
}
