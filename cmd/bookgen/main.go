// Command bookgen writes one book from a profile file without starting the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gin-gonic/gin/binding"
	"github.com/spf13/cobra"

	"github.com/adventuresof/adventuresof/backend/go-services/internal/assembler"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/book/service"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/config"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/illustration"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/models"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/prompt"
	"github.com/adventuresof/adventuresof/backend/go-services/internal/story"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), "console")
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		profilePath string
		outputDir   string
		offline     bool
	)
	cmd := &cobra.Command{
		Use:   "bookgen",
		Short: "Generate an Adventures Of picture book from a profile JSON file",
		Long: `bookgen reads a child profile (the same JSON accepted by POST /api/generate),
writes the PDF into the output directory and prints the result as JSON.
Use --profile - to read the profile from stdin.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if outputDir == "" {
				outputDir = cfg.Book.OutputDir
			}
			if offline {
				cfg.Story.APIKey = config.UnsetAPIKey
			}

			p, err := readProfile(cmd.InOrStdin(), profilePath)
			if err != nil {
				return err
			}

			svc := service.NewService(
				illustration.NewSelector(),
				story.NewGenerator(cfg.Story, prompt.NewBuilder()),
				assembler.New(outputDir),
				service.Options{DownloadPrefix: cfg.Book.DownloadPrefix},
			)
			b, err := svc.Generate(cmd.Context(), p)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]string{
				"path":           b.Path,
				"downloadUrl":    b.DownloadURL,
				"storySource":    b.StorySource,
				"characterImage": b.CharacterImage,
			})
		},
	}
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "profile JSON file, or - for stdin")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "directory for the PDF (default OUTPUT_DIR)")
	cmd.Flags().BoolVar(&offline, "offline", false, "skip the remote story service and use the built-in story")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

// readProfile decodes and validates a profile with the same rules as the HTTP API.
func readProfile(stdin io.Reader, path string) (*models.Profile, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open profile: %w", err)
		}
		defer f.Close()
		r = f
	}
	var p models.Profile
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := binding.Validator.ValidateStruct(&p); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return &p, nil
}
