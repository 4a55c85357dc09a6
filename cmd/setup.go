package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytcopy/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the example configuration to --output, or to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		return fmt.Errorf("%w: --output", shared.ErrMissingArgument)
	}

	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Configuration written to %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set credentials.spotify.client_id and client_secret (or credentials_file)\n")
	r.writePlain("2. Run 'ytcopy setup youtube --curl-file request.sh' to store YouTube Music headers\n")
	return nil
}

// SetupYouTube stores YouTube Music browser headers taken from a "Copy as cURL" request.
//
// The headers are written to --output, or to credentials.youtube.headers_path.
func (r *Runner) SetupYouTube(ctx context.Context, cmd *cli.Command) error {
	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidInput)
	}

	var (
		headers shared.BrowserHeaders
		err     error
	)
	if curlFile != "" {
		headers, err = shared.ParseCurlFile(curlFile)
	} else {
		headers, err = shared.ParseCurlCommand([]byte(curlCmd))
	}
	if err != nil {
		return fmt.Errorf("failed to parse cURL command: %w", err)
	}
	r.logger.Debug("parsed browser headers", "count", len(headers))

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = r.config.Credentials.YouTube.HeadersPath
	}
	if err := shared.WriteBrowserAuth(headers, outputPath); err != nil {
		return err
	}
	r.logger.Info("browser.json saved", "path", outputPath)

	r.writePlain("✓ YouTube Music authentication configured successfully\n")
	r.writePlain("Auth file saved to: %s\n", outputPath)
	r.writePlainln("Next steps:")
	r.writePlain("1. Make sure credentials.youtube.headers_path = \"%s\"\n", outputPath)
	r.writePlain("2. Run 'ytcopy playlists' to test authentication\n")
	return nil
}
