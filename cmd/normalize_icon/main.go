// One-off: render a wallet icon data URL the way GET /wallet/list reports it. Output: base64 PNG, or raw PNG with --raw.
// Usage: go run ./cmd/normalize_icon --file icon.txt [--size 96] [--raw --out icon.png]
package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlexZinkM/wallet-adapter-bridge/internal/icon"
	"github.com/AlexZinkM/wallet-adapter-bridge/internal/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	app := &cli.App{
		Name:  "normalize_icon",
		Usage: "Convert a wallet icon data URL to a prefix-free base64 PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "icon",
				Usage: "icon data URL; read from --file or stdin when empty",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "file containing the icon data URL",
			},
			&cli.IntFlag{
				Name:    "size",
				Usage:   "raster size for vector icons",
				Value:   icon.DefaultSize,
				EnvVars: []string{"ICON_SIZE"},
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "write decoded image bytes instead of base64",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file, stdout when empty",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return err
	}
	defer l.Sync()

	dataURL, err := readIcon(c)
	if err != nil {
		return err
	}

	n, err := icon.NewNormalizer(c.Int("size"), 1)
	if err != nil {
		return err
	}
	out, err := n.Normalize(dataURL)
	if err != nil {
		return fmt.Errorf("failed to normalize icon: %w", err)
	}
	l.Debug("icon normalized", zap.Int("inputLen", len(dataURL)), zap.Int("outputLen", len(out)))

	payload := []byte(out + "\n")
	if c.Bool("raw") {
		if c.String("out") == "" && term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write binary to a terminal: use --out")
		}
		if payload, err = base64.StdEncoding.DecodeString(out); err != nil {
			return fmt.Errorf("failed to decode normalized icon: %w", err)
		}
	}

	if path := c.String("out"); path != "" {
		return os.WriteFile(path, payload, 0o644)
	}
	_, err = os.Stdout.Write(payload)
	return err
}

func readIcon(c *cli.Context) (string, error) {
	if v := c.String("icon"); v != "" {
		return v, nil
	}
	if path := c.String("file"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read icon file: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no icon given: use --icon, --file or pipe it on stdin")
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
