package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/performance-portal/goldenpath/pkg/profile"
	"github.com/performance-portal/goldenpath/pkg/serializer"
)

func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:    "languages",
		Aliases: []string{"langs"},
		Usage:   "List supported language profiles",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "",
				Usage:   "Output file path (default: stdout)",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "yaml",
				Usage: "Output format (yaml, json)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q, valid formats are: yaml, json", outFormat)
			}

			profiles := make([]*profile.LanguageProfile, 0, len(profile.SupportedLanguages()))
			for _, l := range profile.SupportedLanguages() {
				p, err := profile.Lookup(l)
				if err != nil {
					return fmt.Errorf("error loading profile table: %w", err)
				}
				profiles = append(profiles, p)
			}

			return serializer.NewFileWriterOrStdout(outFormat, cmd.String("output")).Serialize(profiles)
		},
	}
}
