package cli

import (
	"github.com/urfave/cli/v2"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Configuration file path",
		Value:   "_local.hcl",
	}
}

// NewApp створює новий CLI додаток
func NewApp() *cli.App {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "configure",
				Usage: "Generate configuration from template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "template",
						Aliases: []string{"t"},
						Usage:   "Path to HCL template file",
						Value:   "configs/genuka-bridge.hcl.tmpl",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output configuration file path",
						Value:   "_local.hcl",
					},
					&cli.StringFlag{
						Name:    "version",
						Aliases: []string{"v"},
						Usage:   "Build version",
						Value:   "dev",
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Configuration mode (development, staging, production)",
						Value:   "development",
					},
				},
				Action: configureAction,
			},
			{
				Name:   "server",
				Usage:  "Start the auth bridge server",
				Flags:  []cli.Flag{configFlag()},
				Action: serverAction,
			},
			{
				Name:  "migrate",
				Usage: "Apply database migrations",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the last applied migration",
					},
				},
				Action: migrateAction,
			},
			{
				Name:  "sign-callback",
				Usage: "Print a signed callback URL for local testing",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "company-id",
						Usage:    "Company ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "code",
						Usage: "Authorization code",
						Value: "local-test-code",
					},
					&cli.StringFlag{
						Name:  "redirect-to",
						Usage: "Redirect target after login (defaults to genuka.default_redirect)",
					},
					&cli.StringFlag{
						Name:  "base-url",
						Usage: "Public base URL of the bridge",
						Value: "http://localhost:8080",
					},
				},
				Action: signCallbackAction,
			},
			{
				Name:   "version",
				Usage:  "Show version information",
				Action: versionAction,
			},
		},
	}

	return app
}
