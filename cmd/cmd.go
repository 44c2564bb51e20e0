// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand starts the proxy
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the OAuth proxy (login, callback, refresh_token)",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example config.toml",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "client-id",
						Usage: "Spotify client id to store in the new config",
					},
					&cli.StringFlag{
						Name:  "client-secret",
						Usage: "Spotify client secret to store in the new config",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration with secrets masked",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}

// routesCommand lists the HTTP surface
func routesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "routes",
		Usage:  "List the routes served by the proxy",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Routes,
	}
}

// loginCommand opens the proxy's login endpoint in a browser
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Open the login endpoint of a running proxy in the browser",
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Print the URL instead of opening it",
			},
		},
		Action: r.Login,
	}
}
