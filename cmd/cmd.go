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

// setupCommand initializes the database and config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize config file and database, run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// authCommand handles account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Account management",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthSignup,
			},
			{
				Name:  "signin",
				Usage: "Sign in to an existing account",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Usage:    "Account email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Account password",
						Required: true,
					},
				},
				Action: r.AuthSignin,
			},
			{
				Name:   "signout",
				Usage:  "Sign out of the current session",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthSignout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the signed-in account",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthWhoami,
			},
		},
	}
}

// discoverCommand fetches genre recommendations
func discoverCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "discover",
		Aliases: []string{"d"},
		Usage:   "Discover songs by genre",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "genre",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of songs to return",
			},
			&cli.BoolFlag{
				Name:  "list-genres",
				Usage: "List the curated genres and exit",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Discover,
	}
}

// ratingsCommand handles rating history operations
func ratingsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "ratings",
		Aliases: []string{"rate"},
		Usage:   "Rating history operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List rating history, newest first",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Only show ratings with this value (like or dislike)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.RatingsList,
			},
			{
				Name:  "add",
				Usage: "Rate a song by catalog ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "song",
					},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "value",
						Aliases: []string{"v"},
						Usage:   "Rating value (like or dislike)",
						Value:   "like",
					},
				},
				Action: r.RatingsAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a song's rating",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "song",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.RatingsRemove,
			},
			{
				Name:  "export",
				Usage: "Export rating history to a file",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Base output path (extension is added)",
					},
				},
				Action: r.RatingsExport,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Browse and rate songs interactively",
		Flags:  []cli.Flag{configFlag()},
		Action: r.TUI,
	}
}
