package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/cloudmodelgen/ctgen/internal/args"
	"github.com/cloudmodelgen/ctgen/internal/config"
)

// AppName is the name of the executable
const AppName = "content-types-generator"

const (
	flagProjectID        = "projectid"
	flagNamespace        = "namespace"
	flagOutputDir        = "outputdir"
	flagFilenameSuffix   = "filenamesuffix"
	flagGeneratePartials = "generatepartials"
	flagWithTypeProvider = "withtypeprovider"
	flagStructuredModel  = "structuredmodel"
	flagLanguage         = "language"
	flagEndpoint         = "endpoint"
	flagConfig           = "config"
	flagLogLevel         = "log-level"
	flagHelp             = "help"
	flagVersion          = "version"
)

// newFlags builds the flag definitions. Flags keep their parsed state, so
// every run needs a fresh set.
func newFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagProjectID,
			Aliases: []string{"p"},
			Usage:   "Kentico Cloud project ID",
			Sources: cli.EnvVars("CTGEN_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:    flagNamespace,
			Aliases: []string{"n"},
			Usage:   "namespace (or package) of the generated code",
			Sources: cli.EnvVars("CTGEN_NAMESPACE"),
		},
		&cli.StringFlag{
			Name:    flagOutputDir,
			Aliases: []string{"o"},
			Usage:   "output directory for the generated files",
			Value:   config.DefaultOutputDir,
			Sources: cli.EnvVars("CTGEN_OUTPUT_DIR"),
		},
		&cli.StringFlag{
			Name:    flagFilenameSuffix,
			Aliases: []string{"f"},
			Usage:   "suffix added to generated file names (e.g., News.cs becomes News.Generated.cs)",
			Sources: cli.EnvVars("CTGEN_FILENAME_SUFFIX"),
		},
		&cli.BoolFlag{
			Name:    flagGeneratePartials,
			Aliases: []string{"g"},
			Usage:   "generate partial classes for customization; the file name suffix defaults to Generated",
			Sources: cli.EnvVars("CTGEN_GENERATE_PARTIALS"),
		},
		&cli.BoolFlag{
			Name:    flagWithTypeProvider,
			Aliases: []string{"t"},
			Usage:   "also generate a type provider mapping codenames to models",
			Sources: cli.EnvVars("CTGEN_WITH_TYPE_PROVIDER"),
		},
		&cli.BoolFlag{
			Name:    flagStructuredModel,
			Aliases: []string{"s"},
			Usage:   "use types that represent the structured data model (rich text, linked items)",
			Sources: cli.EnvVars("CTGEN_STRUCTURED_MODEL"),
		},
		&cli.StringFlag{
			Name:    flagLanguage,
			Aliases: []string{"l"},
			Usage:   "target language (csharp, go, typescript)",
			Value:   config.DefaultLanguage,
			Sources: cli.EnvVars("CTGEN_LANGUAGE"),
		},
		&cli.StringFlag{
			Name:    flagEndpoint,
			Aliases: []string{"e"},
			Usage:   "base URL of the Delivery API",
			Value:   config.DefaultEndpoint,
			Sources: cli.EnvVars("CTGEN_ENDPOINT"),
		},
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "settings file (default: appSettings.json, appSettings.yaml or appSettings.yml in the working directory)",
			Sources: cli.EnvVars("CTGEN_CONFIG"),
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "log level (debug, info, warn, error, fatal, panic)",
			Sources: cli.EnvVars("LOG_LEVEL"),
			Value:   "warn",
		},
		&cli.BoolFlag{
			Name:    flagHelp,
			Aliases: []string{"h"},
			Usage:   "show help",
		},
		&cli.BoolFlag{
			Name:    flagVersion,
			Aliases: []string{"v"},
			Usage:   "print the version",
		},
	}
}

// NewApp builds the root command. unrecognized holds the tokens the argument
// pre-pass rejected; when there are any, the action reports them and fails.
func (c *Controller) NewApp(unrecognized []string) *cli.Command {
	return &cli.Command{
		Name:            AppName,
		Usage:           "Generates models from the content types of a Kentico Cloud project",
		Version:         c.Version,
		Flags:           newFlags(),
		Writer:          c.Console.Out(),
		HideHelp:        true,
		HideHelpCommand: true,
		HideVersion:     true,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(cmd.String(flagLogLevel))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			usage := func() error { return cli.ShowAppHelp(cmd) }

			if len(unrecognized) > 0 {
				c.Console.Info("Invalid arguments!")
				for _, tok := range unrecognized {
					c.Console.Info("Unrecognized option '%s'", tok)
				}
				_ = usage()
				return cli.Exit("", 1)
			}

			if cmd.Bool(flagVersion) {
				cli.ShowVersion(cmd)
				return nil
			}

			opts, err := c.resolveOptions(cmd)
			if err != nil {
				c.Console.Error("%v", err)
				return cli.Exit("", 1)
			}

			return c.Execute(ctx, opts, usage)
		},
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			c.Console.Error("Invalid arguments! %v", err)
			_ = cli.ShowAppHelp(cmd)
			return cli.Exit("", 1)
		},
		// Exit codes are returned from Run, never handled by os.Exit
		ExitErrHandler: func(ctx context.Context, cmd *cli.Command, err error) {},
	}
}

// Run parses argv (including the program name) and runs the app, returning
// the process exit code
func (c *Controller) Run(ctx context.Context, argv []string) int {
	program := AppName
	var tokens []string
	if len(argv) > 0 {
		program = argv[0]
		tokens = argv[1:]
	}

	parsed := args.Parse(tokens, newFlags())
	runArgs := []string{program}
	if parsed.Valid() {
		runArgs = append(runArgs, parsed.Known...)
	}

	app := c.NewApp(parsed.Unrecognized)
	if err := app.Run(ctx, runArgs); err != nil {
		if msg := err.Error(); msg != "" {
			c.Console.Error("%s", msg)
		}
		return exitCode(err)
	}
	return 0
}

// resolveOptions layers defaults, the settings file and the command line.
// Only flags that were actually given (or set through their environment
// variable) override the settings file.
func (c *Controller) resolveOptions(cmd *cli.Command) (config.Options, error) {
	var (
		file config.Source
		path string
		err  error
	)
	if cmd.IsSet(flagConfig) {
		path = cmd.String(flagConfig)
		file, err = config.LoadFile(path)
	} else {
		file, path, err = config.LoadDefaultFile(c.WorkDir)
	}
	if err != nil {
		return config.Options{}, err
	}

	flags := commandLineSource(cmd)
	log.Debug().
		Str("file", path).
		Strs("fileFields", file.Fields()).
		Strs("flagFields", flags.Fields()).
		Msg("loaded configuration")

	return config.Resolve(file, flags), nil
}

func commandLineSource(cmd *cli.Command) config.Source {
	str := func(name string) *string {
		if !cmd.IsSet(name) {
			return nil
		}
		v := cmd.String(name)
		return &v
	}
	boolean := func(name string) *bool {
		if !cmd.IsSet(name) {
			return nil
		}
		v := cmd.Bool(name)
		return &v
	}

	return config.Source{
		Name:             "command line",
		ProjectID:        str(flagProjectID),
		Namespace:        str(flagNamespace),
		OutputDir:        str(flagOutputDir),
		FilenameSuffix:   str(flagFilenameSuffix),
		GeneratePartials: boolean(flagGeneratePartials),
		WithTypeProvider: boolean(flagWithTypeProvider),
		StructuredModel:  boolean(flagStructuredModel),
		Language:         str(flagLanguage),
		Endpoint:         str(flagEndpoint),
	}
}
