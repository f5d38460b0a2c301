// Package commands contains the CLI commands for the application
package commands

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/cloudmodelgen/ctgen/internal/codegen"
	"github.com/cloudmodelgen/ctgen/internal/config"
	"github.com/cloudmodelgen/ctgen/internal/delivery"
	"github.com/cloudmodelgen/ctgen/internal/report"
)

// ContentTypeGenerator writes the models of a project's content types
type ContentTypeGenerator interface {
	GenerateContentTypeModels(ctx context.Context, structured bool) error
	GenerateTypeProvider(ctx context.Context) error
}

// GeneratorFactory creates the generator for a resolved configuration
type GeneratorFactory func(opts config.Options, console *report.Console) (ContentTypeGenerator, error)

// Controller runs the application
type Controller struct {
	// Version is printed by --version
	Version string

	// WorkDir is where the default settings file is looked up
	WorkDir string

	// Console receives all user-facing output
	Console *report.Console

	// NewGenerator creates the generator; NewDeliveryGenerator when nil
	NewGenerator GeneratorFactory
}

// NewController creates a controller that prints to stdout and stderr
func NewController(version string) *Controller {
	return &Controller{
		Version:      version,
		WorkDir:      ".",
		Console:      report.NewStdConsole(),
		NewGenerator: NewDeliveryGenerator,
	}
}

// Execute validates opts and runs the generator: the models first, then the
// type provider when requested. usage prints the help text.
func (c *Controller) Execute(ctx context.Context, opts config.Options, usage func() error) error {
	if err := opts.Validate(); err != nil {
		c.Console.Error("Provide a Project ID!")
		if usage != nil {
			_ = usage()
		}
		return cli.Exit("", 1)
	}

	log.Debug().
		Str("projectId", opts.ProjectID).
		Str("language", opts.Language).
		Str("outputDir", opts.OutputDir).
		Str("fileNameSuffix", opts.FilenameSuffix).
		Bool("generatePartials", opts.GeneratePartials).
		Bool("withTypeProvider", opts.WithTypeProvider).
		Bool("structuredModel", opts.StructuredModel).
		Msg("resolved options")

	factory := c.NewGenerator
	if factory == nil {
		factory = NewDeliveryGenerator
	}

	gen, err := factory(opts, c.Console)
	if err != nil {
		return c.fail(err)
	}

	if err := gen.GenerateContentTypeModels(ctx, opts.StructuredModel); err != nil {
		return c.fail(err)
	}

	if opts.WithTypeProvider {
		if err := gen.GenerateTypeProvider(ctx); err != nil {
			return c.fail(err)
		}
	}

	return nil
}

func (c *Controller) fail(err error) error {
	c.Console.Error("%v", err)

	var apiErr *delivery.APIError
	switch {
	case errors.Is(err, delivery.ErrInvalidProjectID):
		c.Console.Warn("Project IDs are GUIDs, e.g. 975bf280-fd91-488c-994c-2f04416e5ee3")
	case errors.Is(err, codegen.ErrUnsupportedLanguage):
		c.Console.Warn("Supported languages: %v", codegen.DefaultRegistry.Languages())
	case errors.As(err, &apiErr) && apiErr.StatusCode == 404:
		c.Console.Warn("Check that the project exists and its Delivery API is enabled")
	}

	return cli.Exit("", 1)
}

// NewDeliveryGenerator creates a generator that lists content types through
// the Delivery API and writes the models to disk
func NewDeliveryGenerator(opts config.Options, console *report.Console) (ContentTypeGenerator, error) {
	client, err := delivery.NewClient(opts.ProjectID,
		delivery.WithEndpoint(opts.Endpoint),
		delivery.WithLogger(log.Logger),
	)
	if err != nil {
		return nil, err
	}

	gen, err := codegen.DefaultRegistry.Get(opts.Language, codegen.Config{
		Namespace: opts.Namespace,
		Partials:  opts.GeneratePartials,
	})
	if err != nil {
		return nil, err
	}

	svcOpts := codegen.ServiceOptions{
		OutputDir:        opts.OutputDir,
		FileNameSuffix:   opts.FilenameSuffix,
		GeneratePartials: opts.GeneratePartials,
	}
	return codegen.NewService(client, gen, svcOpts,
		codegen.WithReporter(console),
		codegen.WithLogger(log.Logger),
	), nil
}

// exitCode maps the error returned by the app to a process exit code
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
