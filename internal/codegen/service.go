package codegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/cloudmodelgen/ctgen/internal/schema"
)

// ErrDuplicateClassName is returned when two content types map to the same model name
var ErrDuplicateClassName = errors.New("duplicate class name")

// TypeLister lists the content types of a project
type TypeLister interface {
	ListTypes(ctx context.Context) ([]schema.ContentType, error)
}

// FileSystem is the part of the file system the service writes to
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Reporter receives the messages meant for the person running the tool
type Reporter interface {
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
}

type osFileSystem struct{}

func (fs *osFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *osFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (fs *osFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

type nopReporter struct{}

func (nopReporter) Info(string, ...any)    {}
func (nopReporter) Success(string, ...any) {}
func (nopReporter) Warn(string, ...any)    {}

// ServiceOptions controls where and how model files are written
type ServiceOptions struct {
	OutputDir        string
	FileNameSuffix   string
	GeneratePartials bool
}

// Service fetches content types once and writes the models and the type
// provider generated from them
type Service struct {
	lister     TypeLister
	gen        Generator
	opts       ServiceOptions
	fs         FileSystem
	reporter   Reporter
	logger     zerolog.Logger
	types      []schema.ContentType
	fetched    bool
	modelFiles map[string]string
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithFileSystem replaces the OS file system
func WithFileSystem(fs FileSystem) ServiceOption {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithReporter sets the reporter for progress messages
func WithReporter(r Reporter) ServiceOption {
	return func(s *Service) {
		s.reporter = r
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a generation service
func NewService(lister TypeLister, gen Generator, opts ServiceOptions, options ...ServiceOption) *Service {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	s := &Service{
		lister:   lister,
		gen:      gen,
		opts:     opts,
		fs:       &osFileSystem{},
		reporter: nopReporter{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GenerateContentTypeModels writes one model file per content type. With
// partials, the hand-editable half of each model is created only when it does
// not exist yet, so user code is never overwritten.
func (s *Service) GenerateContentTypeModels(ctx context.Context, structured bool) error {
	types, err := s.contentTypes(ctx)
	if err != nil {
		return err
	}

	if len(types) == 0 {
		s.reporter.Warn("No content types found in the project")
		return nil
	}

	partials := s.opts.GeneratePartials
	if partials && !s.gen.SupportsPartials() {
		s.reporter.Warn("%s does not support partial models, generating complete models instead", s.gen.Language())
		partials = false
	}

	classNames, err := s.classNames(types)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(s.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.opts.OutputDir, err)
	}

	modelFiles := make(map[string]string, len(types))
	for _, ct := range types {
		if err := ctx.Err(); err != nil {
			return err
		}

		className := classNames[ct.System.Codename]
		fileName := s.gen.ModelFileName(className, s.opts.FileNameSuffix)

		code, err := s.gen.GenerateModel(ct, structured)
		if err != nil {
			return fmt.Errorf("failed to generate model for %s: %w", ct.System.Codename, err)
		}
		if err := s.write(fileName, code); err != nil {
			return err
		}
		modelFiles[ct.System.Codename] = fileName

		if partials {
			if err := s.writeCustomPartial(ct, className, fileName); err != nil {
				return err
			}
		}
	}

	s.modelFiles = modelFiles
	s.reporter.Success("%d content type models generated in %s", len(types), s.opts.OutputDir)
	s.logger.Info().Int("count", len(types)).Str("dir", s.opts.OutputDir).Msg("generated content type models")
	return nil
}

// GenerateTypeProvider writes the type provider for all content types
func (s *Service) GenerateTypeProvider(ctx context.Context) error {
	types, err := s.contentTypes(ctx)
	if err != nil {
		return err
	}

	classNames, err := s.classNames(types)
	if err != nil {
		return err
	}

	modelFiles := s.modelFiles
	if modelFiles == nil {
		modelFiles = make(map[string]string, len(types))
		for _, ct := range types {
			modelFiles[ct.System.Codename] = s.gen.ModelFileName(classNames[ct.System.Codename], s.opts.FileNameSuffix)
		}
	}

	code, err := s.gen.GenerateTypeProvider(types, modelFiles)
	if err != nil {
		return fmt.Errorf("failed to generate type provider: %w", err)
	}

	if err := s.fs.MkdirAll(s.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", s.opts.OutputDir, err)
	}
	return s.write(s.gen.TypeProviderFileName(), code)
}

// contentTypes lists the content types on first use
func (s *Service) contentTypes(ctx context.Context) ([]schema.ContentType, error) {
	if s.fetched {
		return s.types, nil
	}

	types, err := s.lister.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list content types: %w", err)
	}
	s.logger.Debug().Int("count", len(types)).Msg("listed content types")

	s.types = types
	s.fetched = true
	return types, nil
}

// classNames maps codenames to model names and rejects collisions, which
// would make two models overwrite each other
func (s *Service) classNames(types []schema.ContentType) (map[string]string, error) {
	names := make(map[string]string, len(types))
	owners := make(map[string]string, len(types))
	for _, ct := range types {
		name := s.gen.ClassName(ct.System.Codename)
		if owner, exists := owners[name]; exists {
			return nil, fmt.Errorf("%w: content types %q and %q both map to %s", ErrDuplicateClassName, owner, ct.System.Codename, name)
		}
		owners[name] = ct.System.Codename
		names[ct.System.Codename] = name
	}
	return names, nil
}

func (s *Service) writeCustomPartial(ct schema.ContentType, className, generatedFile string) error {
	fileName := s.gen.ModelFileName(className, "")
	if fileName == generatedFile {
		s.logger.Debug().Str("file", fileName).Msg("custom partial would overwrite the generated model, skipping")
		return nil
	}

	path := filepath.Join(s.opts.OutputDir, fileName)
	if _, err := s.fs.Stat(path); err == nil {
		s.logger.Debug().Str("file", path).Msg("custom partial exists, skipping")
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}

	code, err := s.gen.GenerateCustomPartial(ct)
	if err != nil {
		return fmt.Errorf("failed to generate custom partial for %s: %w", ct.System.Codename, err)
	}
	return s.write(fileName, code)
}

func (s *Service) write(fileName string, code []byte) error {
	path := filepath.Join(s.opts.OutputDir, fileName)
	if err := s.fs.WriteFile(path, code, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.reporter.Info("%s generated", path)
	return nil
}
