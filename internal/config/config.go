package config

import (
	"errors"
	"strings"
)

const (
	// DefaultOutputDir is where files are written when no output directory is configured
	DefaultOutputDir = "."

	// DefaultLanguage is the target language when none is configured
	DefaultLanguage = "csharp"

	// DefaultEndpoint is the base URL of the Kentico Cloud Delivery API
	DefaultEndpoint = "https://deliver.kenticocloud.com"

	// PartialsFilenameSuffix is used as the filename suffix when partial classes
	// are generated and no suffix was configured
	PartialsFilenameSuffix = "Generated"
)

// ErrMissingProjectID is returned by Validate when no project id was configured
var ErrMissingProjectID = errors.New("project id is required")

// Options is the resolved configuration of a single generator run
type Options struct {
	ProjectID        string
	Namespace        string
	OutputDir        string
	FilenameSuffix   string
	GeneratePartials bool
	WithTypeProvider bool
	StructuredModel  bool
	Language         string
	Endpoint         string
}

// Defaults returns the compiled-in options
func Defaults() Options {
	return Options{
		OutputDir: DefaultOutputDir,
		Language:  DefaultLanguage,
		Endpoint:  DefaultEndpoint,
	}
}

// Validate reports whether generation can start with these options
func (o Options) Validate() error {
	if strings.TrimSpace(o.ProjectID) == "" {
		return ErrMissingProjectID
	}
	return nil
}

// Source is one configuration layer. Nil fields were not provided by the layer
// and fall through to the layers below it.
type Source struct {
	// Name identifies the layer in log output
	Name string `json:"-" yaml:"-"`

	ProjectID        *string `json:"projectId" yaml:"projectId"`
	Namespace        *string `json:"namespace" yaml:"namespace"`
	OutputDir        *string `json:"outputDir" yaml:"outputDir"`
	FilenameSuffix   *string `json:"fileNameSuffix" yaml:"fileNameSuffix"`
	GeneratePartials *bool   `json:"generatePartials" yaml:"generatePartials"`
	WithTypeProvider *bool   `json:"withTypeProvider" yaml:"withTypeProvider"`
	StructuredModel  *bool   `json:"structuredModel" yaml:"structuredModel"`
	Language         *string `json:"language" yaml:"language"`
	Endpoint         *string `json:"endpoint" yaml:"endpoint"`
}

// Fields returns the names of the fields this layer provides
func (s Source) Fields() []string {
	var fields []string
	add := func(name string, set bool) {
		if set {
			fields = append(fields, name)
		}
	}
	add("projectId", s.ProjectID != nil)
	add("namespace", s.Namespace != nil)
	add("outputDir", s.OutputDir != nil)
	add("fileNameSuffix", s.FilenameSuffix != nil)
	add("generatePartials", s.GeneratePartials != nil)
	add("withTypeProvider", s.WithTypeProvider != nil)
	add("structuredModel", s.StructuredModel != nil)
	add("language", s.Language != nil)
	add("endpoint", s.Endpoint != nil)
	return fields
}

func (s Source) applyTo(o *Options) {
	setString(&o.ProjectID, s.ProjectID)
	setString(&o.Namespace, s.Namespace)
	setString(&o.OutputDir, s.OutputDir)
	setString(&o.FilenameSuffix, s.FilenameSuffix)
	setBool(&o.GeneratePartials, s.GeneratePartials)
	setBool(&o.WithTypeProvider, s.WithTypeProvider)
	setBool(&o.StructuredModel, s.StructuredModel)
	setString(&o.Language, s.Language)
	setString(&o.Endpoint, s.Endpoint)
}

// Resolve folds the sources over Defaults from left to right. A field set in a
// later source replaces the value from earlier ones.
//
// When partial classes are enabled and the resolved filename suffix is empty,
// the suffix becomes PartialsFilenameSuffix so the generated file never takes
// the name of the hand-edited companion file.
func Resolve(sources ...Source) Options {
	opts := Defaults()
	for _, src := range sources {
		src.applyTo(&opts)
	}

	if opts.GeneratePartials && opts.FilenameSuffix == "" {
		opts.FilenameSuffix = PartialsFilenameSuffix
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}

	return opts
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
