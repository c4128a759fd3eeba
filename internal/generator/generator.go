package generator

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/utils"
	"github.com/toyz/valuegen/pkg/objc"
)

// Generator implements the CodeGenerator interface
type Generator struct {
	plugins     *utils.BaseRegistry[string, Plugin]
	concurrency int
}

// Result holds the files generated for one value type
type Result struct {
	ValueType models.ValueType
	Files     []objc.File
}

// Option configures a Generator
type Option func(*Generator)

// WithConcurrency bounds how many value types GenerateAll works on at once.
// Values below one fall back to the number of CPUs.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		g.concurrency = n
	}
}

// WithPlugins registers plugins at construction; it panics on duplicates
func WithPlugins(plugins ...Plugin) Option {
	return func(g *Generator) {
		for _, plugin := range plugins {
			if err := g.Register(plugin); err != nil {
				panic(err)
			}
		}
	}
}

// NewGenerator creates a new generator without plugins
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		plugins: utils.NewBaseRegistry[string, Plugin]("plugin", "plugin name"),
	}
	g.plugins.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[Plugin]("plugin name"),
		utils.NoDuplicateValidator[string, Plugin]("plugin name"),
	))
	for _, opt := range opts {
		opt(g)
	}
	if g.concurrency < 1 {
		g.concurrency = runtime.NumCPU()
	}
	return g
}

// Register adds a plugin
func (g *Generator) Register(plugin Plugin) error {
	if plugin == nil {
		return fmt.Errorf("plugin cannot be nil")
	}
	return g.plugins.Register(plugin.Name(), plugin)
}

// Plugin returns a registered plugin by name
func (g *Generator) Plugin(name string) (Plugin, error) {
	return g.plugins.GetOrError(name)
}

// Plugins returns every registered plugin ordered by name
func (g *Generator) Plugins() []Plugin {
	names := g.plugins.Keys()
	plugins := make([]Plugin, 0, len(names))
	for _, name := range names {
		if plugin, ok := g.plugins.Get(name); ok {
			plugins = append(plugins, plugin)
		}
	}
	return plugins
}

// RequiredIncludes lists, per plugin name, the includes that enable it
func (g *Generator) RequiredIncludes() map[string][]string {
	required := make(map[string][]string, g.plugins.Size())
	for _, plugin := range g.Plugins() {
		required[plugin.Name()] = plugin.RequiredIncludesToRun()
	}
	return required
}

// ShouldRun reports whether vt declares every include the plugin requires
func ShouldRun(plugin Plugin, vt models.ValueType) bool {
	includes := vt.Options.Includes()
	for _, required := range plugin.RequiredIncludesToRun() {
		if !slices.Contains(includes, required) {
			return false
		}
	}
	return true
}

// Validate checks the shape of a value type and collects every plugin's
// validation errors
func (g *Generator) Validate(vt models.ValueType) error {
	var errs *errors.MultipleErrors

	if vt.TypeName == "" {
		errors.AddToMultiple(&errs, errors.NewValidationError("typeName", "a type name", "nothing"))
	}

	seen := make(map[string]bool, len(vt.Attributes))
	for i, attribute := range vt.Attributes {
		field := fmt.Sprintf("attributes[%d].name", i)
		switch {
		case attribute.Name == "":
			errors.AddToMultiple(&errs, errors.NewValidationError(field, "an attribute name", "nothing"))
		case seen[attribute.Name]:
			errors.AddToMultiple(&errs, errors.NewValidationError(field, "a unique attribute name", fmt.Sprintf("duplicate '%s'", attribute.Name)))
		}
		seen[attribute.Name] = true

		if attribute.Type.Name == "" {
			errors.AddToMultiple(&errs, errors.NewValidationError(fmt.Sprintf("attributes[%d].type.name", i), "a type name", "nothing"))
		}
	}

	for _, plugin := range g.Plugins() {
		if !ShouldRun(plugin, vt) {
			continue
		}
		for _, err := range plugin.ValidationErrors(vt) {
			errors.AddToMultiple(&errs, errors.WrapValidationError(vt.TypeName, err).
				WithSuggestion(fmt.Sprintf("reported by the %s plugin", plugin.Name())))
		}
	}

	return errs.ErrorOrNil()
}

// GenerateFiles validates vt and collects the additional files of every
// plugin that runs for it
func (g *Generator) GenerateFiles(vt models.ValueType) ([]objc.File, error) {
	if err := g.Validate(vt); err != nil {
		return nil, err
	}

	files := []objc.File{}
	for _, plugin := range g.Plugins() {
		if !ShouldRun(plugin, vt) {
			continue
		}
		files = append(files, plugin.AdditionalFiles(vt)...)
	}
	return files, nil
}

// TransformFile passes a rendered file through the FileTransformation hook
// of every plugin that runs for vt, in plugin order
func (g *Generator) TransformFile(vt models.ValueType, request FileRequest) FileRequest {
	for _, plugin := range g.Plugins() {
		if ShouldRun(plugin, vt) {
			request = plugin.FileTransformation(request)
		}
	}
	return request
}

// GenerateAll generates many value types concurrently. Results keep the
// input order; the first failure cancels the remaining work.
func (g *Generator) GenerateAll(ctx context.Context, valueTypes []models.ValueType) ([]Result, error) {
	results := make([]Result, len(valueTypes))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(g.concurrency)

	for i, vt := range valueTypes {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := g.GenerateFiles(vt)
			if err != nil {
				return errors.WrapGenerateError("generator", vt.TypeName, err)
			}
			results[i] = Result{ValueType: vt, Files: files}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

var _ CodeGenerator = (*Generator)(nil)
