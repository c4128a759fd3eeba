package builder

import (
	"github.com/toyz/valuegen/internal/generator"
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/pkg/objc"
)

// PluginName is the name the builder plugin registers under
const PluginName = "builder"

// Plugin exposes the Synthesizer through the generator's plugin surface.
// It only adds a file; every hook into the value type itself stays empty.
type Plugin struct {
	synthesizer *Synthesizer
}

var _ generator.Plugin = (*Plugin)(nil)

// NewPlugin creates the builder plugin around a Synthesizer
func NewPlugin(s *Synthesizer) *Plugin {
	if s == nil {
		s = New(nil)
	}
	return &Plugin{synthesizer: s}
}

// Name implements generator.Plugin
func (p *Plugin) Name() string {
	return PluginName
}

// RequiredIncludesToRun implements generator.Plugin
func (p *Plugin) RequiredIncludesToRun() []string {
	return []string{models.IncludeBuilder}
}

// AdditionalFiles returns the builder file
func (p *Plugin) AdditionalFiles(vt models.ValueType) []objc.File {
	return []objc.File{p.synthesizer.File(vt)}
}

// AdditionalTypes implements generator.Plugin
func (p *Plugin) AdditionalTypes(models.ValueType) []models.ValueType {
	return []models.ValueType{}
}

// Attributes implements generator.Plugin
func (p *Plugin) Attributes(models.ValueType) []models.Attribute {
	return []models.Attribute{}
}

// ClassMethods implements generator.Plugin
func (p *Plugin) ClassMethods(models.ValueType) []objc.Method {
	return []objc.Method{}
}

// InstanceMethods implements generator.Plugin
func (p *Plugin) InstanceMethods(models.ValueType) []objc.Method {
	return []objc.Method{}
}

// Properties implements generator.Plugin
func (p *Plugin) Properties(models.ValueType) []objc.Property {
	return []objc.Property{}
}

// Imports implements generator.Plugin
func (p *Plugin) Imports(models.ValueType) []objc.Import {
	return []objc.Import{}
}

// ForwardDeclarations implements generator.Plugin
func (p *Plugin) ForwardDeclarations(models.ValueType) []objc.ForwardDeclaration {
	return []objc.ForwardDeclaration{}
}

// Functions implements generator.Plugin
func (p *Plugin) Functions(models.ValueType) []objc.Function {
	return []objc.Function{}
}

// HeaderComments implements generator.Plugin
func (p *Plugin) HeaderComments(models.ValueType) []string {
	return []string{}
}

// ImplementedProtocols implements generator.Plugin
func (p *Plugin) ImplementedProtocols(models.ValueType) []objc.Protocol {
	return []objc.Protocol{}
}

// Macros implements generator.Plugin
func (p *Plugin) Macros(models.ValueType) []objc.Macro {
	return []objc.Macro{}
}

// StaticConstants implements generator.Plugin
func (p *Plugin) StaticConstants(models.ValueType) []objc.Constant {
	return []objc.Constant{}
}

// ValidationErrors implements generator.Plugin; validation happens upstream
func (p *Plugin) ValidationErrors(models.ValueType) []error {
	return []error{}
}

// FileType implements generator.Plugin
func (p *Plugin) FileType(models.ValueType) models.Optional[objc.FileType] {
	return models.None[objc.FileType]()
}

// Nullability implements generator.Plugin
func (p *Plugin) Nullability(models.ValueType) models.Optional[objc.ClassNullability] {
	return models.None[objc.ClassNullability]()
}

// SubclassingRestricted implements generator.Plugin
func (p *Plugin) SubclassingRestricted(models.ValueType) bool {
	return false
}

// FileTransformation leaves written files untouched
func (p *Plugin) FileTransformation(request generator.FileRequest) generator.FileRequest {
	return request
}
