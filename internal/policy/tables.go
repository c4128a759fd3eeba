package policy

import (
	"fmt"

	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/utils"
	"github.com/toyz/valuegen/pkg/objc"
)

// Framework names used by the default tables
const (
	FrameworkFoundation   = "Foundation"
	FrameworkUIKit        = "UIKit"
	FrameworkCoreGraphics = "CoreGraphics"
)

// SystemType is an entry in the known system type table
type SystemType struct {
	Framework string // framework whose umbrella header defines the type
	Copyable  bool   // instances may be mutated after hand-off, copied on store
}

// Tables is the default Policy backed by registries of known names
type Tables struct {
	systemTypes     *utils.BaseRegistry[string, SystemType]
	primitives      *utils.BaseRegistry[string, struct{}]
	systemProtocols *utils.BaseRegistry[string, struct{}]
}

// Option customizes the tables built by NewTables
type Option func(*Tables)

// WithSystemType adds or replaces a system type entry
func WithSystemType(name string, entry SystemType) Option {
	return func(t *Tables) {
		t.systemTypes.Delete(name)
		t.systemTypes.MustRegister(name, entry)
	}
}

// WithPrimitive adds a language-level type name
func WithPrimitive(name string) Option {
	return func(t *Tables) {
		t.primitives.Delete(name)
		t.primitives.MustRegister(name, struct{}{})
	}
}

// WithSystemProtocol adds a framework protocol name
func WithSystemProtocol(name string) Option {
	return func(t *Tables) {
		t.systemProtocols.Delete(name)
		t.systemProtocols.MustRegister(name, struct{}{})
	}
}

// Empty starts from empty tables instead of the defaults
func Empty() Option {
	return func(t *Tables) {
		*t = *newEmptyTables()
	}
}

// NewTables builds the default classification tables and applies opts
func NewTables(opts ...Option) *Tables {
	t := defaultTables.clone()
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Default returns the policy used when none is injected
func Default() Policy {
	return defaultTables
}

// Classify implements Policy
func (t *Tables) Classify(at models.AttributeType) TypeKind {
	if _, ok := t.systemTypes.Get(at.Name); ok {
		return KindBuiltIn
	}
	if at.Name == "id" {
		if _, ok := at.ConformingProtocol.Get(); ok {
			return KindProtocol
		}
		return KindPrimitive
	}
	if t.primitives.Has(at.Name) {
		return KindPrimitive
	}
	if isPointerReference(at.Reference) {
		return KindClass
	}
	return KindUnresolved
}

// SystemImport implements Policy
func (t *Tables) SystemImport(typeName string) (objc.Import, bool) {
	entry, ok := t.systemTypes.Get(typeName)
	if !ok {
		return objc.Import{}, false
	}
	return FrameworkImport(entry.Framework), true
}

// IsCopyable implements Policy
func (t *Tables) IsCopyable(at models.AttributeType) bool {
	entry, ok := t.systemTypes.Get(at.Name)
	return ok && entry.Copyable
}

// IsSystemProtocol implements Policy
func (t *Tables) IsSystemProtocol(name string) bool {
	return t.systemProtocols.Has(name)
}

// SystemTypeNames lists every known system type, sorted
func (t *Tables) SystemTypeNames() []string {
	return t.systemTypes.Keys()
}

// FrameworkImport is the public umbrella import of a framework
func FrameworkImport(framework string) objc.Import {
	return objc.Import{
		File:     fmt.Sprintf("%s.h", framework),
		Library:  models.Some(framework),
		IsPublic: true,
	}
}

func (t *Tables) clone() *Tables {
	return &Tables{
		systemTypes:     t.systemTypes.Clone(),
		primitives:      t.primitives.Clone(),
		systemProtocols: t.systemProtocols.Clone(),
	}
}

func newEmptyTables() *Tables {
	t := &Tables{
		systemTypes:     utils.NewBaseRegistry[string, SystemType]("system type", "type name"),
		primitives:      utils.NewBaseRegistry[string, struct{}]("primitive", "type name"),
		systemProtocols: utils.NewBaseRegistry[string, struct{}]("system protocol", "protocol name"),
	}
	t.systemTypes.SetValidator(utils.ChainValidators(
		utils.NotEmptyKeyValidator[SystemType]("type name"),
		utils.NoDuplicateValidator[string, SystemType]("type name"),
	))
	t.primitives.SetValidator(utils.NoDuplicateValidator[string, struct{}]("type name"))
	t.systemProtocols.SetValidator(utils.NoDuplicateValidator[string, struct{}]("protocol name"))
	return t
}

var defaultTables = func() *Tables {
	t := newEmptyTables()

	copyable := []string{
		"NSString", "NSAttributedString", "NSArray", "NSDictionary", "NSSet",
		"NSOrderedSet", "NSData", "NSIndexSet", "NSCharacterSet",
		"NSMutableString", "NSMutableAttributedString", "NSMutableArray", "NSMutableDictionary",
		"NSMutableSet", "NSMutableOrderedSet", "NSMutableData", "NSMutableIndexSet",
	}
	for _, name := range copyable {
		t.systemTypes.MustRegister(name, SystemType{Framework: FrameworkFoundation, Copyable: true})
	}

	foundation := []string{
		"NSObject", "NSNumber", "NSDecimalNumber", "NSDate", "NSURL", "NSUUID",
		"NSError", "NSValue", "NSNull", "NSLocale", "NSTimeZone", "NSCalendar",
		"NSDateComponents", "NSIndexPath", "NSURLRequest", "NSPredicate",
		"NSInteger", "NSUInteger", "NSTimeInterval", "NSRange", "NSComparisonResult",
	}
	for _, name := range foundation {
		t.systemTypes.MustRegister(name, SystemType{Framework: FrameworkFoundation})
	}

	uikit := []string{"UIImage", "UIColor", "UIFont", "UIView", "UIEdgeInsets", "UIOffset"}
	for _, name := range uikit {
		t.systemTypes.MustRegister(name, SystemType{Framework: FrameworkUIKit})
	}

	coreGraphics := []string{"CGFloat", "CGRect", "CGPoint", "CGSize", "CGVector", "CGAffineTransform"}
	for _, name := range coreGraphics {
		t.systemTypes.MustRegister(name, SystemType{Framework: FrameworkCoreGraphics})
	}

	primitives := []string{
		"BOOL", "bool", "char", "short", "int", "long", "long long", "unsigned",
		"unsigned int", "unsigned long", "float", "double", "SEL", "Class",
		"signed", "signed char", "unsigned char", "signed short", "unsigned short",
		"signed int", "signed long", "signed long long", "unsigned long long",
		"long double", "short int", "long int", "long long int", "unsigned short int",
		"unsigned long int", "unsigned long long int",
		"instancetype", "void", "int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t", "uintptr_t", "size_t",
		"dispatch_block_t",
	}
	for _, name := range primitives {
		t.primitives.MustRegister(name, struct{}{})
	}

	protocols := []string{"NSObject", "NSCopying", "NSMutableCopying", "NSCoding", "NSSecureCoding", "NSFastEnumeration"}
	for _, name := range protocols {
		t.systemProtocols.MustRegister(name, struct{}{})
	}

	return t
}()
