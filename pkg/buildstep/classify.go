package buildstep

import "strings"

// DetailCategory is the fine-grained action classification for detail-kind
// steps, inferred from the step's signature.
type DetailCategory string

const (
	CategoryCCompilation               DetailCategory = "cCompilation"
	CategorySwiftCompilation           DetailCategory = "swiftCompilation"
	CategoryScriptExecution            DetailCategory = "scriptExecution"
	CategoryCreateStaticLibrary        DetailCategory = "createStaticLibrary"
	CategoryLinker                     DetailCategory = "linker"
	CategoryCopySwiftLibs              DetailCategory = "copySwiftLibs"
	CategoryCompileAssetsCatalog       DetailCategory = "compileAssetsCatalog"
	CategoryCompileStoryboard          DetailCategory = "compileStoryboard"
	CategoryWriteAuxiliaryFile         DetailCategory = "writeAuxiliaryFile"
	CategoryLinkStoryboards            DetailCategory = "linkStoryboards"
	CategoryCopyResourceFile           DetailCategory = "copyResourceFile"
	CategoryMergeSwiftModule           DetailCategory = "mergeSwiftModule"
	CategoryXIBCompilation             DetailCategory = "xibCompilation"
	CategorySwiftAggregatedCompilation DetailCategory = "swiftAggregatedCompilation"
	CategoryPrecompileBridgingHeader   DetailCategory = "precompileBridgingHeader"
	CategoryOther                      DetailCategory = "other"
	CategoryNone                       DetailCategory = "none"
)

// signatureRule binds a signature prefix to its category.
type signatureRule struct {
	prefix   string
	category DetailCategory
}

// signatureRules is tested in order and the first match wins, so future
// overlapping prefixes stay safe to add. Each prefix is terminated by a
// single space where the tool name is followed by arguments, keeping
// "CompileC " from matching "CompileCoreData ...".
var signatureRules = []signatureRule{
	{"CompileC ", CategoryCCompilation},
	{"CompileSwift ", CategorySwiftCompilation},
	{"Ld ", CategoryLinker},
	{"PhaseScriptExecution ", CategoryScriptExecution},
	{"Libtool ", CategoryCreateStaticLibrary},
	{"CopySwiftLibs ", CategoryCopySwiftLibs},
	{"CompileAssetCatalog", CategoryCompileAssetsCatalog},
	{"CompileStoryboard ", CategoryCompileStoryboard},
	{"WriteAuxiliaryFile ", CategoryWriteAuxiliaryFile},
	{"LinkStoryboards ", CategoryLinkStoryboards},
	{"CpResource ", CategoryCopyResourceFile},
	{"MergeSwiftModule ", CategoryMergeSwiftModule},
	{"CompileXIB ", CategoryXIBCompilation},
	{"CompileSwiftSources ", CategorySwiftAggregatedCompilation},
	{"PrecompileSwiftBridgingHeader ", CategoryPrecompileBridgingHeader},
}

// Classify maps a raw signature string to a detail category. Matching is
// case-sensitive. Signatures that match no known prefix classify as
// CategoryOther; that is a valid outcome, not an error.
func Classify(signature string) DetailCategory {
	for _, rule := range signatureRules {
		if strings.HasPrefix(signature, rule.prefix) {
			return rule.category
		}
	}
	return CategoryOther
}
