package buildstep

import "testing"

func TestClassify_KnownSignatures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		signature string
		want      DetailCategory
	}{
		{"CompileC main.o main.m normal arm64 objective-c", CategoryCCompilation},
		{"CompileSwift normal arm64 App.swift", CategorySwiftCompilation},
		{"Ld build/App normal arm64", CategoryLinker},
		{"PhaseScriptExecution [CP]\\ Check\\ Pods", CategoryScriptExecution},
		{"Libtool libPods.a normal arm64", CategoryCreateStaticLibrary},
		{"CopySwiftLibs App.app", CategoryCopySwiftLibs},
		{"CompileAssetCatalog App/Assets.xcassets", CategoryCompileAssetsCatalog},
		{"CompileStoryboard App/Main.storyboard", CategoryCompileStoryboard},
		{"WriteAuxiliaryFile App.hmap", CategoryWriteAuxiliaryFile},
		{"LinkStoryboards", CategoryOther}, // no trailing space, no arguments
		{"LinkStoryboards ", CategoryLinkStoryboards},
		{"CpResource App/logo.png", CategoryCopyResourceFile},
		{"MergeSwiftModule normal arm64 App.swiftmodule", CategoryMergeSwiftModule},
		{"CompileXIB App/View.xib", CategoryXIBCompilation},
		{"CompileSwiftSources normal arm64 com.apple.xcode.tools.swift.compiler", CategorySwiftAggregatedCompilation},
		{"PrecompileSwiftBridgingHeader normal arm64", CategoryPrecompileBridgingHeader},
	}

	for _, tc := range cases {
		if got := Classify(tc.signature); got != tc.want {
			t.Errorf("Classify(%q) = %q, want %q", tc.signature, got, tc.want)
		}
	}
}

func TestClassify_UnknownSignatureIsOther(t *testing.T) {
	t.Parallel()

	for _, signature := range []string{
		"",
		"ProcessInfoPlistFile App.app/Info.plist",
		"CodeSign App.app",
		"compilec lowercase is not a match",
	} {
		if got := Classify(signature); got != CategoryOther {
			t.Errorf("Classify(%q) = %q, want %q", signature, got, CategoryOther)
		}
	}
}

// Prefixes are space-terminated, so a longer tool name must not be shadowed
// by a shorter prefix it happens to start with.
func TestClassify_SpaceSensitivePrefixes(t *testing.T) {
	t.Parallel()

	if got := Classify("CompileSwiftSources normal arm64"); got != CategorySwiftAggregatedCompilation {
		t.Errorf("CompileSwiftSources classified as %q, want %q", got, CategorySwiftAggregatedCompilation)
	}
	if got := Classify("CompileCoreData Model.xcdatamodeld"); got != CategoryOther {
		t.Errorf("CompileCoreData classified as %q, want %q", got, CategoryOther)
	}
}
