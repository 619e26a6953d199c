package config

// defaultMaxDepth bounds recursion when no depth is configured anywhere.
const defaultMaxDepth = 32

// defaultTokenModel selects the tokenizer when token counting is enabled
// without an explicit model.
const defaultTokenModel = "gpt-4o"

// RenderConfig is the fully resolved per-invocation configuration. It is
// constructed once, before any traversal, and read-only thereafter.
type RenderConfig struct {
	MaxDepth        int
	Extensions      []string
	ExcludePatterns []string
	ColorEnabled    bool
	UseGitignore    bool
	UseIgnoreFile   bool
	StructureOnly   bool
	ContentsOnly    bool
	CopyToClipboard bool
	TokensEnabled   bool
	TokenModel      string
	Colors          map[string]string
	Symbols         map[string]string
}

// DefaultConfiguration returns the hard-coded base layer of the configuration
// stack. File layers and CLI flags are merged on top of it in order.
func DefaultConfiguration() ApplicationConfiguration {
	depth := defaultMaxDepth
	useGitignore := true
	useIgnoreFile := true
	return ApplicationConfiguration{
		Depth:         &depth,
		UseGitignore:  &useGitignore,
		UseIgnoreFile: &useIgnoreFile,
		Tokens:        TokenConfiguration{Model: defaultTokenModel},
	}
}

// ResolveRenderConfig materializes the merged configuration layers into the
// final RenderConfig. autoColorEnabled supplies the TTY-derived default used
// when no layer set the color toggle explicitly. A negative configured depth
// is clamped to zero.
func ResolveRenderConfig(merged ApplicationConfiguration, autoColorEnabled bool) RenderConfig {
	resolved := RenderConfig{
		MaxDepth:        defaultMaxDepth,
		Extensions:      merged.Extensions,
		ExcludePatterns: merged.Exclude,
		ColorEnabled:    autoColorEnabled,
		UseGitignore:    boolOrDefault(merged.UseGitignore, true),
		UseIgnoreFile:   boolOrDefault(merged.UseIgnoreFile, true),
		StructureOnly:   boolOrDefault(merged.StructureOnly, false),
		ContentsOnly:    boolOrDefault(merged.ContentsOnly, false),
		CopyToClipboard: boolOrDefault(merged.Clipboard, false),
		TokensEnabled:   boolOrDefault(merged.Tokens.Enabled, false),
		TokenModel:      merged.Tokens.Model,
		Colors:          merged.Colors,
		Symbols:         merged.Symbols,
	}
	if merged.Depth != nil {
		resolved.MaxDepth = *merged.Depth
	}
	if resolved.MaxDepth < 0 {
		resolved.MaxDepth = 0
	}
	if merged.Color != nil {
		resolved.ColorEnabled = *merged.Color
	}
	if resolved.TokenModel == "" {
		resolved.TokenModel = defaultTokenModel
	}
	return resolved
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
