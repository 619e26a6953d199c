package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/vkuzmin/dirscribe/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the persisted configuration of one layer.
// Optional scalars are pointer-typed so an absent value never overrides a
// lower layer during merging.
type ApplicationConfiguration struct {
	Depth         *int               `mapstructure:"depth"`
	Extensions    []string           `mapstructure:"extensions"`
	Exclude       []string           `mapstructure:"exclude"`
	Color         *bool              `mapstructure:"color"`
	UseGitignore  *bool              `mapstructure:"use_gitignore"`
	UseIgnoreFile *bool              `mapstructure:"use_ignore"`
	StructureOnly *bool              `mapstructure:"structure_only"`
	ContentsOnly  *bool              `mapstructure:"contents_only"`
	Clipboard     *bool              `mapstructure:"clipboard"`
	Tokens        TokenConfiguration `mapstructure:"tokens"`
	Colors        map[string]string  `mapstructure:"colors"`
	Symbols       map[string]string  `mapstructure:"symbols"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads and merges configuration from the global
// file ($HOME/.dirscribe/config.yaml) and the local file (.dirscribe.yaml in
// the working directory, or an explicitly provided path). Local values
// override global ones field by field; nested maps merge key-by-key.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadError := loadConfigurationFromPath(globalPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if localPath != "" {
		localConfig, loadError := loadConfigurationFromPath(localPath)
		if loadError != nil {
			return ApplicationConfiguration{}, loadError
		}
		merged = merged.Merge(localConfig)
	}

	merged.Exclude = utils.DeduplicatePatterns(merged.Exclude)
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory string, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	pathInfo, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if pathInfo.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined
// configuration. Scalar fields replace only when the override sets them; the
// Colors and Symbols maps merge key-by-key rather than being replaced
// wholesale.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.Depth != nil {
		result.Depth = cloneInt(override.Depth)
	}
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string{}, override.Extensions...)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.Color != nil {
		result.Color = cloneBool(override.Color)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.StructureOnly != nil {
		result.StructureOnly = cloneBool(override.StructureOnly)
	}
	if override.ContentsOnly != nil {
		result.ContentsOnly = cloneBool(override.ContentsOnly)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	result.Colors = mergeStringMap(result.Colors, override.Colors)
	result.Symbols = mergeStringMap(result.Symbols, override.Symbols)
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

// mergeStringMap merges override into base key-by-key; empty override values
// keep the base entry.
func mergeStringMap(base map[string]string, override map[string]string) map[string]string {
	if len(override) == 0 {
		return base
	}
	merged := make(map[string]string, len(base)+len(override))
	for baseKey, baseValue := range base {
		merged[baseKey] = baseValue
	}
	for overrideKey, overrideValue := range override {
		if overrideValue != "" {
			merged[overrideKey] = overrideValue
		}
	}
	return merged
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
