package mdtree

import "github.com/goliatone/go-mdtree/internal/runtimeconfig"

var (
	ErrStorageDriverRequired  = runtimeconfig.ErrStorageDriverRequired
	ErrStorageDriverUnknown   = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired     = runtimeconfig.ErrStorageDSNRequired
	ErrRenderRequiresFeature  = runtimeconfig.ErrRenderRequiresFeature
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	MarkdownConfig = runtimeconfig.MarkdownConfig
	RenderConfig   = runtimeconfig.RenderConfig
	StorageConfig  = runtimeconfig.StorageConfig
	OutputConfig   = runtimeconfig.OutputConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
