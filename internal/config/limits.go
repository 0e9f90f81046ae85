package config

// Name length limits shared by validation rules
const (
	MaxFolderNameLength = 255
	MaxAssetNameLength  = 255
)
