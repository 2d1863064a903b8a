package config

// Exported internals for white-box testing.
var (
	GetEnvAsBool = getEnvAsBool
	GetEnvAsInt  = getEnvAsInt
	AllNonEmpty  = allNonEmpty
	AllNumbers   = allNumbers
)
