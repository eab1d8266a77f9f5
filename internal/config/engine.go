package config

// EngineConfig configures the inference engine.
type EngineConfig struct {
	DerivedFactLimit int `yaml:"derived_fact_limit"` // Max derived facts per chain run
}

// DefaultDerivedFactLimit bounds derived facts per saturation run.
const DefaultDerivedFactLimit = 100000
