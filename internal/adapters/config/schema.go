package config

// BuildFile represents the structure of the build.yaml configuration file.
type BuildFile struct {
	Include []TargetDTO `yaml:"include"`
}

// TargetDTO represents one entry of the include list.
type TargetDTO struct {
	Board     string `yaml:"board"`
	Shield    string `yaml:"shield"`
	Snippet   string `yaml:"snippet"`
	CMakeArgs string `yaml:"cmake-args"`
}
