package config

// ManifestFile represents the structure of a task manifest YAML file.
type ManifestFile struct {
	Parent  string    `yaml:"parent"`
	Counter int64     `yaml:"counter"`
	Tasks   []TaskDTO `yaml:"tasks"`
}

// TaskDTO represents a task definition in the manifest.
type TaskDTO struct {
	Name     string   `yaml:"name"`
	Function string   `yaml:"function"`
	Returns  int64    `yaml:"returns"`
	Args     []ArgDTO `yaml:"args"`
}

// ArgDTO represents one argument. Exactly one field must be set.
type ArgDTO struct {
	Value  *string `yaml:"value"`
	Hex    *string `yaml:"hex"`
	Object *string `yaml:"object"`
	Ref    *string `yaml:"ref"`
}
