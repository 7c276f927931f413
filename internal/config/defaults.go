package config

// Default configuration values.
const (
	DefaultStateFile  = ".leapnodes/state.db"
	DefaultTargetType = "duckdb"
	DefaultDatabase   = ":memory:"
)

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *ProjectConfig) {
	if c == nil {
		return
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStateFile
	}
	if c.Target == nil {
		c.Target = &TargetConfig{Type: DefaultTargetType}
	}
	ApplyTargetDefaults(c.Target)
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}

	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	switch t.Type {
	case "duckdb":
		if t.Database == "" {
			t.Database = DefaultDatabase
		}
	case "postgres":
		if t.Port == 0 {
			t.Port = 5432
		}
	}
}

// DefaultSchemaForType returns the default schema for a database type.
func DefaultSchemaForType(dbType string) string {
	if dbType == "postgres" {
		return "public"
	}
	return "main"
}
