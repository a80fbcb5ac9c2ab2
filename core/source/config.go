package source

import "time"

// Locations a source document can be read from.
const (
	LocationFile    = "file"
	LocationStorage = "storage"
)

// Config holds configuration for the input collections.
type Config struct {
	// Location selects where the documents live: "file" or "storage".
	Location string `mapstructure:"location" default:"file" validate:"oneof=file storage"`
	// PrimaryPath is the file path or object name of the primary collection.
	PrimaryPath string `mapstructure:"primary_path" default:"intakes.json" validate:"required"`
	// PrimaryMapping is the preset used to decode the primary collection.
	PrimaryMapping string `mapstructure:"primary_mapping" default:"intakeq-intakes" validate:"required"`
	// SecondaryPath is the file path or object name of the secondary collection.
	SecondaryPath string `mapstructure:"secondary_path" default:"appointments.json" validate:"required"`
	// SecondaryMapping is the preset used to decode the secondary collection.
	SecondaryMapping string `mapstructure:"secondary_mapping" default:"intakeq-appointments" validate:"required"`
	// CacheTTL is how long a loaded snapshot is reused. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"5m"`
}
