package models

type Config struct {
	FancyScreen bool           `json:"fancy_screen" env:"FANCY_SCREEN"`
	Database    DatabaseConfig `json:"database" envPrefix:"DB_"`
	HTTP        HTTPConfig     `json:"http" envPrefix:"HTTP_"`
	Misc        MiscConfig     `json:"misc" envPrefix:"MISC_"`
}

type DatabaseConfig struct {
	DBType           string `json:"db_type" env:"TYPE" validate:"required,oneof=sqlite postgres mysql"`
	ConnectionString string `json:"connection_string" env:"CONNECTION_STRING" validate:"required"`
}

type HTTPConfig struct {
	Port          int    `json:"port" env:"PORT" validate:"required,min=1,max=65535"`
	ListeningAddr string `json:"listening_addr" env:"LISTENING_ADDR" validate:"required"`
	// WriteLimit is the amount of write requests a single IP may issue per minute.
	WriteLimit int `json:"write_limit" env:"WRITE_LIMIT" validate:"min=0"`
}

type MiscConfig struct {
	// SeedCatalog is a file path or http(s) URL to a JSON array of catalog entries, imported
	// when the catalog is empty.
	SeedCatalog string `json:"seed_catalog" env:"SEED_CATALOG"`
	SeedBatch   int    `json:"seed_batch" env:"SEED_BATCH" validate:"min=0"`
}
