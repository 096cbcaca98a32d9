package models

type Flags struct {
	Mode    string `short:"m" long:"mode" env:"MODE" required:"true" description:"The mode Local Team Builder is running in: cli/docker" default:"cli"`
	Builder bool   `short:"b" long:"builder" env:"BUILDER" description:"Run the interactive team builder instead of the HTTP server"`
	Remote  string `short:"r" long:"remote" env:"REMOTE" description:"Base URL of a Local Team Builder server the team builder should use instead of the local database"`
	Seed    string `short:"s" long:"seed" env:"SEED" description:"File path or URL of a JSON catalog to import when the catalog is empty"`
}
