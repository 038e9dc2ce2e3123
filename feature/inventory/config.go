package inventory

// Config holds the extract source locations and parser settings.
type Config struct {
	// UnitsDir is the folder holding the per-unit export CSVs.
	UnitsDir string `mapstructure:"units_dir" default:"Digigem"`

	// LedgerFile is the movement ledger workbook.
	LedgerFile string `mapstructure:"ledger_file" default:"NAV.xlsx"`

	// StockDir is the folder holding the warehouse stock extracts.
	StockDir string `mapstructure:"stock_dir" default:"SAP"`

	// DirectoryFile is the supplier directory CSV.
	DirectoryFile string `mapstructure:"directory_file" default:"anagrafica_fornitori.csv"`

	// StockHeaderMarker is the literal first field of a group-header line
	// in the stock extract.
	StockHeaderMarker string `mapstructure:"stock_header_marker" default:"IMSU"`

	// StockQuantityField is the zero-based field index of the available
	// quantity on a stock data line. Extract revisions differ (6 vs 7),
	// so this is configuration, never a guess.
	StockQuantityField int `mapstructure:"stock_quantity_field" default:"6"`

	// ProvinceMap overrides the default site-code to province mapping used
	// by the summary aggregation. Empty keeps the built-in map.
	ProvinceMap map[string]string `mapstructure:"province_map"`

	// CacheTTLSeconds is how long a pipeline result stays cached.
	// Zero disables the run cache.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"3600"`

	// UseBucket switches extract discovery from the local folders above to
	// the configured object-storage bucket, using the same paths as
	// object prefixes.
	UseBucket bool `mapstructure:"use_bucket" default:"false"`
}
