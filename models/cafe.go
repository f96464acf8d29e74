package models

// ListingLink is the URL of an individual cafe page. The position of a link in
// the collected sequence is its identity: the record built from links[i] gets
// ID i+1.
type ListingLink = string

// Service flag markers written to the output when a cafe advertises the service.
const (
	WifiMarker           = "Free Wi-Fi"
	LaptopFriendlyMarker = "Laptop Friendly"
	PetFriendlyMarker    = "Pet Friendly"
)

// CafeRecord is one row of the output table. Empty strings and nil
// coordinates mean the field could not be extracted.
type CafeRecord struct {
	ID             int
	Name           string
	Link           string
	City           string
	Street         string
	Opening        string
	Postcode       string
	URLLocation    string
	Wifi           string
	LaptopFriendly string
	PetFriendly    string
	Latitude       *float64
	Longitude      *float64
}

// HasCoordinates reports whether geocoding produced a position.
func (r *CafeRecord) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// RunSummary counts what happened during one extraction run.
type RunSummary struct {
	StartIndex int
	EndIndex   int
	TotalLinks int
	Written    int
	Skipped    int
}

// Report holds statistics computed over the output table.
type Report struct {
	TotalCafes     int
	WithName       int
	WithOpening    int
	Wifi           int
	LaptopFriendly int
	PetFriendly    int
	Geocoded       int
	CafesByCity    map[string]int
}
