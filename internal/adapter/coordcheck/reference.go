package coordcheck

// refPoint is a named reference coordinate.
type refPoint struct {
	name string
	lat  float64
	lon  float64
}

// capitals lists the southern-hemisphere capitals that show up as provider
// defaults in Antarctic occurrence data. Records are bounded well south before
// validation, so only the high-latitude entries normally matter; the rest stay
// for completeness.
var capitals = []refPoint{
	{name: "Canberra", lat: -35.28, lon: 149.13},
	{name: "Wellington", lat: -41.29, lon: 174.78},
	{name: "Buenos Aires", lat: -34.60, lon: -58.38},
	{name: "Santiago", lat: -33.45, lon: -70.67},
	{name: "Montevideo", lat: -34.90, lon: -56.19},
	{name: "Pretoria", lat: -25.75, lon: 28.19},
	{name: "Stanley", lat: -51.69, lon: -57.86},
	{name: "Port-aux-Français", lat: -49.35, lon: 70.22},
	{name: "Ushuaia", lat: -54.80, lon: -68.30},
	{name: "Hobart", lat: -42.88, lon: 147.33},
}

// centroids lists country and territory centroids for the Southern Ocean
// region, another common placeholder for unknown positions.
var centroids = []refPoint{
	{name: "Antarctica", lat: -80.45, lon: 21.51},
	{name: "Falkland Islands", lat: -51.79, lon: -59.52},
	{name: "South Georgia and the South Sandwich Islands", lat: -54.43, lon: -36.59},
	{name: "Heard Island and McDonald Islands", lat: -53.08, lon: 73.52},
	{name: "French Southern Territories", lat: -49.25, lon: 69.62},
	{name: "Bouvet Island", lat: -54.42, lon: 3.36},
}
