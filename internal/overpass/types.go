package overpass

// Element is a single tagged geometry record from the Overpass response.
// Only node elements carry lat/lon directly; ways and relations reference
// member geometry and are not of interest here.
type Element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// response mirrors the relevant parts of the Overpass API payload.
type response struct {
	Elements []Element `json:"elements"`
}
