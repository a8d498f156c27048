package catalog

// defaultMarkers is the CODIS-style core panel: 19 autosomal
// tetranucleotide loci plus amelogenin for sex typing. The baseline
// probabilities are coarse population-wide figures; load a catalog file
// for panel- or population-specific values.
var defaultMarkers = []Marker{
	{Name: "CSF1PO", Kind: KindNumeric, Motif: "AGAT", P: 0.1},
	{Name: "D1S1656", Kind: KindNumeric, Motif: "TAGA", P: 0.1},
	{Name: "D2S441", Kind: KindNumeric, Motif: "TCTA", P: 0.1},
	{Name: "D2S1338", Kind: KindNumeric, Motif: "TGCC", P: 0.1},
	{Name: "D3S1358", Kind: KindNumeric, Motif: "TCTA", P: 0.1},
	{Name: "D5S818", Kind: KindNumeric, Motif: "AGAT", P: 0.1},
	{Name: "D7S820", Kind: KindNumeric, Motif: "GATA", P: 0.1},
	{Name: "D8S1179", Kind: KindNumeric, Motif: "TCTA", P: 0.1},
	{Name: "D10S1248", Kind: KindNumeric, Motif: "GGAA", P: 0.1},
	{Name: "D12S391", Kind: KindNumeric, Motif: "AGAT", P: 0.1},
	{Name: "D13S317", Kind: KindNumeric, Motif: "TATC", P: 0.1},
	{Name: "D16S539", Kind: KindNumeric, Motif: "GATA", P: 0.1},
	{Name: "D18S51", Kind: KindNumeric, Motif: "AGAA", P: 0.1},
	{Name: "D19S433", Kind: KindNumeric, Motif: "AAGG", P: 0.1},
	{Name: "D21S11", Kind: KindNumeric, Motif: "TCTA", P: 0.1},
	{Name: "FGA", Kind: KindNumeric, Motif: "TTTC", P: 0.1},
	{Name: "TH01", Kind: KindNumeric, Motif: "AATG", P: 0.1},
	{Name: "TPOX", Kind: KindNumeric, Motif: "AATG", P: 0.1},
	{Name: "vWA", Kind: KindNumeric, Motif: "TCTA", P: 0.1},
	{Name: Amelogenin, Kind: KindCategorical, P: 0.5},
}

// basic3Markers is the compact training panel where each marker is named
// after its own motif.
var basic3Markers = []Marker{
	{Name: "AGATC", Kind: KindNumeric, Motif: "AGATC", P: 0.1},
	{Name: "AATG", Kind: KindNumeric, Motif: "AATG", P: 0.1},
	{Name: "TATC", Kind: KindNumeric, Motif: "TATC", P: 0.1},
}

// Default returns the built-in CODIS-style panel.
func Default() *Catalog {
	c, err := New(defaultMarkers...)
	if err != nil {
		panic(err)
	}
	return c
}

// Basic3 returns the compact three-locus panel used by the sequence
// counting tool.
func Basic3() *Catalog {
	c, err := New(basic3Markers...)
	if err != nil {
		panic(err)
	}
	return c
}
