package landsat

// Band identifies a Landsat 8/9 OLI spectral band by its conventional name.
type Band string

const (
	Blue  Band = "B2"
	Green Band = "B3"
	Red   Band = "B4"
	NIR   Band = "B5"
	SWIR1 Band = "B6"
	SWIR2 Band = "B7"
)

// AllBands lists every band the processor knows how to locate, in
// wavelength order.
var AllBands = []Band{Blue, Green, Red, NIR, SWIR1, SWIR2}
