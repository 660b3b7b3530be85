// Package units holds the unit conversion constants shared by the
// calculators and their HTTP handlers. Everything downstream works in
// millimeters and meters per minute; imperial values are converted at
// the boundary.
package units

const (
	InchToMM = 25.4
	MMToInch = 1 / InchToMM
	ThouToMM = 0.0254
	MMToThou = 1 / ThouToMM
	SFMToSMM = 0.3048
	SMMToSFM = 1 / SFMToSMM
	HPToKW   = 0.745699872
	KWToHP   = 1 / HPToKW
)

func SFM(smm float64) float64 { return smm * SMMToSFM }

func SMM(sfm float64) float64 { return sfm * SFMToSMM }

func Inches(mm float64) float64 { return mm * MMToInch }

func MM(inches float64) float64 { return inches * InchToMM }

// Thou converts millimeters to thousandths of an inch, the unit most
// chip load tables are published in.
func Thou(mm float64) float64 { return mm * MMToThou }
