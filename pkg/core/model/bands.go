package model

import "slices"

// Bands lists the amateur bands a shift can be scheduled on, in display order
var Bands = []string{"160", "80", "60", "40", "30", "20", "17", "15", "12", "10", "6", "2", "satellite"}

// Modes lists the operating modes a shift can be scheduled in
var Modes = []string{"phone", "cw", "digital"}

func ValidBand(band string) bool {
	return slices.Contains(Bands, band)
}

func ValidMode(mode string) bool {
	return slices.Contains(Modes, mode)
}
