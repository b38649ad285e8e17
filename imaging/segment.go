package imaging

// backgroundSigma is the blur, in pixels, used to estimate uneven illumination.
const backgroundSigma = 50

// PhaseSegment segments cells in a phase contrast image, where cells are
// darker than the background. The normalized image is flattened by
// subtracting a wide blur, thresholded below thresh, and objects whose area
// (in square microns, ipDist being the microns per pixel) falls outside
// areaBounds or which touch the border are removed.
func PhaseSegment(img *Gray, thresh float64, areaBounds [2]float64, ipDist float64) (*Labels, error) {
	if img.W == 0 || img.H == 0 {
		return nil, ErrEmptyImage
	}
	norm := Normalize(img)
	flat, err := Sub(norm, GaussianBlur(norm, backgroundSigma))
	if err != nil {
		return nil, err
	}
	pxArea := ipDist * ipDist
	labels := FilterArea(Label(Below(flat, thresh)), areaBounds[0]/pxArea, areaBounds[1]/pxArea)
	return ClearBorder(labels), nil
}

// ExtractIntensities returns the mean fluorescence of each object, indexed by label-1.
func ExtractIntensities(l *Labels, fluo *Gray) ([]float64, error) {
	regions, err := Regions(l, fluo)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(regions))
	for i, r := range regions {
		out[i] = r.MeanIntensity
	}
	return out, nil
}
