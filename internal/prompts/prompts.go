// Package prompts holds the extraction instructions sent to the
// inference provider. Embedded .tmpl files are the source of truth.
package prompts

import _ "embed"

//go:embed image.tmpl
var imageAnalysis string

//go:embed text.tmpl
var textExtraction string

// ImageAnalysis returns the instruction for reading a blood pressure
// monitor photo into the image-derived field set.
func ImageAnalysis() string {
	return imageAnalysis
}

// TextExtraction returns the instruction for pulling health readings
// out of a free-form text message into the text-derived field set.
func TextExtraction() string {
	return textExtraction
}
