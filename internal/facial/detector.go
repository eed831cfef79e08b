// Package facial implements the face-matching pipeline: locating faces in an
// image, turning a face crop into a fixed-length intensity descriptor, and
// scoring descriptor pairs with cosine similarity.
package facial

import (
	"image"
)

// Detector locates candidate face bounding boxes in an image. Zero results is
// a valid outcome, not an error; errors are reserved for the detector itself
// failing to run.
type Detector interface {
	Detect(img image.Image) ([]image.Rectangle, error)
}

// LargestBox returns the box with the greatest area. Ties keep the earlier
// box, matching the detector's output order. ok is false for an empty slice.
func LargestBox(boxes []image.Rectangle) (image.Rectangle, bool) {
	if len(boxes) == 0 {
		return image.Rectangle{}, false
	}
	best := boxes[0]
	bestArea := best.Dx() * best.Dy()
	for _, b := range boxes[1:] {
		if area := b.Dx() * b.Dy(); area > bestArea {
			best = b
			bestArea = area
		}
	}
	return best, true
}
