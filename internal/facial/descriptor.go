package facial

import (
	"image"
	"os"

	"github.com/disintegration/imaging"

	"github.com/campuskit/rollcall/internal/domain"
)

// DefaultDescriptorSize is the canonical face-crop resolution. Descriptors are
// only comparable when produced with the same size and the same extraction
// procedure.
const DefaultDescriptorSize = 100

// Descriptor is a face crop flattened into grayscale intensities in [0,1],
// row-major, length size*size. Descriptors are recomputed from their source
// image on every use and never persisted.
type Descriptor []float64

// Extractor produces descriptors from images using a Detector to locate the
// face region.
type Extractor struct {
	detector Detector
	size     int
}

func NewExtractor(detector Detector, size int) *Extractor {
	if size <= 0 {
		size = DefaultDescriptorSize
	}
	return &Extractor{detector: detector, size: size}
}

// ExtractReference extracts the descriptor from a stored reference image,
// where exactly one face is expected: zero faces is ErrNoFaceDetected and
// more than one is ErrMultipleFaces.
func (e *Extractor) ExtractReference(img image.Image) (Descriptor, error) {
	boxes, err := e.detector.Detect(img)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	if len(boxes) == 0 {
		return nil, domain.ErrNoFaceDetected
	}
	if len(boxes) > 1 {
		return nil, domain.ErrMultipleFaces
	}
	return e.descriptor(img, boxes[0]), nil
}

// ExtractProbe extracts the descriptor from a live capture frame. Multi-face
// frames are not rejected: the largest box is assumed to be the subject.
func (e *Extractor) ExtractProbe(img image.Image) (Descriptor, error) {
	boxes, err := e.detector.Detect(img)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	box, ok := LargestBox(boxes)
	if !ok {
		return nil, domain.ErrNoFaceDetected
	}
	return e.descriptor(img, box), nil
}

// ExtractReferenceFile loads a stored reference image from disk and extracts
// its descriptor. An unreadable or undecodable file is ErrInvalidImage,
// distinct from the no-face outcome.
func (e *Extractor) ExtractReferenceFile(path string) (Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, domain.ErrInvalidImage.WithError(err)
	}
	return e.ExtractReference(img)
}

// descriptor crops the box, converts to grayscale, resizes to the canonical
// resolution with linear interpolation and flattens to [0,1] intensities.
func (e *Extractor) descriptor(img image.Image, box image.Rectangle) Descriptor {
	face := imaging.Crop(img, box)
	face = imaging.Grayscale(face)
	face = imaging.Resize(face, e.size, e.size, imaging.Linear)

	out := make(Descriptor, 0, e.size*e.size)
	for y := 0; y < e.size; y++ {
		for x := 0; x < e.size; x++ {
			// Grayscale NRGBA has R == G == B.
			i := face.PixOffset(x, y)
			out = append(out, float64(face.Pix[i])/255.0)
		}
	}
	return out
}
