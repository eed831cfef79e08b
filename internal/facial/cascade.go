package facial

import (
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Fixed detection configuration. Every caller gets identical geometric
// semantics; there is no per-call tuning.
const (
	cascadeScaleFactor  = 1.3
	cascadeMinNeighbors = 5
)

// CascadeDetector locates frontal faces with an OpenCV Haar cascade.
type CascadeDetector struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
}

// NewCascadeDetector loads the cascade definition from cascadePath
// (haarcascade_frontalface_default.xml).
func NewCascadeDetector(cascadePath string) (*CascadeDetector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		_ = classifier.Close()
		return nil, fmt.Errorf("load face cascade from %s", cascadePath)
	}
	return &CascadeDetector{classifier: classifier}, nil
}

func (d *CascadeDetector) Detect(img image.Image) ([]image.Rectangle, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image to mat: %w", err)
	}
	defer func() { _ = mat.Close() }()

	gray := gocv.NewMat()
	defer func() { _ = gray.Close() }()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBToGray)

	// The classifier is not safe for concurrent use.
	d.mu.Lock()
	rects := d.classifier.DetectMultiScaleWithParams(
		gray, cascadeScaleFactor, cascadeMinNeighbors, 0,
		image.Pt(0, 0), image.Pt(0, 0),
	)
	d.mu.Unlock()

	return rects, nil
}

// Close releases the underlying classifier.
func (d *CascadeDetector) Close() error {
	return d.classifier.Close()
}
