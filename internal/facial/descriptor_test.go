package facial

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/rollcall/internal/domain"
)

// fakeDetector returns a fixed set of boxes regardless of input.
type fakeDetector struct {
	boxes []image.Rectangle
	err   error
}

func (f *fakeDetector) Detect(_ image.Image) ([]image.Rectangle, error) {
	return f.boxes, f.err
}

// gradientImage builds a frame where intensity depends on position, so crops
// of different regions produce different descriptors.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*7 + y*13) % 256)
			img.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestExtractReference_SingleFace(t *testing.T) {
	det := &fakeDetector{boxes: []image.Rectangle{image.Rect(5, 5, 45, 45)}}
	ex := NewExtractor(det, 100)

	desc, err := ex.ExtractReference(gradientImage(60, 60))
	require.NoError(t, err)
	assert.Len(t, desc, 100*100)

	for i, v := range desc {
		if v < 0 || v > 1 {
			t.Fatalf("descriptor[%d] = %v outside [0,1]", i, v)
		}
	}
}

func TestExtractReference_NoFace(t *testing.T) {
	ex := NewExtractor(&fakeDetector{}, 100)

	_, err := ex.ExtractReference(gradientImage(60, 60))
	assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
}

func TestExtractReference_MultipleFaces(t *testing.T) {
	det := &fakeDetector{boxes: []image.Rectangle{
		image.Rect(0, 0, 20, 20),
		image.Rect(30, 30, 50, 50),
	}}
	ex := NewExtractor(det, 100)

	_, err := ex.ExtractReference(gradientImage(60, 60))
	assert.ErrorIs(t, err, domain.ErrMultipleFaces)
}

func TestExtractProbe_NoFace(t *testing.T) {
	ex := NewExtractor(&fakeDetector{}, 100)

	_, err := ex.ExtractProbe(gradientImage(60, 60))
	assert.ErrorIs(t, err, domain.ErrNoFaceDetected)
}

func TestExtractProbe_LargestFaceWins(t *testing.T) {
	frame := gradientImage(80, 80)
	small := image.Rect(0, 0, 20, 20)
	large := image.Rect(25, 25, 75, 75)

	multi := NewExtractor(&fakeDetector{boxes: []image.Rectangle{small, large}}, 50)
	probe, err := multi.ExtractProbe(frame)
	require.NoError(t, err)

	largeOnly := NewExtractor(&fakeDetector{boxes: []image.Rectangle{large}}, 50)
	want, err := largeOnly.ExtractReference(frame)
	require.NoError(t, err)

	assert.Equal(t, want, probe, "probe extraction must use the largest box")
}

func TestExtract_Deterministic(t *testing.T) {
	det := &fakeDetector{boxes: []image.Rectangle{image.Rect(10, 10, 70, 70)}}
	ex := NewExtractor(det, 100)
	frame := gradientImage(80, 80)

	first, err := ex.ExtractReference(frame)
	require.NoError(t, err)
	second, err := ex.ExtractReference(frame)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same image and box must yield bit-identical descriptors")
}

func TestExtract_SelfSimilarity(t *testing.T) {
	det := &fakeDetector{boxes: []image.Rectangle{image.Rect(10, 10, 70, 70)}}
	ex := NewExtractor(det, 100)

	desc, err := ex.ExtractProbe(gradientImage(80, 80))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, CosineSimilarity(desc, desc), 1e-9)
}

func TestExtractReferenceFile(t *testing.T) {
	dir := t.TempDir()
	det := &fakeDetector{boxes: []image.Rectangle{image.Rect(5, 5, 45, 45)}}
	ex := NewExtractor(det, 100)

	t.Run("valid png file", func(t *testing.T) {
		path := filepath.Join(dir, "student_S001.png")
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, gradientImage(60, 60)))
		require.NoError(t, f.Close())

		desc, err := ex.ExtractReferenceFile(path)
		require.NoError(t, err)
		assert.Len(t, desc, 100*100)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ex.ExtractReferenceFile(filepath.Join(dir, "absent.png"))
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
	})

	t.Run("corrupt file", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.png")
		require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

		_, err := ex.ExtractReferenceFile(path)
		assert.ErrorIs(t, err, domain.ErrInvalidImage)
	})
}

func TestExtract_DetectorFailure(t *testing.T) {
	det := &fakeDetector{err: errors.New("cascade unavailable")}
	ex := NewExtractor(det, 100)

	_, err := ex.ExtractProbe(gradientImage(60, 60))
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestLargestBox(t *testing.T) {
	tests := []struct {
		name  string
		boxes []image.Rectangle
		want  image.Rectangle
		ok    bool
	}{
		{
			name: "empty",
			ok:   false,
		},
		{
			name:  "single",
			boxes: []image.Rectangle{image.Rect(0, 0, 10, 10)},
			want:  image.Rect(0, 0, 10, 10),
			ok:    true,
		},
		{
			name: "largest of several",
			boxes: []image.Rectangle{
				image.Rect(0, 0, 10, 10),
				image.Rect(0, 0, 30, 30),
				image.Rect(0, 0, 20, 20),
			},
			want: image.Rect(0, 0, 30, 30),
			ok:   true,
		},
		{
			name: "tie keeps first",
			boxes: []image.Rectangle{
				image.Rect(0, 0, 10, 10),
				image.Rect(5, 5, 15, 15),
			},
			want: image.Rect(0, 0, 10, 10),
			ok:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LargestBox(tt.boxes)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
