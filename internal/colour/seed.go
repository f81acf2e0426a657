package colour

import (
	"crypto/sha256"
	"encoding/binary"
	"image"
)

// ContentSeed derives a k-means seed from image content so the same picture
// always clusters the same way, regardless of its filename or location.
func ContentSeed(img image.Image) int64 {
	bounds := img.Bounds()
	hasher := sha256.New()

	dimBytes := make([]byte, 8)
	binary.LittleEndian.PutUint32(dimBytes[0:4], uint32(bounds.Dx()))
	binary.LittleEndian.PutUint32(dimBytes[4:8], uint32(bounds.Dy()))
	hasher.Write(dimBytes)

	// A 100x100 grid of samples is enough to tell images apart.
	step := max(bounds.Dx()/100, bounds.Dy()/100, 1)
	pixelBytes := make([]byte, 4)

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			r, g, b, a := img.At(x, y).RGBA()
			pixelBytes[0] = byte(r >> 8)
			pixelBytes[1] = byte(g >> 8)
			pixelBytes[2] = byte(b >> 8)
			pixelBytes[3] = byte(a >> 8)
			hasher.Write(pixelBytes)
		}
	}

	hash := hasher.Sum(nil)
	return int64(binary.LittleEndian.Uint64(hash[:8]))
}
