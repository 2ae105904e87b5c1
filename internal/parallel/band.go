// Package parallel provides the row-band infrastructure behind the renderer.
//
// A frame is split into horizontal bands, one per worker. Each band is
// rendered into its own RGBA buffer, so workers never share memory while
// computing; the buffers are then copied into the frame at their starting
// row. The package supplies:
//
//   - Partition, which plans bands that exactly cover the frame
//   - WorkerPool, a persistent goroutine pool with per-worker queues
//   - BufferPool, reuse of band buffers across frames via sync.Pool
//   - BandSet, a lock-free record of which bands have been composited
package parallel

// BytesPerPixel is the size of one RGBA pixel.
const BytesPerPixel = 4

// Band is a contiguous run of frame rows [Start, End) rendered as one unit.
//
// Rows are in frame space. A band may be empty (Start == End) when a frame
// has fewer rows than the plan has bands to spare.
type Band struct {
	// Index is the band's position in its plan (0-based).
	Index int

	// Start is the first row of the band.
	Start int

	// End is one past the last row of the band.
	End int

	// Width is the frame width in pixels.
	Width int
}

// Rows returns the number of rows in the band.
func (b Band) Rows() int {
	return b.End - b.Start
}

// Empty reports whether the band has no rows.
func (b Band) Empty() bool {
	return b.End <= b.Start
}

// Stride returns the row stride in bytes.
func (b Band) Stride() int {
	return b.Width * BytesPerPixel
}

// ByteSize returns the size of the band's pixel buffer.
func (b Band) ByteSize() int {
	return b.Rows() * b.Stride()
}

// FrameOffset returns the byte offset of the band's first pixel inside a
// full frame buffer of the same width.
func (b Band) FrameOffset() int {
	return b.Start * b.Stride()
}
