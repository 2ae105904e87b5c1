package parallel

// Partition splits a frame of the given width and height into exactly
// parts bands.
//
// Every band holds ceil(height/parts) rows except the last non-empty one,
// which is clipped to the frame. If parts exceeds what the rows can fill,
// the trailing bands are empty and sit at row height. Together the bands
// are contiguous, non-overlapping and cover [0, height).
//
// Returns nil if height or parts is not positive.
func Partition(width, height, parts int) []Band {
	if height <= 0 || parts <= 0 {
		return nil
	}

	rows := (height + parts - 1) / parts

	bands := make([]Band, parts)
	for i := range bands {
		start := min(i*rows, height)
		end := min(start+rows, height)
		bands[i] = Band{Index: i, Start: start, End: end, Width: width}
	}
	return bands
}
