package chunker

import "errors"

var ErrInvalidChunking = errors.New("chunk overlap must be non-negative and smaller than chunk size")

// Split cuts text into overlapping windows of size runes, each window starting
// size-overlap runes after the previous one. The final chunk may be shorter.
// Emission stops as soon as a chunk reaches the end of the text, so the chunks
// cover the input exactly once with no degenerate tail.
//
// Configuration is validated before any chunk is produced.
func Split(text string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrInvalidChunking
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks, nil
}
