package pipeline

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// randomTextAlphabet is the symbol set RandomizeText draws fresh
// replacement segments from.
const randomTextAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randAlnum returns a fresh n-character string drawn uniformly from
// [A-Za-z0-9]. Entropy comes from crypto/rand via math/big, the same
// source dicom/uid.Generate uses, rather than math/rand: a 62-symbol
// alphabet doesn't divide a byte evenly, so big.Int rejection sampling
// keeps every symbol equally likely.
func randAlnum(n int) (string, error) {
	out := make([]byte, n)
	alphabetSize := big.NewInt(int64(len(randomTextAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("pipeline: random text generation failed: %w", err)
		}
		out[i] = randomTextAlphabet[idx.Int64()]
	}
	return string(out), nil
}

// randShift draws a uniform integer in [-bound, bound]. bound <= 0
// always yields 0 (no shift), so a ShiftBy of 0 in config is a no-op
// rather than a crash.
func randShift(bound int) (int, error) {
	if bound <= 0 {
		return 0, nil
	}
	span := big.NewInt(int64(2*bound + 1))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("pipeline: random shift generation failed: %w", err)
	}
	return int(n.Int64()) - bound, nil
}
