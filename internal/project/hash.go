package project

import (
	"crypto/sha256"
	"os"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит модульный хеш: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным: они хешируются в переданном порядке.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// HashFile returns the content digest of the file at path, used to key the
// driver's disk cache so an unchanged fixture skips re-translation.
func HashFile(path string) (Digest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Digest{}, err
	}
	var out Digest
	sum := sha256.Sum256(data)
	copy(out[:], sum[:])
	return out, nil
}
