package memory

import "math/rand"

const (
	idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idChunkLen = 13
)

// newID concatenates two independently drawn base36 chunks, 26 characters
// in total. Ids are opaque and not meant to be unguessable.
func newID() string {
	return randomChunk(idChunkLen) + randomChunk(idChunkLen)
}

func randomChunk(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(buf)
}
