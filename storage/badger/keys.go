package badger

import (
	"github.com/poiesic/overlap/core"
)

const vectorPrefix = "vec"

// makeVectorKey generates the cache key for a document vector.
// Format: vec:model:digesthex
func makeVectorKey(model string, digest core.Digest) []byte {
	hex := digest.String()
	buf := make([]byte, 0, len(vectorPrefix)+len(model)+len(hex)+2)
	buf = append(buf, vectorPrefix...)
	buf = append(buf, ':')
	buf = append(buf, model...)
	buf = append(buf, ':')
	buf = append(buf, hex...)
	return buf
}

// makeModelPrefixes generates the key prefixes shared by every vector of
// model: the bare namespace and any "model@chunking" namespaces.
func makeModelPrefixes(model string) [][]byte {
	return [][]byte{
		[]byte(vectorPrefix + ":" + model + ":"),
		[]byte(vectorPrefix + ":" + model + "@"),
	}
}
