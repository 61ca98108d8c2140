package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainGraph is the domain prefix for graph content hashes. The version
// suffix leaves room for a future dump-format migration.
const DomainGraph = "onnc/graph/v1"

// GraphHash computes a content-addressed identity for a graph: the SHA-256
// of its canonical dump with domain separation. Structurally equal graphs
// hash identically across processes and platforms.
func GraphHash(g *Graph) (string, error) {
	data, err := Dump(g)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write([]byte(DomainGraph))
	h.Write([]byte{0x00}) // null separator keeps the domain/data boundary unambiguous
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
