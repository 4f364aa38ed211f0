package geonoise

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/KanuToCL/geonoise/internal/scene"
)

// configDigest returns a short, stable hash of the effective
// propagation config so a caller can detect that two requests it
// believed comparable actually resolved to different configs
// (SUPPLEMENTED FEATURES "Config echo"). Not cryptographic; collisions
// are acceptable since this is a caller convenience, not a security
// boundary, so there is no third-party hashing library to reach for
// here (see DESIGN.md).
func configDigest(cfg scene.PropagationConfig) string {
	b, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:12]
}
