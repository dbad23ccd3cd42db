package level

import (
	"encoding/hex"

	"github.com/logical-mechanism/peace/crypto/core/curves"
)

// The four fixed G2 points of the Wang-Cao scheme, derived once from the
// protocol seed by a hash-to-group ceremony. They are process-wide, decoded
// at startup and never mutated. Changing any of them is a hard fork.
const (
	h0Hex = "a5acbe8bdb762cf7b4bfa9171b9ffa23b6ed710b290280b271a0258e285354aac338bb9e5a9ee41b4454e4c410f40eea16c82b493986bfc754aa789e1408b2b526f8b92e9ddcd4eee1a6c4daa84d561a6ceb452afc4559fe81a1c7f3f26715db"
	h1Hex = "a1dcce801cd2950dcad45faa854382bbe39f5f84d1855ed4ad2d5d2a8e94b67b2d126fbafbcd1a4f15b82f793f5c8cc80d5638f2260b3e3d0c3bcf1b45f7cc0f72f5a8d7a6d6e6615f7d72ab7e70dcbb56d1fefdb72c65f7bc5f073373cc99a7"
	h2Hex = "a8a54abec2b6379d1aa238de61a783f704255e14cd02c8385e9bb2e648e33ea9fc271a62ff5669defdc59cfee7414102180a831c7be88ea85bc81e0ec3a929bf63766ede414ee0aac2b66a3e7e20c631453aa11aa20eb7945349e4df933dc7dd"
	h3Hex = "872fd1490d93c0895b3dd1cef1874eca2457b1615e0a5a9cee4ddf14da09a0d51987ce3806d2e87f33139b261ee26ce00e71c41a7c75c158896db6a477e8b4b10b40bda60f8a0a7e0aa7e2a3b3652c9000508a15a24c9f5b3c4cfb84ef72c9a6"
)

var h0, h1, h2, h3 *curves.G2Point

func init() {
	h0 = mustG2(h0Hex)
	h1 = mustG2(h1Hex)
	h2 = mustG2(h2Hex)
	h3 = mustG2(h3Hex)
}

func mustG2(h string) *curves.G2Point {
	raw, err := hex.DecodeString(h)
	if err != nil {
		panic("level: bad constant hex: " + err.Error())
	}
	p, err := curves.DecodeG2(raw)
	if err != nil {
		panic("level: bad constant point: " + err.Error())
	}
	return p
}

// H0 returns the Wang-Cao pairing base used for key encapsulation and the
// shared decryption point.
func H0() *curves.G2Point { return h0 }

// H1 returns the first level-commitment constant.
func H1() *curves.G2Point { return h1 }

// H2 returns the second level-commitment constant.
func H2() *curves.G2Point { return h2 }

// H3 returns the entry-level constant, bound into the very first hop only.
func H3() *curves.G2Point { return h3 }
