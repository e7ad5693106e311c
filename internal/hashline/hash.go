package hashline

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hashAlphabet is the 36-symbol anchor alphabet. It deliberately contains no
// space so DeletedHash can never collide with a real anchor.
const hashAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DeletedHash is the reserved two-space hash that marks deleted lines in a
// diff. Never produced by the hasher.
const DeletedHash = "  "

// LineHashes returns the anchor hash for every line of the buffer.
//
// The hash of line i is computed over the cumulative byte sequence
// content(1) + "\n" + content(2) + "\n" + ... + content(i), so editing any
// line invalidates the hash of every line at or after it. Terminators are
// not part of the hash input.
func LineHashes(lines []Line) []string {
	hashes := make([]string, len(lines))
	d := xxhash.New()
	for i, ln := range lines {
		if i > 0 {
			d.WriteString("\n")
		}
		d.WriteString(ln.Content)
		hashes[i] = projectHash(d.Sum64())
	}
	return hashes
}

// projectHash maps a 64-bit digest into the 36x36 anchor space: the two
// leading bytes of the big-endian digest, each modulo 36.
func projectHash(sum uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	return string([]byte{
		hashAlphabet[int(b[0])%36],
		hashAlphabet[int(b[1])%36],
	})
}

func inHashAlphabet(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')
}
