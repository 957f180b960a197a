package badger

import "encoding/binary"

// Key prefixes for snapshot data
const (
	companyPrefix     = "comrec"
	descVectorPrefix  = "dscvec"
	needsVectorPrefix = "ndsvec"
	metaKey           = "snapmeta"
)

// makePositionKey generates a composite key for position-addressed data.
// Format: prefix:position, with the position in BigEndian order so
// lexicographic iteration visits positions in ascending order.
func makePositionKey(prefix string, position int) []byte {
	p := prefix + ":"
	buf := make([]byte, len(p)+8)
	offset := copy(buf, []byte(p))
	binary.BigEndian.PutUint64(buf[offset:], uint64(position))
	return buf
}

func makeCompanyKey(position int) []byte {
	return makePositionKey(companyPrefix, position)
}

func makeDescVectorKey(position int) []byte {
	return makePositionKey(descVectorPrefix, position)
}

func makeNeedsVectorKey(position int) []byte {
	return makePositionKey(needsVectorPrefix, position)
}
