package xorfilter

// xorSet is the per-slot accumulator used during the insertion and peeling
// phases: count tracks how many keys currently reference this slot, and
// xormask is the XOR of the (mixed) hashes of those keys. When count drops
// to 1, xormask alone identifies the sole remaining key.
type xorSet struct {
	xormask uint64
	count   uint32
}

// indexFunc derives the three table indices a mixed hash maps to. Xor8/16/32
// and Fuse8/16/32 all drive peelHypergraph through one of these, closing
// over their own sizing parameters; only the geometry differs.
type indexFunc func(hash uint64) (uint32, uint32, uint32)

// peelHypergraph runs the insertion and peeling phases shared by the Xor
// and Fuse families (BinaryFuse uses a bit-packed variant of the same
// algorithm, see binaryfuse8.go). It returns the peeled keys' mixed hashes
// in peel order, the slot (0, 1, or 2) each was peeled from, and whether
// every key was peeled (false means this attempt hit a 2-core and the
// caller should retry with a new seed).
//
// H and alone are scratch buffers sized to capacity, reused across retry
// attempts by the caller to avoid reallocating on every seed rotation.
func peelHypergraph(keys []uint64, seed uint64, capacity uint32, indices indexFunc, H []xorSet, alone []uint32) (order []uint64, slot []uint8, ok bool) {
	for i := range H {
		H[i] = xorSet{}
	}

	for _, key := range keys {
		hash := mixsplit(key, seed)
		i0, i1, i2 := indices(hash)
		H[i0].count++
		H[i0].xormask ^= hash
		H[i1].count++
		H[i1].xormask ^= hash
		H[i2].count++
		H[i2].xormask ^= hash
	}

	qsize := 0
	for i := uint32(0); i < capacity; i++ {
		if H[i].count == 1 {
			alone[qsize] = i
			qsize++
		}
	}

	size := len(keys)
	order = make([]uint64, size)
	slot = make([]uint8, size)
	stacksize := 0

	for qsize > 0 {
		qsize--
		index := alone[qsize]
		if H[index].count != 1 {
			continue
		}
		hash := H[index].xormask
		i0, i1, i2 := indices(hash)

		order[stacksize] = hash
		switch index {
		case i0:
			slot[stacksize] = 0
		case i1:
			slot[stacksize] = 1
		default:
			slot[stacksize] = 2
		}
		stacksize++

		H[i0].count--
		H[i0].xormask ^= hash
		if H[i0].count == 1 {
			alone[qsize] = i0
			qsize++
		}

		H[i1].count--
		H[i1].xormask ^= hash
		if H[i1].count == 1 {
			alone[qsize] = i1
			qsize++
		}

		H[i2].count--
		H[i2].xormask ^= hash
		if H[i2].count == 1 {
			alone[qsize] = i2
			qsize++
		}
	}

	return order, slot, stacksize == size
}
