package npn

// buildClasses returns the curated NPN class table. Canonical truth tables
// are expressed over the same bit convention cut.Truth/cut.ElemVar use:
// variable i's pattern repeats every 2^i bits of the 16-bit domain (var0 =
// 0xAAAA, var1 = 0xCCCC, var2 = 0xF0F0, var3 = 0xFF00).
func buildClasses() []Class {
	leaf := func(i int) int { return -1 - i }

	mk := func(id int, tt uint16, sg Subgraph) Class {
		return Class{ID: id, Canonical: tt, Subgraphs: []Subgraph{sg}}
	}

	and2Gates := []Gate{{A: leaf(0), B: leaf(1)}}
	nor2Gates := []Gate{{A: leaf(0), AInvert: true, B: leaf(1), BInvert: true}}
	xor2Gates := []Gate{
		{A: leaf(0), AInvert: false, B: leaf(1), BInvert: true},
		{A: leaf(0), AInvert: true, B: leaf(1), BInvert: false},
		{A: 0, AInvert: true, B: 1, BInvert: true},
	}
	and3Gates := []Gate{
		{A: leaf(0), B: leaf(1)},
		{A: 0, B: leaf(2)},
	}
	or3Gates := []Gate{
		{A: leaf(0), AInvert: true, B: leaf(1), BInvert: true},
		{A: 0, B: leaf(2), BInvert: true},
	}
	and4Gates := []Gate{
		{A: leaf(0), B: leaf(1)},
		{A: 0, B: leaf(2)},
		{A: 1, B: leaf(3)},
	}
	or4Gates := []Gate{
		{A: leaf(0), AInvert: true, B: leaf(1), BInvert: true},
		{A: 0, B: leaf(2), BInvert: true},
		{A: 1, B: leaf(3), BInvert: true},
	}
	muxGates := []Gate{
		{A: leaf(2), B: leaf(0)},
		{A: leaf(2), AInvert: true, B: leaf(1)},
		{A: 0, AInvert: true, B: 1, BInvert: true},
	}
	aoi21Gates := []Gate{
		{A: leaf(0), B: leaf(1)},
		{A: 0, AInvert: true, B: leaf(2), BInvert: true},
	}
	oai21Gates := []Gate{
		{A: leaf(0), AInvert: true, B: leaf(1), BInvert: true},
		{A: 0, AInvert: true, B: leaf(2)},
	}
	xorandGates := []Gate{
		xor2Gates[0], xor2Gates[1], xor2Gates[2],
		{A: 2, AInvert: true, B: leaf(2)},
	}
	xor3Gates := []Gate{
		xor2Gates[0], xor2Gates[1], xor2Gates[2],
		{A: 2, AInvert: true, B: leaf(2), BInvert: true},
		{A: 2, B: leaf(2)},
		{A: 3, AInvert: true, B: 4, BInvert: true},
	}

	return []Class{
		mk(0, 0x0000, Subgraph{OutputConst: true, OutputConstVal: false}),
		mk(1, 0xAAAA, Subgraph{OutputLeaf: 0}),
		mk(2, 0x8888, Subgraph{Gates: and2Gates, Output: 0}),
		mk(3, 0xEEEE, Subgraph{Gates: nor2Gates, Output: 0, OutputInvert: true}),
		mk(4, 0x6666, Subgraph{Gates: xor2Gates, Output: 2, OutputInvert: true}),
		mk(5, 0x7777, Subgraph{Gates: and2Gates, Output: 0, OutputInvert: true}),
		mk(6, 0x1111, Subgraph{Gates: nor2Gates, Output: 0}),
		mk(7, 0x9999, Subgraph{Gates: xor2Gates, Output: 2}),
		mk(8, 0x8080, Subgraph{Gates: and3Gates, Output: 1}),
		mk(9, 0xFEFE, Subgraph{Gates: or3Gates, Output: 1, OutputInvert: true}),
		mk(10, 0x7F7F, Subgraph{Gates: and3Gates, Output: 1, OutputInvert: true}),
		mk(11, 0x0101, Subgraph{Gates: or3Gates, Output: 1}),
		mk(12, 0x9696, Subgraph{Gates: xor3Gates, Output: 5, OutputInvert: true}),
		mk(13, 0x8000, Subgraph{Gates: and4Gates, Output: 2}),
		mk(14, 0xFFFE, Subgraph{Gates: or4Gates, Output: 2, OutputInvert: true}),
		mk(15, 0xACAC, Subgraph{Gates: muxGates, Output: 2, OutputInvert: true}),
		mk(16, 0xF8F8, Subgraph{Gates: aoi21Gates, Output: 1, OutputInvert: true}),
		mk(17, 0xE0E0, Subgraph{Gates: oai21Gates, Output: 1}),
		mk(18, 0x6060, Subgraph{Gates: xorandGates, Output: 3}),
	}
}

// permutations returns every permutation of {0,1,2,3}.
func permutations() [][4]int {
	base := [4]int{0, 1, 2, 3}
	var out [][4]int
	var permute func(prefix []int, rest []int)
	permute = func(prefix []int, rest []int) {
		if len(rest) == 0 {
			var p [4]int
			copy(p[:], prefix)
			out = append(out, p)
			return
		}
		for i, v := range rest {
			next := append(append([]int(nil), prefix...), v)
			remaining := make([]int, 0, len(rest)-1)
			remaining = append(remaining, rest[:i]...)
			remaining = append(remaining, rest[i+1:]...)
			permute(next, remaining)
		}
	}
	permute(nil, base[:])
	return out
}

// enumerateVariants calls fn once for every (permutation, input-phase,
// output-phase) transform of canonical, with the resulting 16-bit truth
// table and the transform that produced it.
func enumerateVariants(canonical uint16, fn func(tt uint16, perm [4]int, phase uint8)) {
	for _, p := range permutations() {
		for invertMask := 0; invertMask < 16; invertMask++ {
			for outInv := 0; outInv < 2; outInv++ {
				var tt uint16
				for m := 0; m < 16; m++ {
					idx := 0
					for i := 0; i < 4; i++ {
						y := (m >> uint(p[i])) & 1
						if invertMask&(1<<uint(i)) != 0 {
							y ^= 1
						}
						idx |= y << uint(i)
					}
					bit := (canonical >> uint(idx)) & 1
					if outInv == 1 {
						bit ^= 1
					}
					tt |= uint16(bit) << uint(m)
				}
				fn(tt, p, uint8(invertMask)|uint8(outInv)<<4)
			}
		}
	}
}
