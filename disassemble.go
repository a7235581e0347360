package dismantle

import "fmt"

// Decoder is the per-CPU single-step disassembler: given the address of an
// undecoded byte, it classifies the instruction there (mutating the
// underlying Store) and returns every statically computable successor
// address, in the order the traversal should explore them — fall-through
// before branch/call target for conditional jumps and calls and for CALL,
// and only the target for unconditional jumps and RST.
type Decoder interface {
	DisasmSingle(address int, createLabels bool) []int
}

// Disassembler drives a Decoder over a worklist of addresses, the
// redesigned (non-recursive) form of rom_base.py's disassemble(). The
// source recurses and raises Python's recursion limit to 65536 to cope
// with long fall-through chains; this implementation uses an explicit
// LIFO stack instead; see SPEC_FULL.md §4.3.
type Disassembler struct {
	Store   *Store
	Decoder Decoder
}

// NewDisassembler binds a Decoder to the Store it mutates.
func NewDisassembler(store *Store, decoder Decoder) *Disassembler {
	return &Disassembler{Store: store, Decoder: decoder}
}

// ValidRange narrows the traversal to [Min, Max]; a nil *ValidRange passed
// to Disassemble defaults to the whole ROM.
type ValidRange struct {
	Min, Max int
}

// Disassemble seeds a worklist from entries plus the destinations of
// vectors, then visits every reachable address depth-first, honouring
// breakpoints and validRange. If singleStep is true, only the seed
// addresses themselves are decoded — their successors are computed but
// never followed, matching rom_base.py's single_step flag.
//
// Any address, seed or successor, that lies outside the ROM itself (as opposed to outside a narrower validRange) is a configuration
// error: the source raises IndexError for it, so this returns an error and
// aborts the run rather than disassembling further.
func (d *Disassembler) Disassemble(entries []int, createLabels, singleStep bool, validRange *ValidRange, breakpoints, vectors []int) error {
	validMin, validMax := d.Store.BaseAddress, d.Store.MaxAddress
	if validRange != nil {
		validMin, validMax = validRange.Min, validRange.Max
	}

	breakSet := make(map[int]bool, len(breakpoints))
	for _, b := range breakpoints {
		breakSet[b] = true
	}

	var vecPtrs []int
	for _, v := range vectors {
		ptr := d.Store.SetVector(v, nil)
		vecPtrs = append(vecPtrs, ptr)
		if createLabels {
			d.Store.LookupAddress(ptr, true, "V_")
		}
	}

	seed := make([]int, 0, len(entries)+len(vecPtrs))
	seed = append(seed, entries...)
	seed = append(seed, vecPtrs...)

	stack := make([]int, 0, len(seed))
	for i := len(seed) - 1; i >= 0; i-- {
		stack = append(stack, seed[i])
	}

	for len(stack) > 0 {
		addr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if addr < validMin || addr > validMax || breakSet[addr] {
			continue
		}
		if addr < d.Store.BaseAddress || addr > d.Store.MaxAddress {
			return fmt.Errorf("dismantle: address %s outside valid range [%s, %s]",
				Hex16Intel(addr), Hex16Intel(d.Store.BaseAddress), Hex16Intel(d.Store.MaxAddress))
		}

		next := d.Decoder.DisasmSingle(addr, createLabels)
		if singleStep {
			continue
		}
		for i := len(next) - 1; i >= 0; i-- {
			stack = append(stack, next[i])
		}
	}
	return nil
}
