package dismantle

import "fmt"

// ByteType classifies a single byte of a ROM image.
type ByteType int

const (
	Unknown ByteType = iota
	Instruction
	Operand
	Data8
	Data16L
	Data16H
	Vector16L
	Vector16H
	Error
)

var typeNames = [...]string{
	Unknown:     "UNKNOWN",
	Instruction: "INSTRUCTION",
	Operand:     "OPERAND",
	Data8:       "DATA8",
	Data16L:     "DATA16L",
	Data16H:     "DATA16H",
	Vector16L:   "VECTOR16L",
	Vector16H:   "VECTOR16H",
	Error:       "ERROR",
}

func (t ByteType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// isDataType reports whether t is one of the DATA*/VECTOR* tags, the set
// rom_base.py calls data_types.
func isDataType(t ByteType) bool {
	switch t {
	case Data8, Data16L, Data16H, Vector16L, Vector16H:
		return true
	default:
		return false
	}
}

// Store holds all classification state produced by disassembling a single
// ROM image: the byte-level type map, per-instruction text, per-byte
// comments, label/port maps and their auto-created-name tables, the
// cross-reference index, and the vector registries. A Store is created
// once per run and owned exclusively by the decoder driving it; nothing in
// this package synchronizes concurrent access.
type Store struct {
	ROM         []byte
	BaseAddress int
	MaxAddress  int

	DataType    []ByteType
	Disassembly []string
	Comments    []string

	LabelMap map[int]string
	PortMap  map[int]string

	// SpecialLabels/SpecialPorts are the per-CPU constant tables (RST
	// vectors, RESET, NMI, ...) consulted before synthesising a generic
	// J_/C_/D_/V_/P_ name.
	SpecialLabels map[int]string
	SpecialPorts  map[int]string

	Xref map[int][]int

	VectorAddrs []int
	VectorDests []int
}

// NewStore constructs a Store over rom loaded at baseAddress. labelMap and
// portMap seed the label/port tables (pass a fresh map, since Store takes
// ownership and mutates it in place); specialLabels/specialPorts are the
// CPU's constant name tables.
func NewStore(rom []byte, baseAddress int, labelMap, portMap, specialLabels, specialPorts map[int]string) *Store {
	if labelMap == nil {
		labelMap = map[int]string{}
	}
	if portMap == nil {
		portMap = map[int]string{}
	}
	n := len(rom)
	return &Store{
		ROM:           rom,
		BaseAddress:   baseAddress,
		MaxAddress:    baseAddress + n - 1,
		DataType:      make([]ByteType, n),
		Disassembly:   make([]string, n),
		Comments:      make([]string, n),
		LabelMap:      labelMap,
		PortMap:       portMap,
		SpecialLabels: specialLabels,
		SpecialPorts:  specialPorts,
		Xref:          map[int][]int{},
	}
}

func (s *Store) inRange(idx int) bool {
	return idx >= 0 && idx < len(s.DataType)
}

func conflictWarning(prev, next ByteType, accessAddr *int) string {
	if accessAddr == nil {
		return fmt.Sprintf("WARNING: Changed type %s->%s. ", prev, next)
	}
	return fmt.Sprintf("WARNING: Access from %s changed type %s->%s. ", Hex16Intel(*accessAddr), prev, next)
}

// SetData8 tags address DATA8. If the byte already carries a different,
// non-UNKNOWN tag, a WARNING comment is appended unconditionally (per the
// §9(d) correction: the original only ever computed the warning line, and
// didn't always append it).
func (s *Store) SetData8(address int, accessAddr *int) {
	idx := address - s.BaseAddress
	if !s.inRange(idx) {
		return
	}
	if s.DataType[idx] != Unknown && s.DataType[idx] != Data8 {
		s.Comments[idx] += conflictWarning(s.DataType[idx], Data8, accessAddr)
	}
	s.DataType[idx] = Data8
}

// SetData16 tags address DATA16L and address+1 DATA16H.
func (s *Store) SetData16(address int, accessAddr *int) {
	idx := address - s.BaseAddress
	if s.inRange(idx) {
		if s.DataType[idx] != Unknown && s.DataType[idx] != Data16L {
			s.Comments[idx] += conflictWarning(s.DataType[idx], Data16L, accessAddr)
		}
		s.DataType[idx] = Data16L
	}
	idx++
	if s.inRange(idx) {
		if s.DataType[idx] != Unknown && s.DataType[idx] != Data16H {
			s.Comments[idx] += conflictWarning(s.DataType[idx], Data16H, accessAddr)
		}
		s.DataType[idx] = Data16H
	}
}

// SetVector tags address/address+1 VECTOR16L/VECTOR16H, registers address
// in VectorAddrs, reads the little-endian pointer stored there, registers
// it in VectorDests, and returns it. Bytes outside the ROM are tolerated:
// the missing half contributes nothing to the returned value (mirroring
// the source's tolerant _set_vector16_le_intel). If neither byte is inside
// the ROM, it returns -1.
func (s *Store) SetVector(address int, accessAddr *int) int {
	idx := address - s.BaseAddress

	if !containsInt(s.VectorAddrs, address) {
		s.VectorAddrs = append(s.VectorAddrs, address)
	}

	vector := -1
	if s.inRange(idx) {
		if s.DataType[idx] != Unknown && s.DataType[idx] != Vector16L {
			s.Comments[idx] += conflictWarning(s.DataType[idx], Vector16L, accessAddr)
		}
		s.DataType[idx] = Vector16L
		vector = int(s.ROM[idx])
	}
	idx++
	if s.inRange(idx) {
		if s.DataType[idx] != Unknown && s.DataType[idx] != Vector16H {
			s.Comments[idx] += conflictWarning(s.DataType[idx], Vector16H, accessAddr)
		}
		s.DataType[idx] = Vector16H
		if vector < 0 {
			vector = 0
		}
		vector |= int(s.ROM[idx]) << 8
	}

	if vector >= 0 && !containsInt(s.VectorDests, vector) {
		s.VectorDests = append(s.VectorDests, vector)
	}
	return vector
}

// AddXref records a static call/jump/branch from source to dest,
// deduplicating repeated sources under the same destination.
func (s *Store) AddXref(source, dest int) {
	for _, src := range s.Xref[dest] {
		if src == source {
			return
		}
	}
	s.Xref[dest] = append(s.Xref[dest], source)
}

// LookupAddress returns the symbolic label for address, synthesising one
// from prefix (or SpecialLabels) when create is true and none exists yet;
// first-write-wins. With create false, an unlabelled address renders as a
// plain hex literal.
func (s *Store) LookupAddress(address int, create bool, prefix string) string {
	if name, ok := s.LabelMap[address]; ok {
		return name
	}
	if !create {
		return Hex16Intel(address)
	}
	name, ok := s.SpecialLabels[address]
	if !ok {
		name = fmt.Sprintf("%s%04X", prefix, address)
	}
	s.LabelMap[address] = name
	return name
}

// LookupPort is LookupAddress's 8-bit I/O-port counterpart.
func (s *Store) LookupPort(port int, create bool, prefix string) string {
	if name, ok := s.PortMap[port]; ok {
		return name
	}
	if !create {
		return Hex8Intel(port)
	}
	name, ok := s.SpecialPorts[port]
	if !ok {
		name = fmt.Sprintf("%s%02X", prefix, port)
	}
	s.PortMap[port] = name
	return name
}

// beginInstruction implements the common decoder preamble from spec §4.3:
// bounds-check the address, short-circuit if already decoded, warn on any
// classification conflict, then claim the byte as INSTRUCTION. Returns the
// ROM index and whether the caller should return immediately with no
// successors (byte already decoded).
func (s *Store) beginInstruction(address int) (idx int, alreadyDone bool) {
	idx = address - s.BaseAddress
	if idx < 0 || idx >= len(s.DataType) {
		panic(fmt.Sprintf("dismantle: address %s outside store bounds", Hex16Intel(address)))
	}

	if s.DataType[idx] == Instruction {
		return idx, true
	}
	if s.DataType[idx] == Operand {
		s.Comments[idx] += "WARNING: Disassembling an operand. "
	}
	if isDataType(s.DataType[idx]) {
		s.Comments[idx] += "WARNING: Disassembling data. "
	}
	if s.DataType[idx] == Error {
		s.Comments[idx] += "WARNING: Disassembling location flagged as error. "
	}
	s.DataType[idx] = Instruction
	return idx, false
}

// markError tags idx ERROR with an "invalid opcode" comment, per spec §7's
// invalid-opcode handling. It sets no disassembly text.
func (s *Store) markError(idx int, opcode int) {
	s.Comments[idx] += fmt.Sprintf("ERROR: invalid opcode %s ", Hex8Intel(opcode))
	s.DataType[idx] = Error
}
