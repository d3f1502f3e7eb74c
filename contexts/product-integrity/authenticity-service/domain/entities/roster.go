package entities

// ManufacturerRoster tracks authorization flags plus the enumeration list of
// currently authorized addresses. Revocation removes from the list by moving
// the last entry into the freed slot, so list order is not stable.
type ManufacturerRoster struct {
	flags map[Address]bool
	order []Address
	index map[Address]int
}

func NewManufacturerRoster() *ManufacturerRoster {
	return &ManufacturerRoster{
		flags: make(map[Address]bool),
		index: make(map[Address]int),
	}
}

func (r *ManufacturerRoster) IsAuthorized(address Address) bool {
	return r.flags[address]
}

// Set applies the flag and reports whether the enumeration list changed.
func (r *ManufacturerRoster) Set(address Address, authorized bool) bool {
	previous := r.flags[address]
	r.flags[address] = authorized
	switch {
	case authorized && !previous:
		r.index[address] = len(r.order)
		r.order = append(r.order, address)
		return true
	case !authorized && previous:
		r.remove(address)
		return true
	default:
		return false
	}
}

func (r *ManufacturerRoster) remove(address Address) {
	position, ok := r.index[address]
	if !ok {
		return
	}
	last := len(r.order) - 1
	moved := r.order[last]
	r.order[position] = moved
	r.index[moved] = position
	r.order = r.order[:last]
	delete(r.index, address)
}

// List returns a snapshot of the enumeration list.
func (r *ManufacturerRoster) List() []Address {
	return append([]Address(nil), r.order...)
}

func (r *ManufacturerRoster) Len() int {
	return len(r.order)
}

// Clone returns an independent copy.
func (r *ManufacturerRoster) Clone() *ManufacturerRoster {
	clone := &ManufacturerRoster{
		flags: make(map[Address]bool, len(r.flags)),
		order: append([]Address(nil), r.order...),
		index: make(map[Address]int, len(r.index)),
	}
	for address, flag := range r.flags {
		clone.flags[address] = flag
	}
	for address, position := range r.index {
		clone.index[address] = position
	}
	return clone
}
