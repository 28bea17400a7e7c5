package reconcile

import "strings"

// Ticket correlates a classification response with the request that
// produced it.
type Ticket struct {
	Seq     uint64
	Address string
}

// ContractCheck tracks the "is contract" flag for the address currently on
// screen. The most recent request wins; anything older is dropped on arrival.
type ContractCheck struct {
	seq        uint64
	address    string
	isContract bool
	pending    bool
}

// Begin starts a classification for address and returns its ticket.
// The flag falls back to false until the answer arrives.
func (c *ContractCheck) Begin(address string) Ticket {
	c.seq++
	c.address = address
	c.isContract = false
	c.pending = true
	return Ticket{Seq: c.seq, Address: address}
}

// NeedsCheck reports whether address differs from the one last requested
func (c *ContractCheck) NeedsCheck(address string) bool {
	if address == "" {
		return false
	}
	return c.seq == 0 || !strings.EqualFold(c.address, address)
}

// Resolve applies a result. Stale tickets are ignored and Resolve returns
// false. Errors count as "not a contract".
func (c *ContractCheck) Resolve(t Ticket, isContract bool, err error) bool {
	if t.Seq != c.seq || !strings.EqualFold(t.Address, c.address) {
		return false
	}
	c.pending = false
	c.isContract = err == nil && isContract
	return true
}

// IsContract returns the flag for the current address
func (c *ContractCheck) IsContract() bool {
	return c.isContract
}

// Pending reports whether the current request is still in flight
func (c *ContractCheck) Pending() bool {
	return c.pending
}
