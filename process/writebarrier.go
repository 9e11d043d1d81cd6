package process

import "github.com/aeon-lang/aeonvm/object"

// WriteBarrier records writtenTo in the remembered set whenever the write
// just performed into one of its fields crosses from mature into young:
// writtenTo is mature and written is young. Mature objects are not
// re-scanned by a young collection unless they are remembered, so any
// mature object that starts pointing at a young object must be recorded or
// the young object would look unreachable and be collected out from under
// it (spec.md §4.7/§4.9).
//
// Writes that do not cross generations (young-into-young, mature-into-
// mature, anything-into-permanent, anything-into-itself) need no entry:
// the pointed-to object is already reachable from whichever generation's
// own root scan will run next.
func (p *Process) WriteBarrier(writtenTo, written object.Pointer) {
	if writtenTo.IsMature() && written.IsYoung() {
		p.rememberedSet.Add(writtenTo)
	}
}

// RememberedSet returns the mature objects currently remembered as holding
// a reference into the young generation. Only safe to call while the
// process is not concurrently running (i.e. from the owning worker, or
// from the GC thread once the process has reached SuspendedByGc) — see the
// package doc on Process for the discipline this relies on.
func (p *Process) RememberedSet() []object.Pointer {
	return p.rememberedSet.ToSlice()
}

// ForgetRemembered drops ptr from the remembered set. Neither CollectYoung
// nor CollectMature calls it: a collection removes no entries.
func (p *Process) ForgetRemembered(ptr object.Pointer) {
	p.rememberedSet.Remove(ptr)
}

// ClearRemembered empties the remembered set. Neither CollectYoung nor
// CollectMature calls it.
func (p *Process) ClearRemembered() {
	p.rememberedSet.Clear()
}
