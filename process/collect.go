package process

// CollectYoung ages the young blocks by one collection, then evacuates the
// young generation, scanning Roots() plus the remembered set of mature
// objects holding young pointers, and returns the number of objects
// promoted into the mature generation. The remembered set is left as-is
// afterward: a remembered mature object's fields were rewritten in place
// to the evacuated addresses, but no entry is removed, including entries
// that no longer hold any young pointer. Must only be called while the
// process is SuspendedByGc.
func (p *Process) CollectYoung() int {
	roots := p.Roots()
	remembered := p.RememberedSet()

	p.local.IncrementYoungAges()
	return p.local.EvacuateYoung(roots, remembered)
}

// CollectMature evacuates the mature generation, scanning only Roots().
// The remembered set is untouched by a mature collection (spec.md §4.9):
// it tracks mature objects pointing at young objects, which a mature
// collection neither reads nor needs to revise — those mature objects just
// moved, but whatever young objects they still reference did not. Must
// only be called while the process is SuspendedByGc.
func (p *Process) CollectMature() {
	roots := p.Roots()
	p.local.EvacuateMature(roots)
}
