package heap

import "github.com/aeon-lang/aeonvm/object"

// evacuator drives one copying-collection pass: it walks a set of roots,
// copies every reachable object of the generation being collected into a
// fresh destination block, installs a forwarding pointer on the source
// object (so any stray, unwalked reference still resolves via
// object.Pointer.Get's single indirection, per spec.md §4.1), and rewrites
// the root slot itself to the forwarded address with the correct
// generation tag.
type evacuator struct {
	seen map[*object.Object]object.Pointer

	survivors *Bucket
	promoted  *Bucket // nil when this pass does not promote (mature collection)
	ageOf     map[*object.Object]int
	promoteAt int // 0 disables promotion
	promotedN int

	collecting object.Kind // Young or Mature: the generation being evacuated
}

// evacuate copies ptr's target if it belongs to the generation under
// collection, returning the (possibly unchanged) forwarded pointer.
// Pointers to any other generation pass through untouched — evacuating one
// generation must never move objects that belong to another.
func (e *evacuator) evacuate(ptr object.Pointer) object.Pointer {
	if ptr.IsNull() || ptr.Kind() != e.collecting {
		return ptr
	}

	raw := ptr.RawObject()
	if dst, ok := e.seen[raw]; ok {
		return dst
	}

	dest := e.survivors
	if e.promoted != nil && e.ageOf[raw] >= e.promoteAt {
		dest = e.promoted
		e.promotedN++
	}

	dst := dest.allocate()
	e.seen[raw] = dst
	e.seen[dst.RawObject()] = dst
	raw.Forward(dst.Get())

	dstObj := dst.Get()
	dstObj.Prototype = e.evacuate(raw.Prototype)
	dstObj.Value = e.evacuateValue(raw.Value)

	if raw.Attributes != nil {
		dstObj.Attributes = make(map[string]object.Pointer, len(raw.Attributes))
		for name, attr := range raw.Attributes {
			dstObj.Attributes[name] = e.evacuate(attr)
		}
	}

	return dst
}

func (e *evacuator) evacuateValue(v object.Value) object.Value {
	if v.Kind != object.ArrayValue {
		return v
	}

	out := object.Value{Kind: object.ArrayValue, Array: make([]object.Pointer, len(v.Array))}
	for i, elem := range v.Array {
		out.Array[i] = e.evacuate(elem)
	}
	return out
}

// blockAges maps every live object currently in blocks to the age of the
// block it lives in, so the evacuator can decide promotion per object
// without the Bucket/LocalAllocator layers needing to expose block
// internals to the gc package.
func blockAges(blocks []*block) map[*object.Object]int {
	ages := make(map[*object.Object]int)
	for _, b := range blocks {
		for i := 0; i < b.free; i++ {
			ages[&b.slots[i]] = b.age
		}
	}
	return ages
}

// EvacuateYoung runs a young-generation collection: roots is the live slot
// set from process roots scanning, remembered is the set of mature objects
// known to point into the young generation (spec.md §4.7's write barrier
// target set) whose fields must be scanned — and rewritten in place — for
// young pointers, without moving the mature object itself.
//
// Returns the number of objects promoted into the mature generation.
func (l *LocalAllocator) EvacuateYoung(roots []object.PointerPointer, remembered []object.Pointer) int {
	oldBlocks := l.young.takeBlocks()

	e := &evacuator{
		seen:       make(map[*object.Object]object.Pointer),
		survivors:  l.young,
		promoted:   l.mature,
		ageOf:      blockAges(oldBlocks),
		promoteAt:  l.promotionAge,
		collecting: object.Young,
	}

	for _, root := range roots {
		root.Set(e.evacuate(root.Get()))
	}

	for _, matureObj := range remembered {
		if !matureObj.IsMature() {
			continue
		}
		obj := matureObj.Get()
		obj.Prototype = e.evacuate(obj.Prototype)
		obj.Value = e.evacuateValue(obj.Value)
		for name, attr := range obj.Attributes {
			obj.Attributes[name] = e.evacuate(attr)
		}
	}

	l.young.releaseBlocks(oldBlocks)

	return e.promotedN
}

// EvacuateMature runs a mature-generation collection: roots is the live
// slot set from process roots scanning. The remembered set is not
// consulted and is not cleared (spec.md §4.9) — it tracks mature objects
// pointing at young objects, which is unaffected by collecting the mature
// generation itself.
func (l *LocalAllocator) EvacuateMature(roots []object.PointerPointer) {
	oldBlocks := l.mature.takeBlocks()

	e := &evacuator{
		seen:       make(map[*object.Object]object.Pointer),
		survivors:  l.mature,
		promoted:   nil,
		ageOf:      blockAges(oldBlocks),
		collecting: object.Mature,
	}

	for _, root := range roots {
		root.Set(e.evacuate(root.Get()))
	}

	l.mature.releaseBlocks(oldBlocks)
}
