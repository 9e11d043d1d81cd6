package heap

import "github.com/aeon-lang/aeonvm/object"

// CopyObject deep-copies the object graph reachable from src into this
// bucket, following the prototype, attributes, and any array elements.
// Permanent objects are left as-is (they are process-wide and safe to
// share, exactly as spec.md §4.7's send_message rule treats a permanent
// message: enqueued by reference, never copied). A visited map keyed by
// source object identity ensures a cycle, or any object shared by more
// than one reference, is copied exactly once and every occurrence in the
// destination graph points at that single copy.
func (bk *Bucket) CopyObject(src object.Pointer) object.Pointer {
	visited := make(map[*object.Object]object.Pointer)
	return bk.copyObject(src, visited)
}

func (bk *Bucket) copyObject(src object.Pointer, visited map[*object.Object]object.Pointer) object.Pointer {
	if src.IsNull() {
		return src
	}
	if !src.IsLocal() {
		return src
	}

	srcObj := src.Get()
	if dst, ok := visited[srcObj]; ok {
		return dst
	}

	dst := bk.allocate()
	visited[srcObj] = dst

	dstObj := dst.Get()
	dstObj.Prototype = bk.copyObject(srcObj.Prototype, visited)
	dstObj.Value = bk.copyValue(srcObj.Value, visited)

	if srcObj.Attributes != nil {
		dstObj.Attributes = make(map[string]object.Pointer, len(srcObj.Attributes))
		for name, attr := range srcObj.Attributes {
			dstObj.Attributes[name] = bk.copyObject(attr, visited)
		}
	}

	return dst
}

func (bk *Bucket) copyValue(v object.Value, visited map[*object.Object]object.Pointer) object.Value {
	if v.Kind != object.ArrayValue {
		return v
	}

	copied := object.Value{Kind: object.ArrayValue, Array: make([]object.Pointer, len(v.Array))}
	for i, elem := range v.Array {
		copied.Array[i] = bk.copyObject(elem, visited)
	}
	return copied
}
