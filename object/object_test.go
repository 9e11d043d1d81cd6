package object_test

import (
	"testing"

	"github.com/aeon-lang/aeonvm/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerClassification(t *testing.T) {
	obj := object.NewEmpty()

	young := object.New(obj, object.Young)
	mature := object.New(obj, object.Mature)
	perm := object.New(obj, object.Permanent)

	assert.True(t, young.IsYoung())
	assert.True(t, young.IsLocal())
	assert.False(t, young.IsMature())

	assert.True(t, mature.IsMature())
	assert.True(t, mature.IsLocal())

	assert.True(t, perm.IsPermanent())
	assert.False(t, perm.IsLocal())
}

func TestPointerForwarding(t *testing.T) {
	src := object.NewEmpty()
	dst := object.NewEmpty()

	p := object.New(src, object.Young)
	require.Same(t, src, p.Get())

	src.Forward(dst)

	assert.Same(t, dst, p.Get())
}

func TestPointerPointerRewrite(t *testing.T) {
	obj := object.NewEmpty()
	slot := object.New(obj, object.Young)

	pp := object.NewPointerPointer(&slot)
	replacement := object.New(object.NewEmpty(), object.Mature)

	pp.Set(replacement)

	assert.True(t, slot.IsMature())
	assert.Same(t, replacement.Get(), slot.Get())
}

func TestAttributes(t *testing.T) {
	obj := object.NewEmpty()

	_, ok := obj.Attribute("name")
	assert.False(t, ok)

	val := object.New(object.NewEmpty(), object.Young)
	obj.SetAttribute("name", val)

	got, ok := obj.Attribute("name")
	require.True(t, ok)
	assert.True(t, got.Equal(val))
}
