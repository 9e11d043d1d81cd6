package binding_test

import (
	"testing"

	"github.com/aeon-lang/aeonvm/binding"
	"github.com/aeon-lang/aeonvm/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocalUndefined(t *testing.T) {
	b := binding.New(object.Null)

	_, err := b.GetLocal(0)
	require.Error(t, err)
}

func TestSetGetLocal(t *testing.T) {
	b := binding.New(object.Null)
	p := object.New(object.NewEmpty(), object.Young)

	b.SetLocal(0, p)

	got, err := b.GetLocal(0)
	require.NoError(t, err)
	assert.True(t, got.Equal(p))
}

func TestSetLocalGrowsWithoutMovingExisting(t *testing.T) {
	b := binding.New(object.Null)
	first := object.New(object.NewEmpty(), object.Young)

	b.SetLocal(0, first)
	b.SetLocal(3, object.New(object.NewEmpty(), object.Young))

	got, err := b.GetLocal(0)
	require.NoError(t, err)
	assert.True(t, got.Equal(first))
	assert.True(t, b.LocalExists(1))
	assert.True(t, b.LocalExists(3))
}

func TestPushPointersWalksParentOnce(t *testing.T) {
	root := binding.New(object.New(object.NewEmpty(), object.Young))
	root.SetLocal(0, object.New(object.NewEmpty(), object.Young))

	child := binding.WithParent(object.New(object.NewEmpty(), object.Young), root)
	child.SetLocal(0, object.New(object.NewEmpty(), object.Young))

	var out []object.PointerPointer
	child.PushPointers(&out)

	// self+local for child, self+local for root == 4 slot handles.
	assert.Len(t, out, 4)
}

func TestPushPointersMutationVisible(t *testing.T) {
	b := binding.New(object.New(object.NewEmpty(), object.Young))
	p := object.New(object.NewEmpty(), object.Young)
	b.SetLocal(0, p)

	var out []object.PointerPointer
	b.PushPointers(&out)

	replacement := object.New(object.NewEmpty(), object.Mature)
	for _, pp := range out {
		pp.Set(replacement)
	}

	got, err := b.GetLocal(0)
	require.NoError(t, err)
	assert.True(t, got.Equal(replacement))
	assert.True(t, b.Self().Equal(replacement))
}
