package execctx_test

import (
	"testing"

	"github.com/aeon-lang/aeonvm/code"
	"github.com/aeon-lang/aeonvm/execctx"
	"github.com/aeon-lang/aeonvm/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCode() *code.Object {
	return &code.Object{Name: "a", File: "a.aeon", Line: 1}
}

func TestNewHasNoParentAndReturnRegister(t *testing.T) {
	ctx := execctx.WithObject(object.Null, newCode(), 4)

	assert.Nil(t, ctx.Parent)
	assert.Equal(t, 0, ctx.InstructionIndex)
	assert.Equal(t, 4, ctx.ReturnRegister)
}

func TestWithBindingNestsLexically(t *testing.T) {
	parent := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)
	child := execctx.WithBinding(parent.Binding, newCode(), execctx.NoReturnRegister)

	assert.Same(t, parent.Binding, child.Binding.Parent())
}

func TestFindParentZeroRejected(t *testing.T) {
	ctx := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)

	_, ok := ctx.FindParent(0)
	assert.False(t, ok)
}

func TestFindParentBounds(t *testing.T) {
	c1 := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)
	c2 := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)
	c3 := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)

	c2.SetParent(c1)
	c3.SetParent(c2)

	found, ok := c3.FindParent(1)
	require.True(t, ok)
	assert.Same(t, c2, found)

	found, ok = c3.FindParent(2)
	require.True(t, ok)
	assert.Same(t, c1, found)

	_, ok = c3.FindParent(3)
	assert.False(t, ok)
}

func TestContextsIteratesSelfThenAncestors(t *testing.T) {
	c1 := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)
	c2 := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)
	c3 := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)

	c2.SetParent(c1)
	c3.SetParent(c2)

	var seen []*execctx.ExecutionContext
	c3.Contexts(func(c *execctx.ExecutionContext) bool {
		seen = append(seen, c)
		return true
	})

	require.Len(t, seen, 3)
	assert.Same(t, c3, seen[0])
	assert.Same(t, c2, seen[1])
	assert.Same(t, c1, seen[2])
}

func TestGetSetRegisterAndLocal(t *testing.T) {
	ctx := execctx.WithObject(object.Null, newCode(), execctx.NoReturnRegister)

	_, err := ctx.GetRegister(0)
	assert.Error(t, err)

	p := object.New(object.NewEmpty(), object.Young)
	ctx.SetRegister(0, p)

	got, err := ctx.GetRegister(0)
	require.NoError(t, err)
	assert.True(t, got.Equal(p))

	ctx.SetLocal(0, p)
	gotLocal, err := ctx.GetLocal(0)
	require.NoError(t, err)
	assert.True(t, gotLocal.Equal(p))
}
