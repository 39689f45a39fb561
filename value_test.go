package graft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graft-runtime/graft"
)

func TestValueKinds(t *testing.T) {
	assert.Equal(t, graft.KindUndef, graft.Undef().Kind())
	assert.Equal(t, graft.KindNull, graft.Null().Kind())
	assert.Equal(t, graft.KindTrue, graft.Bool(true).Kind())
	assert.Equal(t, graft.KindFalse, graft.Bool(false).Kind())
	assert.Equal(t, graft.KindInt, graft.Int(7).Kind())
	assert.Equal(t, graft.KindDouble, graft.Double(1.5).Kind())
	assert.Equal(t, graft.KindString, graft.String("x").Kind())
	assert.Equal(t, graft.KindArray, graft.ArrayValue(nil).Kind())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", graft.Null().String())
	assert.Equal(t, "1", graft.Bool(true).String())
	assert.Equal(t, "0", graft.Bool(false).String())
	assert.Equal(t, "42", graft.Int(42).String())
	assert.Equal(t, "1.5", graft.Double(1.5).String())
	assert.Equal(t, "hello", graft.String("hello").String())
}

func TestValuePayloads(t *testing.T) {
	assert.Equal(t, int64(42), graft.Int(42).Int())
	assert.Equal(t, 2.5, graft.Double(2.5).Double())
	assert.True(t, graft.Bool(true).Bool())
	assert.False(t, graft.Bool(false).Bool())
	assert.True(t, graft.Null().IsNull())
	assert.True(t, graft.Undef().IsNull())
	assert.True(t, graft.Undef().IsUndef())
	assert.False(t, graft.Null().IsUndef())
}

func TestKindByName(t *testing.T) {
	k, ok := graft.KindByName("int")
	require.True(t, ok)
	assert.Equal(t, graft.KindInt, k)

	_, ok = graft.KindByName("nope")
	assert.False(t, ok)

	assert.Equal(t, "double", graft.KindDouble.String())
	assert.Equal(t, "resource", graft.KindResource.String())
}

func TestArraySetGet(t *testing.T) {
	a := graft.NewArray()
	a.Set("name", graft.String("graft"))
	a.Set("count", graft.Int(3))

	v, ok := a.Get("name")
	require.True(t, ok)
	assert.Equal(t, "graft", v.String())

	_, ok = a.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"name", "count"}, a.Order)
}

func TestArrayAppend(t *testing.T) {
	a := graft.NewList(graft.Int(1), graft.Int(2))
	key := a.Append(graft.Int(3))
	assert.Equal(t, "2", key)
	assert.Equal(t, 3, a.Len())

	// Appending past an explicit numeric key continues after it.
	a.Set("10", graft.Int(11))
	assert.Equal(t, "11", a.Append(graft.Int(12)))
}

func TestArrayDup(t *testing.T) {
	a := graft.NewList(graft.Int(1))
	b := a.Dup()
	b.Append(graft.Int(2))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 2, b.Len())
}

func TestArrayString(t *testing.T) {
	a := graft.NewArray()
	a.Set("k", graft.String("v"))
	a.Set("with space", graft.String(""))
	assert.Equal(t, "k v {with space} {}", a.String())
}
