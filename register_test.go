package graft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/graft-runtime/graft"
)

func TestRegisterClass(t *testing.T) {
	rt := graft.New(graft.WithLogger(zap.NewNop()))

	class, err := graft.RegisterClass[Counter](rt, "Counter", counterDef())
	require.NoError(t, err)
	require.NotNil(t, class)
	assert.Equal(t, "Counter", class.Name)

	got, ok := rt.LookupClass("Counter")
	require.True(t, ok)
	assert.Same(t, class, got)
}

func TestRegisterDuplicateName(t *testing.T) {
	rt := graft.New()

	_, err := graft.RegisterClass[Counter](rt, "Counter", counterDef())
	require.NoError(t, err)

	_, err = graft.RegisterClass[Blank](rt, "Counter", graft.Def[Blank]{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	// The original registration is untouched.
	class, ok := rt.LookupClass("Counter")
	require.True(t, ok)
	assert.True(t, class.Can(graft.CapToInt))
}

func TestCapabilityDetection(t *testing.T) {
	rt := graft.New()

	class, err := graft.RegisterClass[Counter](rt, "Counter", counterDef())
	require.NoError(t, err)

	assert.True(t, class.Can(graft.CapToBool))
	assert.True(t, class.Can(graft.CapToInt))
	assert.True(t, class.Can(graft.CapToDouble))
	assert.True(t, class.Can(graft.CapToString))
	assert.False(t, class.Can(graft.CapToArray))
	assert.True(t, class.Can(graft.CapCompareInt))
	assert.True(t, class.Can(graft.CapCompareSame))
	assert.False(t, class.Can(graft.CapCompareString))
	assert.True(t, class.Can(graft.CapConstruct))
	assert.True(t, class.Can(graft.CapClone))
}

func TestCapabilityDetectionSignatureExact(t *testing.T) {
	rt := graft.New()

	// ToBool() int and CompareInt(int32) do not match the required
	// signatures and must be treated as absent.
	class, err := graft.RegisterClass[WrongSig](rt, "WrongSig", graft.Def[WrongSig]{
		New: func() WrongSig { return WrongSig{} },
	})
	require.NoError(t, err)

	assert.False(t, class.Can(graft.CapToBool))
	assert.False(t, class.Can(graft.CapCompareInt))
}

func TestCapabilityDetectionNone(t *testing.T) {
	rt := graft.New()

	class, err := graft.RegisterClass[Blank](rt, "Blank", graft.Def[Blank]{
		New: func() Blank { return Blank{} },
	})
	require.NoError(t, err)

	assert.False(t, class.Can(graft.CapToBool))
	assert.False(t, class.Can(graft.CapCompareValue))
	assert.False(t, class.Can(graft.CapClone))
	assert.Equal(t, "construct", class.Handlers().Caps.String())
}

func TestCapabilityString(t *testing.T) {
	assert.Equal(t, "none", graft.Capability(0).String())
	c := graft.CapToInt | graft.CapCompareSame
	assert.Equal(t, "toInt|compareSame", c.String())
}

func TestRegisterBadMethod(t *testing.T) {
	rt := graft.New()

	_, err := graft.RegisterClass[Counter](rt, "Counter", graft.Def[Counter]{
		New: func() Counter { return Counter{} },
		Methods: map[string]any{
			"bad": func(x int) int { return x }, // first param must be *Counter
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first parameter")

	_, err = graft.RegisterClass[Counter](rt, "Counter2", graft.Def[Counter]{
		New: func() Counter { return Counter{} },
		Methods: map[string]any{
			"notAFunc": 42,
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected function")
}

func TestDefineSubclass(t *testing.T) {
	rt := graft.New()

	parent, err := graft.RegisterClass[Counter](rt, "Counter", counterDef())
	require.NoError(t, err)

	sub, err := rt.DefineSubclass("TollCounter", parent)
	require.NoError(t, err)
	assert.Same(t, parent, sub.Parent())
	assert.Same(t, parent.Handlers(), sub.Handlers())

	obj, err := rt.NewInstance(sub)
	require.NoError(t, err)
	assert.Same(t, sub, obj.Class())
	assert.True(t, obj.IsInstanceOf(parent))
	assert.True(t, obj.IsInstanceOf(sub))

	// Parent methods resolve through the chain.
	v, err := rt.CallMethod(obj, "incr")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int())

	_, err = rt.DefineSubclass("Orphan", nil)
	assert.Error(t, err)
}

func TestClassMethodNames(t *testing.T) {
	rt := graft.New()
	class, err := graft.RegisterClass[Counter](rt, "Counter", counterDef())
	require.NoError(t, err)

	names := class.MethodNames()
	assert.ElementsMatch(t, []string{"incr", "get", "set", "add"}, names)
}
