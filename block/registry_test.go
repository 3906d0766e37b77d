package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

type nullBlock struct {
	Base
}

func newNullBlock() *nullBlock {
	b := &nullBlock{Base: NewBase("null")}
	b.SetupInput(0, dtype.DType{})
	return b
}

func (b *nullBlock) Work() {
	in := b.Input(0)
	in.Consume(in.Elements())
}

func TestRegistryRegisterAndMake(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Registration{
		Name:        "null",
		Category:    "testers",
		Description: "consumes and discards all input",
		Factory: func(Params) (Block, error) {
			return newNullBlock(), nil
		},
	})
	require.NoError(t, err)

	blk, err := r.Make("null", nil)
	require.NoError(t, err)
	assert.Equal(t, "null", blk.Name())
	assert.Len(t, blk.Inputs(), 1)
	assert.Equal(t, 1, blk.NumInputs())
	assert.Equal(t, 0, blk.NumOutputs())

	reg, ok := r.Lookup("null")
	require.True(t, ok)
	assert.Equal(t, "testers", reg.Category)
	assert.Equal(t, []string{"null"}, r.Names())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	reg := Registration{
		Name:    "null",
		Factory: func(Params) (Block, error) { return newNullBlock(), nil },
	}

	require.NoError(t, r.Register(reg))
	err := r.Register(reg)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRegistryRejectsInvalidRegistration(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Registration{Name: "", Factory: func(Params) (Block, error) { return nil, nil }})
	assert.True(t, errors.IsInvalidArgument(err))

	err = r.Register(Registration{Name: "no-factory"})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRegistryMakeUnknownFactory(t *testing.T) {
	r := NewRegistry()
	_, err := r.Make("missing", nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestRegistryMakePropagatesFactoryError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Registration{
		Name: "failing",
		Factory: func(Params) (Block, error) {
			return nil, errors.InvalidArgumentf("failing", "New", "bad dtype")
		},
	}))

	_, err := r.Make("failing", nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "factory failing")
}

func TestParamsGetters(t *testing.T) {
	p := Params{
		"dtype":   "float64",
		"count":   3,
		"rate":    2.5,
		"enabled": true,
		"name":    "min",
		"routes":  []any{2, 0, 1},
	}

	dt, err := p.DType("dtype")
	require.NoError(t, err)
	assert.Equal(t, dtype.Float64, dt.Kind())

	count, err := p.Int("count", 0)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	missing, err := p.Int("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, missing)

	rate, err := p.Float("rate", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.5, rate)

	enabled, err := p.Bool("enabled", false)
	require.NoError(t, err)
	assert.True(t, enabled)

	name, err := p.String("name", "")
	require.NoError(t, err)
	assert.Equal(t, "min", name)

	routes, err := p.IntSlice("routes")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, routes)
}

func TestParamsTypeErrors(t *testing.T) {
	p := Params{"dtype": 42, "count": "three", "flag": "yes"}

	_, err := p.DType("dtype")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = p.DType("absent")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = p.Int("count", 0)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = p.Bool("flag", false)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestBaseSignals(t *testing.T) {
	b := NewBase("mute")
	b.RegisterSignal("muteChanged")

	var got []any
	require.NoError(t, b.Subscribe("muteChanged", func(v any) { got = append(got, v) }))

	b.EmitSignal("muteChanged", true)
	b.EmitSignal("muteChanged", false)
	assert.Equal(t, []any{true, false}, got)

	err := b.Subscribe("unknown", func(any) {})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestBaseNamedPorts(t *testing.T) {
	dt := dtype.MustParse("float32")
	b := NewBase("minmax")
	b.SetupInput(0, dt)
	b.SetupNamedOutput(0, "min", dt)
	b.SetupNamedOutput(1, "max", dt)

	assert.NotNil(t, b.OutputNamed("min"))
	assert.NotNil(t, b.OutputNamed("max"))
	assert.Nil(t, b.OutputNamed("median"))
	assert.Equal(t, "min", b.Output(0).Name())
	assert.Equal(t, 2, b.NumOutputs())
	assert.NotEmpty(t, b.UID())
}
