package common

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuiltinParametersValid(t *testing.T) {
	for _, params := range BuiltinFieldParameters() {
		params := params
		t.Run(params.Name, func(t *testing.T) {
			require.NoError(t, params.Validate())
			assert.Equal(t, params.NumBits, uint(params.Modulus().BitLen()))
			assert.Less(t, params.HighDigitBits()+1, params.DigitBits)
		})
	}
}

func TestBuiltinParametersDerived(t *testing.T) {
	type derived struct {
		highBits    uint
		packedBytes int
		is3Mod4     bool
	}
	expected := map[string]derived{
		"E-130":      {14, 17, true},
		"M-221":      {47, 28, false},
		"Curve25519": {31, 32, false},
		"Curve41417": {22, 52, true},
		"M-511":      {25, 64, false},
		"E-521":      {35, 66, true},
	}
	params := BuiltinFieldParameters()
	require.Len(t, params, len(expected))
	for _, p := range params {
		e, ok := expected[p.Name]
		require.True(t, ok, p.Name)
		assert.Equal(t, e.highBits, p.HighDigitBits(), p.Name)
		assert.Equal(t, e.packedBytes, p.PackedBytes(), p.Name)
		assert.Equal(t, e.is3Mod4, p.Is3Mod4(), p.Name)

		var modulus big.Int
		modulus.Mod(p.Modulus(), big.NewInt(4))
		assert.Equal(t, e.is3Mod4, modulus.Int64() == 3, p.Name)
		assert.Equal(t, uint(DefaultChainWindow), p.Window())
	}
}

func TestBuiltinParametersCopy(t *testing.T) {
	params := BuiltinFieldParameters()
	params[0].Name = "modified"
	assert.Equal(t, "E-130", BuiltinFieldParameters()[0].Name)
}

func TestValidateRejects(t *testing.T) {
	base := E130Parameters
	modifications := map[string]func(p *FieldParameters){
		"empty name":        func(p *FieldParameters) { p.Name = "" },
		"too few digits":    func(p *FieldParameters) { p.Digits = 1 },
		"too many digits":   func(p *FieldParameters) { p.Digits = MaxDigits + 1 },
		"narrow digits":     func(p *FieldParameters) { p.DigitBits = 30; p.MulDigitBits = 15 },
		"half width":        func(p *FieldParameters) { p.MulDigitBits = 28 },
		"too few bits":      func(p *FieldParameters) { p.NumBits = 116 },
		"no carry room":     func(p *FieldParameters) { p.NumBits = 173; p.C = 1 },
		"zero c":            func(p *FieldParameters) { p.C = 0 },
		"huge c":            func(p *FieldParameters) { p.C = 1 << 20 },
		"not prime":         func(p *FieldParameters) { p.C = 1 },
		"one mod 8":         func(p *FieldParameters) { p.NumBits = 128; p.C = 159 },
		"window":            func(p *FieldParameters) { p.ChainWindow = MaxChainWindow + 1 },
		"column overflow":   func(p *FieldParameters) { p.NumBits = 610; p.Digits = 11; p.C = 1; p.DigitBits = 60; p.MulDigitBits = 30 },
		"reduction headroom": func(p *FieldParameters) { p.NumBits = 176; p.Digits = 3; p.DigitBits = 60; p.MulDigitBits = 30; p.C = 5 },
	}
	for name, modify := range modifications {
		modify := modify
		t.Run(name, func(t *testing.T) {
			p := base
			modify(&p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFieldParameters))
		})
	}
}

func TestValidateCustomField(t *testing.T) {
	// 2^127 - 1 is 7 mod 8
	p := FieldParameters{Name: "M-127", NumBits: 127, C: 1, Digits: 3, DigitBits: 58, MulDigitBits: 29, ChainWindow: 3}
	require.NoError(t, p.Validate())
	assert.Equal(t, uint(11), p.HighDigitBits())
	assert.Equal(t, uint(3), p.Window())
	assert.Equal(t, 16, p.PackedBytes())
}

func TestFieldParametersYAML(t *testing.T) {
	in := Curve41417Parameters
	in.ChainWindow = 5
	encoded, err := yaml.Marshal(&in)
	require.NoError(t, err)
	var out FieldParameters
	require.NoError(t, yaml.Unmarshal(encoded, &out))
	assert.Equal(t, in, out)

	var fromText FieldParameters
	require.NoError(t, yaml.Unmarshal([]byte("name: M-221\nbits: 221\nc: 3\ndigits: 4\ndigitBits: 58\nmulDigitBits: 29\n"), &fromText))
	assert.Equal(t, M221Parameters, fromText)
}
