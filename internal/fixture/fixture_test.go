package fixture_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kashguard/go-txverify/internal/chain"
	"github.com/kashguard/go-txverify/internal/coin"
	"github.com/kashguard/go-txverify/internal/fixture"
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/kashguard/go-txverify/internal/verify"
	"github.com/kashguard/go-txverify/internal/verify/verifytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturesDir = "../../testdata/fixtures"

func TestLoadDirectory(t *testing.T) {
	cases, err := fixture.Load(fixturesDir)
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	names := make([]string, 0, len(cases))
	for _, c := range cases {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Source)
	}
	assert.Contains(t, names, "bitcoin_bip69_sorted")
	assert.Contains(t, names, "decred_p2pkh")
	assert.Contains(t, names, "decred_sorted")
	assert.Contains(t, names, "zcash_sapling_transparent")

	// bitcoin.yaml, decred.yaml, zcash.yaml
	assert.Equal(t, "bitcoin_bip69_sorted", names[0])
	assert.Equal(t, "zcash_sapling_transparent", names[len(names)-1])
}

func TestLoadDirectoryDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.yaml")
	second := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(first, []byte("cases:\n  - name: shared\n    coin: bitcoin\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("cases:\n  - name: other\n    coin: zcash\n  - name: shared\n    coin: zcash\n"), 0o600))

	_, err := fixture.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate case name "shared"`)
	assert.Contains(t, err.Error(), first)
	assert.Contains(t, err.Error(), second)

	// each file still loads on its own
	cases, err := fixture.Load(second)
	require.NoError(t, err)
	assert.Len(t, cases, 2)
}

func TestFixturesAgainstEngine(t *testing.T) {
	cases, err := fixture.Load(fixturesDir)
	require.NoError(t, err)

	engine := chain.NewEngine()
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			_, err := c.Run(engine)
			assert.True(t, c.Passed(err), "unexpected result: %v", err)
		})
	}
}

func TestDecode(t *testing.T) {
	doc := `
cases:
  - name: minimal
    coin: dogecoin
    builder:
      selector: in_order
      change_script: "0x0014aa"
      inputs:
        - hash: "01"
          vout: 3
          value: 1000
          sequence_enable_zero: true
          witness: ["aa", "bb"]
      outputs:
        - value: 900
          script: "51"
    expected:
      inputs: [1000]
`
	cases, err := fixture.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	coinType, err := c.CoinType()
	require.NoError(t, err)
	assert.Equal(t, coin.Dogecoin, coinType)

	input, err := c.SigningInput()
	require.NoError(t, err)
	builder := input.GetBuilder()
	require.NotNil(t, builder)
	assert.Equal(t, signing.SelectorInOrder, builder.InputSelector)
	assert.Equal(t, []byte{0x00, 0x14, 0xaa}, builder.ChangeScriptPubkey)
	require.Len(t, builder.Inputs, 1)
	assert.Equal(t, []byte{0x01}, builder.Inputs[0].OutPoint.Hash)
	assert.Equal(t, uint32(3), builder.Inputs[0].OutPoint.Vout)
	assert.True(t, builder.Inputs[0].SequenceEnableZero)
	assert.Equal(t, [][]byte{{0xaa}, {0xbb}}, builder.Inputs[0].Witness)
	require.Len(t, builder.Outputs, 1)
	assert.Equal(t, []byte{0x51}, builder.Outputs[0].ScriptPubkey)

	assert.Equal(t, verify.Expected{Inputs: []int64{1000}}, c.VerifyExpected())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown field", doc: "cases:\n  - name: a\n    colour: red\n"},
		{name: "missing name", doc: "cases:\n  - coin: bitcoin\n"},
		{name: "duplicate name", doc: "cases:\n  - name: a\n  - name: a\n"},
		{name: "not yaml", doc: "cases: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixture.Decode(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	cases, err := fixture.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestCaseConversionErrors(t *testing.T) {
	tests := []struct {
		name string
		c    fixture.Case
	}{
		{name: "bad psbt hex", c: fixture.Case{Name: "a", Psbt: "zz"}},
		{name: "bad input hash", c: fixture.Case{Name: "a", Builder: &fixture.Builder{Inputs: []fixture.Input{{Hash: "xyz"}}}}},
		{name: "bad witness", c: fixture.Case{Name: "a", Builder: &fixture.Builder{Inputs: []fixture.Input{{Hash: "aa", Witness: []string{"0"}}}}}},
		{name: "bad output script", c: fixture.Case{Name: "a", Builder: &fixture.Builder{Outputs: []fixture.Output{{Script: "q"}}}}},
		{name: "bad selector", c: fixture.Case{Name: "a", Builder: &fixture.Builder{Selector: "random"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.c.SigningInput()
			assert.Error(t, err)
		})
	}

	_, err := (&fixture.Case{Name: "a", Coin: "ethereum"}).CoinType()
	assert.Error(t, err)
}

func TestCaseTemplates(t *testing.T) {
	input, err := (&fixture.Case{Name: "psbt", Psbt: "70736274ff"}).SigningInput()
	require.NoError(t, err)
	psbt, ok := input.GetTemplate().(*signing.Psbt)
	require.True(t, ok)
	assert.Equal(t, []byte("psbt\xff"), psbt.Psbt)

	input, err = (&fixture.Case{Name: "empty"}).SigningInput()
	require.NoError(t, err)
	assert.Nil(t, input.GetTemplate())
}

func TestCaseRunWithoutTemplate(t *testing.T) {
	c := &fixture.Case{Name: "empty", Coin: "bitcoin", ExpectError: "Configuration"}

	var calls int
	signer := verify.SignerFunc(func(coin.Type, *signing.SigningInput) *signing.SigningOutput {
		calls++
		return &signing.SigningOutput{}
	})

	_, err := c.Run(signer)
	verifytest.RequireKind(t, err, verify.KindConfiguration)
	assert.True(t, c.Passed(err))
	assert.Zero(t, calls)
}

func TestCasePassed(t *testing.T) {
	pass := &fixture.Case{}
	assert.True(t, pass.Passed(nil))
	assert.False(t, pass.Passed(&verify.Error{Kind: verify.KindAssertion, Err: verify.ErrMismatch}))

	fail := &fixture.Case{ExpectError: "assertion"}
	assert.False(t, fail.Passed(nil))
	assert.True(t, fail.Passed(&verify.Error{Kind: verify.KindAssertion, Err: verify.ErrMismatch}))
	assert.False(t, fail.Passed(&verify.Error{Kind: verify.KindEngine, Err: verify.ErrSigningFailed}))
}

func TestLoadFileAndMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "one.yml")
	require.NoError(t, os.WriteFile(path, []byte("cases:\n  - name: only\n    coin: bitcoin\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	cases, err := fixture.Load(path)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, path, cases[0].Source)

	cases, err = fixture.Load(dir)
	require.NoError(t, err)
	assert.Len(t, cases, 1)

	_, err = fixture.Load(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
