// Package fixture 定义 YAML 格式的签名验证用例，并把它们转换为签名请求和期望结果
package fixture

import (
	"encoding/hex"
	"strings"

	"github.com/kashguard/go-txverify/internal/coin"
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/kashguard/go-txverify/internal/verify"
	"github.com/pkg/errors"
)

// File 一个 fixture 文件
type File struct {
	Cases []*Case `yaml:"cases"`
}

// Case 一个验证用例：请求、币种和期望结果
type Case struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Coin        string   `yaml:"coin"`
	Builder     *Builder `yaml:"builder,omitempty"`
	Psbt        string   `yaml:"psbt,omitempty"`
	Expected    Expected `yaml:"expected"`
	// ExpectError 期望的错误类别（configuration/engine/integrity/assertion），为空表示期望通过
	ExpectError string `yaml:"expect_error,omitempty"`

	// Source 用例所在的文件
	Source string `yaml:"-"`
}

// Builder 交易模板
type Builder struct {
	Version      int32    `yaml:"version,omitempty"`
	LockTime     uint32   `yaml:"lock_time,omitempty"`
	FeePerVb     int64    `yaml:"fee_per_vb,omitempty"`
	Selector     string   `yaml:"selector,omitempty"`
	Sort         bool     `yaml:"sort,omitempty"`
	ChangeScript string   `yaml:"change_script,omitempty"`
	Zcash        *Zcash   `yaml:"zcash,omitempty"`
	Inputs       []Input  `yaml:"inputs"`
	Outputs      []Output `yaml:"outputs"`
}

// Zcash Zcash 专用字段
type Zcash struct {
	BranchID     uint32 `yaml:"branch_id,omitempty"`
	ExpiryHeight uint32 `yaml:"expiry_height,omitempty"`
}

// Input 可花费输出；hash 为内部字节序的十六进制
type Input struct {
	Hash               string   `yaml:"hash"`
	Vout               uint32   `yaml:"vout"`
	Value              int64    `yaml:"value"`
	Sequence           uint32   `yaml:"sequence,omitempty"`
	SequenceEnableZero bool     `yaml:"sequence_enable_zero,omitempty"`
	ScriptSig          string   `yaml:"script_sig,omitempty"`
	Witness            []string `yaml:"witness,omitempty"`
}

// Output 交易输出
type Output struct {
	Value  int64  `yaml:"value"`
	Script string `yaml:"script"`
}

// Expected 期望的签名结果
type Expected struct {
	Encoded string  `yaml:"encoded"`
	Txid    string  `yaml:"txid"`
	Inputs  []int64 `yaml:"inputs"`
	Outputs []int64 `yaml:"outputs"`
	Vsize   uint64  `yaml:"vsize"`
	Weight  uint64  `yaml:"weight"`
	Fee     int64   `yaml:"fee"`
}

// CoinType 解析用例的币种
func (c *Case) CoinType() (coin.Type, error) {
	coinType, err := coin.Parse(c.Coin)
	if err != nil {
		return 0, errors.Wrapf(err, "case %q", c.Name)
	}
	return coinType, nil
}

// SigningInput 把用例转换为签名请求；psbt 优先于 builder
func (c *Case) SigningInput() (*signing.SigningInput, error) {
	if c.Psbt != "" {
		psbt, err := decodeHex(c.Psbt)
		if err != nil {
			return nil, errors.Wrapf(err, "case %q: psbt", c.Name)
		}
		return &signing.SigningInput{Template: &signing.Psbt{Psbt: psbt}}, nil
	}
	if c.Builder == nil {
		return &signing.SigningInput{}, nil
	}

	builder, err := c.Builder.transactionBuilder()
	if err != nil {
		return nil, errors.Wrapf(err, "case %q", c.Name)
	}
	return &signing.SigningInput{Template: builder}, nil
}

// VerifyExpected 返回 harness 使用的期望结果
func (c *Case) VerifyExpected() verify.Expected {
	return verify.Expected{
		Encoded: c.Expected.Encoded,
		Txid:    c.Expected.Txid,
		Inputs:  c.Expected.Inputs,
		Outputs: c.Expected.Outputs,
		Vsize:   c.Expected.Vsize,
		Weight:  c.Expected.Weight,
		Fee:     c.Expected.Fee,
	}
}

// Run 使用新的 harness 签名并验证用例
func (c *Case) Run(signer verify.Signer) (*verify.Report, error) {
	coinType, err := c.CoinType()
	if err != nil {
		return nil, err
	}
	input, err := c.SigningInput()
	if err != nil {
		return nil, err
	}
	return verify.NewHarness(signer, input).Coin(coinType).Sign(c.VerifyExpected())
}

// Passed 判断 Run 的结果是否符合用例的期望
func (c *Case) Passed(err error) bool {
	if c.ExpectError == "" {
		return err == nil
	}
	return err != nil && verify.KindOf(err).String() == strings.ToLower(c.ExpectError)
}

func (b *Builder) transactionBuilder() (*signing.TransactionBuilder, error) {
	selector, err := parseSelector(b.Selector)
	if err != nil {
		return nil, err
	}
	changeScript, err := decodeHex(b.ChangeScript)
	if err != nil {
		return nil, errors.Wrap(err, "change_script")
	}

	builder := &signing.TransactionBuilder{
		Version:            b.Version,
		LockTime:           b.LockTime,
		ChangeScriptPubkey: changeScript,
		FeePerVb:           b.FeePerVb,
		InputSelector:      selector,
		Sort:               b.Sort,
	}
	if b.Zcash != nil {
		builder.Zcash = &signing.ZcashExtra{
			BranchID:     b.Zcash.BranchID,
			ExpiryHeight: b.Zcash.ExpiryHeight,
		}
	}

	for i, in := range b.Inputs {
		input, err := in.input()
		if err != nil {
			return nil, errors.Wrapf(err, "input %d", i)
		}
		builder.Inputs = append(builder.Inputs, input)
	}
	for i, out := range b.Outputs {
		script, err := decodeHex(out.Script)
		if err != nil {
			return nil, errors.Wrapf(err, "output %d", i)
		}
		builder.Outputs = append(builder.Outputs, &signing.Output{Value: out.Value, ScriptPubkey: script})
	}
	return builder, nil
}

func (in Input) input() (*signing.Input, error) {
	hash, err := decodeHex(in.Hash)
	if err != nil {
		return nil, errors.Wrap(err, "hash")
	}
	scriptSig, err := decodeHex(in.ScriptSig)
	if err != nil {
		return nil, errors.Wrap(err, "script_sig")
	}

	var witness [][]byte
	for i, item := range in.Witness {
		b, err := decodeHex(item)
		if err != nil {
			return nil, errors.Wrapf(err, "witness %d", i)
		}
		witness = append(witness, b)
	}

	return &signing.Input{
		OutPoint:           &signing.OutPoint{Hash: hash, Vout: in.Vout},
		Value:              in.Value,
		Sequence:           in.Sequence,
		SequenceEnableZero: in.SequenceEnableZero,
		ScriptSig:          scriptSig,
		Witness:            witness,
	}, nil
}

func parseSelector(s string) (signing.InputSelector, error) {
	switch strings.ToLower(s) {
	case "", "use_all":
		return signing.SelectorUseAll, nil
	case "in_order", "select_in_order":
		return signing.SelectorInOrder, nil
	default:
		return 0, errors.Errorf("unknown input selector %q", s)
	}
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex %q", s)
	}
	return b, nil
}
