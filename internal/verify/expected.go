package verify

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// Expected 签名交易的期望值；Encoded 和 Txid 为十六进制，Inputs/Outputs 按位置比较
type Expected struct {
	Encoded string
	Txid    string
	Inputs  []int64
	Outputs []int64
	Vsize   uint64
	Weight  uint64
	Fee     int64
}

// Report 从签名交易中得到的各项值
type Report struct {
	Encoded string
	Txid    string
	Inputs  []int64
	Outputs []int64
	Vsize   uint64
	Weight  uint64
	Fee     int64
}

// Expected 把报告转为期望值，可用于生成新的 fixture
func (r *Report) Expected() Expected {
	return Expected{
		Encoded: r.Encoded,
		Txid:    r.Txid,
		Inputs:  slices.Clone(r.Inputs),
		Outputs: slices.Clone(r.Outputs),
		Vsize:   r.Vsize,
		Weight:  r.Weight,
		Fee:     r.Fee,
	}
}

// Compare 返回第一个与期望不符字段的断言错误
func (r *Report) Compare(expected Expected) error {
	if r.Encoded != strings.ToLower(expected.Encoded) {
		return mismatch("encoded", "Wrong encoded signed transaction", expected.Encoded, r.Encoded)
	}
	if r.Txid != strings.ToLower(expected.Txid) {
		return mismatch("txid", "Wrong txid", expected.Txid, r.Txid)
	}
	if !slices.Equal(r.Inputs, expected.Inputs) {
		return mismatch("inputs", "Wrong UTXOs", expected.Inputs, r.Inputs)
	}
	if !slices.Equal(r.Outputs, expected.Outputs) {
		return mismatch("outputs", "Wrong Outputs", expected.Outputs, r.Outputs)
	}
	if r.Vsize != expected.Vsize {
		return mismatch("vsize", "Wrong vsize", expected.Vsize, r.Vsize)
	}
	if r.Weight != expected.Weight {
		return mismatch("weight", "Wrong weight", expected.Weight, r.Weight)
	}
	if r.Fee != expected.Fee {
		return mismatch("fee", "Wrong fee", expected.Fee, r.Fee)
	}
	return nil
}

func mismatch(field, message string, expected, actual any) error {
	return &Error{
		Kind:  KindAssertion,
		Field: field,
		Err:   errors.Wrapf(ErrMismatch, "%s: expected %v, got %v", message, expected, actual),
	}
}
