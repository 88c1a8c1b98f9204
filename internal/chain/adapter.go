// Package chain 是参考签名引擎：按链变体把 builder 模板组装成交易。
//
// 引擎不做密钥派生和签名，输入的 ScriptSig/Witness 原样写入交易；
// 它负责输入选择、手续费、找零、BIP-69 排序以及各链的序列化。
package chain

import (
	"fmt"

	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
)

// Adapter 把选定的输入和输出组装成某一链变体的交易
type Adapter interface {
	Assemble(builder *signing.TransactionBuilder, inputs []*signing.Input, outputs []*signing.Output) (*Assembled, error)
}

// Assembled 组装结果
type Assembled struct {
	Transaction signing.Transaction
	Encoded     []byte
	// Txid 按展示顺序（字节反转）保存
	Txid   []byte
	Vsize  uint64
	Weight uint64
}

// SigningFailure 携带返回给调用方的状态码
type SigningFailure struct {
	Code    signing.SigningError
	Message string
}

func (e *SigningFailure) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func failf(code signing.SigningError, format string, args ...interface{}) error {
	return &SigningFailure{Code: code, Message: fmt.Sprintf(format, args...)}
}

// codeOf 返回错误对应的状态码，未知错误视为内部错误
func codeOf(err error) signing.SigningError {
	var failure *SigningFailure
	if errors.As(err, &failure) {
		return failure.Code
	}
	return signing.ErrorInternal
}

// displayOrder 把内部字节序的哈希转换为展示顺序
func displayOrder(hash []byte) []byte {
	out := make([]byte, len(hash))
	for i, b := range hash {
		out[len(hash)-1-i] = b
	}
	return out
}

func sequenceOf(input *signing.Input) uint32 {
	if input.Sequence == 0 && !input.SequenceEnableZero {
		return 0xffffffff
	}
	return input.Sequence
}
