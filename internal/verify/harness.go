// Package verify 校验签名引擎产出的交易与请求一致
//
// 引擎可能重排或挑选输入，因此输入金额通过 out point 在请求构建的 SpendMap 中查找，
// 再与输出、编码、txid、大小和手续费一起按位置比较
package verify

import (
	"encoding/hex"

	"github.com/kashguard/go-txverify/internal/coin"
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Signer 为指定币种签名；总是返回输出，失败通过 SigningOutput.Error 报告
type Signer interface {
	Sign(coinType coin.Type, input *signing.SigningInput) *signing.SigningOutput
}

// SignerFunc 把函数适配为 Signer
type SignerFunc func(coinType coin.Type, input *signing.SigningInput) *signing.SigningOutput

func (f SignerFunc) Sign(coinType coin.Type, input *signing.SigningInput) *signing.SigningOutput {
	return f(coinType, input)
}

// Harness 校验一对请求/响应；链式配置，Sign 时校验配置，最多签名一次
type Harness struct {
	signer   Signer
	input    *signing.SigningInput
	coinType coin.Type
	coinSet  bool
	used     bool
}

// NewHarness 为请求创建 Harness
func NewHarness(signer Signer, input *signing.SigningInput) *Harness {
	return &Harness{
		signer: signer,
		input:  input,
	}
}

// Coin 设置签名币种（必填）
func (h *Harness) Coin(coinType coin.Type) *Harness {
	h.coinType = coinType
	h.coinSet = true
	return h
}

// Sign 调用一次签名器并校验输出；配置错误在调用签名器之前返回
func (h *Harness) Sign(expected Expected) (*Report, error) {
	if h.used {
		return nil, configurationError(ErrHarnessUsed)
	}
	if h.signer == nil {
		return nil, configurationError(ErrSignerNotSet)
	}
	if !h.coinSet {
		return nil, configurationError(ErrCoinTypeNotSet)
	}
	builder, err := h.transactionBuilder()
	if err != nil {
		return nil, err
	}

	h.used = true
	output := h.signer.Sign(h.coinType, h.input)

	return h.verifyOutput(builder, output, expected)
}

// VerifyOutput 校验已从签名器取得的输出
func (h *Harness) VerifyOutput(output *signing.SigningOutput, expected Expected) (*Report, error) {
	builder, err := h.transactionBuilder()
	if err != nil {
		return nil, err
	}
	return h.verifyOutput(builder, output, expected)
}

func (h *Harness) verifyOutput(builder *signing.TransactionBuilder, output *signing.SigningOutput, expected Expected) (*Report, error) {
	if output == nil {
		return nil, &Error{Kind: KindEngine, Err: errors.Wrap(ErrSigningFailed, "signer returned no output")}
	}
	if output.Error != signing.ErrorOK {
		return nil, &Error{
			Kind: KindEngine,
			Err:  errors.Wrapf(ErrSigningFailed, "%s: %s", output.Error, output.ErrorMessage),
		}
	}

	// 通过 out point 取得所有 UTXO 金额
	inputs, err := h.transactionInputAmounts(builder, output.Transaction)
	if err != nil {
		return nil, err
	}
	outputs, err := TransactionOutputAmounts(output.Transaction)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Encoded: hex.EncodeToString(output.Encoded),
		Txid:    hex.EncodeToString(output.Txid),
		Inputs:  inputs,
		Outputs: outputs,
		Vsize:   output.Vsize,
		Weight:  output.Weight,
		Fee:     output.Fee,
	}

	log.Debug().
		Str("coin", h.coinType.String()).
		Str("txid", report.Txid).
		Ints64("inputs", inputs).
		Ints64("outputs", outputs).
		Int64("fee", report.Fee).
		Msg("Reconciled signed transaction")

	if err := report.Compare(expected); err != nil {
		log.Warn().Err(err).Str("coin", h.coinType.String()).Msg("Signed transaction does not match expectation")
		return report, err
	}
	return report, nil
}

func (h *Harness) transactionInputAmounts(builder *signing.TransactionBuilder, tx signing.Transaction) ([]int64, error) {
	spends, err := BuildSpendMap(builder)
	if err != nil {
		return nil, err
	}
	outPoints, err := TransactionOutPoints(tx)
	if err != nil {
		return nil, err
	}
	return spends.Amounts(outPoints)
}

func (h *Harness) transactionBuilder() (*signing.TransactionBuilder, error) {
	switch template := h.input.GetTemplate().(type) {
	case *signing.TransactionBuilder:
		if template == nil {
			return nil, configurationError(ErrTemplateNotSet)
		}
		return template, nil
	case *signing.Psbt:
		return nil, configurationError(ErrPsbtUnsupported)
	default:
		return nil, configurationError(ErrTemplateNotSet)
	}
}
