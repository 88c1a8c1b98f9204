package chain

import (
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/rs/zerolog/log"
)

// DustThreshold 低于该金额的输出不会被创建
const DustThreshold int64 = 546

// plan 选择输入、计算手续费与找零，返回最终交易和手续费
func plan(adapter Adapter, builder *signing.TransactionBuilder) (*Assembled, int64, error) {
	if err := validateBuilder(builder); err != nil {
		return nil, 0, err
	}

	target := sumOutputs(builder.Outputs)

	switch builder.InputSelector {
	case signing.SelectorUseAll:
		return tryInputs(adapter, builder, builder.Inputs, target)
	case signing.SelectorInOrder:
		for n := 1; n <= len(builder.Inputs); n++ {
			selected := builder.Inputs[:n]
			if sumInputs(selected) < target {
				continue
			}
			assembled, fee, err := tryInputs(adapter, builder, selected, target)
			if err == nil {
				log.Debug().Int("selected", n).Int("available", len(builder.Inputs)).Msg("Selected inputs in order")
				return assembled, fee, nil
			}
			if codeOf(err) != signing.ErrorNotEnoughUtxos {
				return nil, 0, err
			}
		}
		return nil, 0, failf(signing.ErrorNotEnoughUtxos, "inputs do not cover outputs %d and fee", target)
	default:
		return nil, 0, failf(signing.ErrorInvalidParams, "unsupported input selector %d", builder.InputSelector)
	}
}

// tryInputs 用给定输入组装交易；设置了找零脚本且找零不低于粉尘阈值时追加找零输出
func tryInputs(adapter Adapter, builder *signing.TransactionBuilder, inputs []*signing.Input, target int64) (*Assembled, int64, error) {
	total := sumInputs(inputs)

	if len(builder.ChangeScriptPubkey) > 0 {
		change := &signing.Output{ScriptPubkey: builder.ChangeScriptPubkey}
		outputs := append(append([]*signing.Output{}, builder.Outputs...), change)

		// 找零金额固定 8 字节，先用 0 估算大小
		draft, err := adapter.Assemble(builder, inputs, outputs)
		if err != nil {
			return nil, 0, err
		}
		fee := builder.FeePerVb * int64(draft.Vsize)
		if amount := total - target - fee; amount >= DustThreshold {
			change.Value = amount
			assembled, err := adapter.Assemble(builder, inputs, outputs)
			if err != nil {
				return nil, 0, err
			}
			return assembled, fee, nil
		}
	}

	assembled, err := adapter.Assemble(builder, inputs, builder.Outputs)
	if err != nil {
		return nil, 0, err
	}
	minFee := builder.FeePerVb * int64(assembled.Vsize)
	fee := total - target
	if fee < minFee {
		return nil, 0, failf(signing.ErrorNotEnoughUtxos, "inputs %d do not cover outputs %d and fee %d", total, target, minFee)
	}
	return assembled, fee, nil
}

func validateBuilder(builder *signing.TransactionBuilder) error {
	if len(builder.Inputs) == 0 {
		return failf(signing.ErrorInvalidParams, "no inputs")
	}
	if len(builder.Outputs) == 0 {
		return failf(signing.ErrorInvalidParams, "no outputs")
	}
	if builder.FeePerVb < 0 {
		return failf(signing.ErrorInvalidParams, "negative fee rate %d", builder.FeePerVb)
	}
	for i, input := range builder.Inputs {
		if input.GetOutPoint() == nil {
			return failf(signing.ErrorInvalidParams, "input %d has no out point", i)
		}
		if input.GetValue() <= 0 {
			return failf(signing.ErrorInvalidParams, "input %d has non-positive value %d", i, input.GetValue())
		}
	}
	for i, output := range builder.Outputs {
		if output == nil {
			return failf(signing.ErrorInvalidParams, "output %d is not set", i)
		}
		if output.Value < DustThreshold {
			return failf(signing.ErrorDustAmount, "output %d value %d is below dust threshold", i, output.Value)
		}
	}
	return nil
}

func sumInputs(inputs []*signing.Input) int64 {
	var total int64
	for _, input := range inputs {
		total += input.Value
	}
	return total
}

func sumOutputs(outputs []*signing.Output) int64 {
	var total int64
	for _, output := range outputs {
		total += output.Value
	}
	return total
}
