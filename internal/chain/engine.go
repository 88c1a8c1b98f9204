package chain

import (
	"github.com/kashguard/go-txverify/internal/coin"
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Engine 按币种分发到对应的链适配器。Engine 无状态，可以并发使用
type Engine struct {
	adapters map[coin.Type]Adapter
}

// NewEngine 为注册表中的所有币种创建适配器
func NewEngine() *Engine {
	adapters := make(map[coin.Type]Adapter)
	for _, info := range coin.All() {
		switch info.Variant {
		case coin.VariantBitcoin:
			adapters[info.Type] = NewBitcoinAdapter(info.Segwit)
		case coin.VariantZcash:
			adapters[info.Type] = NewZcashAdapter()
		case coin.VariantDecred:
			adapters[info.Type] = NewDecredAdapter()
		}
	}
	return &Engine{adapters: adapters}
}

// Sign 组装交易；失败通过 SigningOutput.Error 返回，不会返回 nil
func (e *Engine) Sign(coinType coin.Type, input *signing.SigningInput) *signing.SigningOutput {
	adapter, ok := e.adapters[coinType]
	if !ok {
		return failure(failf(signing.ErrorUnsupportedCoin, "coin type %d is not supported", uint32(coinType)))
	}

	var builder *signing.TransactionBuilder
	switch template := input.GetTemplate().(type) {
	case *signing.TransactionBuilder:
		builder = template
	case *signing.Psbt:
		return failure(failf(signing.ErrorUnsupportedTemplate, "PSBT signing is not supported"))
	}
	if builder == nil {
		return failure(failf(signing.ErrorInvalidParams, "transaction builder is not set"))
	}

	assembled, fee, err := plan(adapter, builder)
	if err != nil {
		log.Debug().Err(err).Str("coin", coinType.String()).Msg("Failed to assemble transaction")
		return failure(err)
	}

	log.Debug().
		Str("coin", coinType.String()).
		Int("encoded_len", len(assembled.Encoded)).
		Uint64("vsize", assembled.Vsize).
		Int64("fee", fee).
		Msg("Assembled transaction")

	return &signing.SigningOutput{
		Transaction: assembled.Transaction,
		Encoded:     assembled.Encoded,
		Txid:        assembled.Txid,
		Vsize:       assembled.Vsize,
		Weight:      assembled.Weight,
		Fee:         fee,
		Error:       signing.ErrorOK,
	}
}

func failure(err error) *signing.SigningOutput {
	var sf *SigningFailure
	if errors.As(err, &sf) {
		return &signing.SigningOutput{Error: sf.Code, ErrorMessage: sf.Message}
	}
	return &signing.SigningOutput{Error: signing.ErrorInternal, ErrorMessage: err.Error()}
}
