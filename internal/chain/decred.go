package chain

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrutil/v4/txsort"
	"github.com/decred/dcrd/wire"
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
)

// DecredAdapter 基于 dcrd wire 的 Decred 交易组装
type DecredAdapter struct{}

// NewDecredAdapter 创建一个 Decred 适配器
func NewDecredAdapter() *DecredAdapter {
	return &DecredAdapter{}
}

// Assemble 构建 dcrd wire.MsgTx；txid 是前缀哈希，vsize 等于完整序列化长度
func (a *DecredAdapter) Assemble(builder *signing.TransactionBuilder, inputs []*signing.Input, outputs []*signing.Output) (*Assembled, error) {
	tx := wire.NewMsgTx()
	if builder.Version != 0 {
		tx.Version = uint16(builder.Version)
	}
	tx.LockTime = builder.LockTime

	for i, input := range inputs {
		if len(input.Witness) > 0 {
			return nil, failf(signing.ErrorInvalidParams, "decred does not support witness data")
		}
		hash, err := chainhash.NewHash(input.GetOutPoint().GetHash())
		if err != nil {
			return nil, failf(signing.ErrorInvalidParams, "input %d: %v", i, err)
		}
		txIn := wire.NewTxIn(wire.NewOutPoint(hash, input.OutPoint.Vout, wire.TxTreeRegular), input.Value, input.ScriptSig)
		txIn.Sequence = sequenceOf(input)
		tx.AddTxIn(txIn)
	}
	for _, output := range outputs {
		tx.AddTxOut(wire.NewTxOut(output.Value, output.ScriptPubkey))
	}
	if builder.Sort {
		txsort.InPlaceSort(tx)
	}

	encoded, err := tx.Bytes()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize decred transaction")
	}
	size := uint64(len(encoded))
	txid := tx.TxHash()

	return &Assembled{
		Transaction: decredTransaction(tx),
		Encoded:     encoded,
		Txid:        displayOrder(txid[:]),
		Vsize:       size,
		Weight:      size * 4,
	}, nil
}

func decredTransaction(tx *wire.MsgTx) *signing.DecredTransaction {
	inputs := make([]*signing.DecredTransactionInput, 0, len(tx.TxIn))
	for _, txIn := range tx.TxIn {
		hash := txIn.PreviousOutPoint.Hash
		inputs = append(inputs, &signing.DecredTransactionInput{
			OutPoint: &signing.DecredOutPoint{
				Hash: append([]byte(nil), hash[:]...),
				Vout: txIn.PreviousOutPoint.Index,
				Tree: int32(txIn.PreviousOutPoint.Tree),
			},
			Sequence:    txIn.Sequence,
			ValueIn:     txIn.ValueIn,
			BlockHeight: txIn.BlockHeight,
			BlockIndex:  txIn.BlockIndex,
			ScriptSig:   txIn.SignatureScript,
		})
	}

	outputs := make([]*signing.DecredTransactionOutput, 0, len(tx.TxOut))
	for _, txOut := range tx.TxOut {
		outputs = append(outputs, &signing.DecredTransactionOutput{
			Value:        txOut.Value,
			Version:      uint32(txOut.Version),
			ScriptPubkey: txOut.PkScript,
		})
	}

	return &signing.DecredTransaction{
		SerializationType: uint32(tx.SerType),
		Version:           uint32(tx.Version),
		LockTime:          tx.LockTime,
		Expiry:            tx.Expiry,
		Inputs:            inputs,
		Outputs:           outputs,
	}
}
