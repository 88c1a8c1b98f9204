package chain

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil/txsort"
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
)

// BitcoinAdapter 基于 btcd wire 的通用 UTXO 交易组装
type BitcoinAdapter struct {
	segwit bool
}

// NewBitcoinAdapter 创建一个 Bitcoin 适配器，segwit 为 false 时拒绝带 witness 的输入
func NewBitcoinAdapter(segwit bool) *BitcoinAdapter {
	return &BitcoinAdapter{segwit: segwit}
}

// Assemble 构建 wire.MsgTx，按需 BIP-69 排序并序列化
func (a *BitcoinAdapter) Assemble(builder *signing.TransactionBuilder, inputs []*signing.Input, outputs []*signing.Output) (*Assembled, error) {
	version := builder.Version
	if version == 0 {
		version = 1
	}

	tx, err := buildMsgTx(version, builder.LockTime, inputs, outputs)
	if err != nil {
		return nil, err
	}
	if tx.HasWitness() && !a.segwit {
		return nil, failf(signing.ErrorInvalidParams, "coin does not support witness data")
	}
	if builder.Sort {
		txsort.InPlaceSort(tx)
	}

	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to serialize transaction")
	}

	// weight = base * 3 + total (BIP-141)
	weight := uint64(tx.SerializeSizeStripped()*3 + tx.SerializeSize())
	txid := tx.TxHash()

	return &Assembled{
		Transaction: bitcoinTransaction(tx),
		Encoded:     buf.Bytes(),
		Txid:        displayOrder(txid[:]),
		Vsize:       (weight + 3) / 4,
		Weight:      weight,
	}, nil
}

// buildMsgTx 用请求的输入输出构建 wire.MsgTx，Zcash 适配器复用它
func buildMsgTx(version int32, lockTime uint32, inputs []*signing.Input, outputs []*signing.Output) (*wire.MsgTx, error) {
	tx := wire.NewMsgTx(version)
	tx.LockTime = lockTime

	for i, input := range inputs {
		hash, err := chainhash.NewHash(input.GetOutPoint().GetHash())
		if err != nil {
			return nil, failf(signing.ErrorInvalidParams, "input %d: %v", i, err)
		}
		txIn := wire.NewTxIn(wire.NewOutPoint(hash, input.OutPoint.Vout), input.ScriptSig, input.Witness)
		txIn.Sequence = sequenceOf(input)
		tx.AddTxIn(txIn)
	}
	for _, output := range outputs {
		tx.AddTxOut(wire.NewTxOut(output.Value, output.ScriptPubkey))
	}
	return tx, nil
}

func bitcoinTransaction(tx *wire.MsgTx) *signing.BitcoinTransaction {
	return &signing.BitcoinTransaction{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Inputs:   transactionInputs(tx),
		Outputs:  transactionOutputs(tx),
	}
}

func transactionInputs(tx *wire.MsgTx) []*signing.TransactionInput {
	inputs := make([]*signing.TransactionInput, 0, len(tx.TxIn))
	for _, txIn := range tx.TxIn {
		hash := txIn.PreviousOutPoint.Hash
		inputs = append(inputs, &signing.TransactionInput{
			OutPoint: &signing.OutPoint{
				Hash: append([]byte(nil), hash[:]...),
				Vout: txIn.PreviousOutPoint.Index,
			},
			Sequence:  txIn.Sequence,
			ScriptSig: txIn.SignatureScript,
			Witness:   txIn.Witness,
		})
	}
	return inputs
}

func transactionOutputs(tx *wire.MsgTx) []*signing.TransactionOutput {
	outputs := make([]*signing.TransactionOutput, 0, len(tx.TxOut))
	for _, txOut := range tx.TxOut {
		outputs = append(outputs, &signing.TransactionOutput{
			ScriptPubkey: txOut.PkScript,
			Value:        txOut.Value,
		})
	}
	return outputs
}
