package chain

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil/txsort"
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
)

const (
	// ZcashSaplingVersion v4 交易版本，最高位为 overwintered 标志
	ZcashSaplingVersion uint32 = 4
	// ZcashSaplingVersionGroupID sapling 版本组
	ZcashSaplingVersionGroupID uint32 = 0x892f2085
	// ZcashSaplingBranchID 未指定时使用的共识分支
	ZcashSaplingBranchID uint32 = 0x76b809bb

	overwinteredFlag uint32 = 1 << 31
)

// ZcashAdapter 组装只含透明输入输出的 Zcash v4 (sapling) 交易
type ZcashAdapter struct{}

// NewZcashAdapter 创建一个 Zcash 适配器
func NewZcashAdapter() *ZcashAdapter {
	return &ZcashAdapter{}
}

// Assemble 复用 wire.MsgTx 构建与排序，再按 sapling 格式序列化
func (a *ZcashAdapter) Assemble(builder *signing.TransactionBuilder, inputs []*signing.Input, outputs []*signing.Output) (*Assembled, error) {
	tx, err := buildMsgTx(int32(ZcashSaplingVersion), builder.LockTime, inputs, outputs)
	if err != nil {
		return nil, err
	}
	if tx.HasWitness() {
		return nil, failf(signing.ErrorInvalidParams, "zcash does not support witness data")
	}
	if builder.Sort {
		txsort.InPlaceSort(tx)
	}

	branchID, expiryHeight := ZcashSaplingBranchID, uint32(0)
	if extra := builder.Zcash; extra != nil {
		if extra.BranchID != 0 {
			branchID = extra.BranchID
		}
		expiryHeight = extra.ExpiryHeight
	}

	var buf bytes.Buffer
	if err := writeSaplingTx(&buf, tx, expiryHeight); err != nil {
		return nil, errors.Wrap(err, "failed to serialize zcash transaction")
	}
	encoded := buf.Bytes()
	size := uint64(len(encoded))
	txid := chainhash.DoubleHashH(encoded)

	return &Assembled{
		Transaction: &signing.ZcashTransaction{
			Version:        ZcashSaplingVersion,
			VersionGroupID: ZcashSaplingVersionGroupID,
			BranchID:       branchID,
			LockTime:       tx.LockTime,
			ExpiryHeight:   expiryHeight,
			Inputs:         transactionInputs(tx),
			Outputs:        transactionOutputs(tx),
		},
		Encoded: encoded,
		Txid:    displayOrder(txid[:]),
		Vsize:   size,
		Weight:  size * 4,
	}, nil
}

// writeSaplingTx 写入 header、透明部分、lock time、expiry 以及空的 sapling/joinsplit 部分
func writeSaplingTx(w io.Writer, tx *wire.MsgTx, expiryHeight uint32) error {
	if err := writeUint32(w, ZcashSaplingVersion|overwinteredFlag); err != nil {
		return err
	}
	if err := writeUint32(w, ZcashSaplingVersionGroupID); err != nil {
		return err
	}

	if err := wire.WriteVarInt(w, 0, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, txIn := range tx.TxIn {
		if _, err := w.Write(txIn.PreviousOutPoint.Hash[:]); err != nil {
			return err
		}
		if err := writeUint32(w, txIn.PreviousOutPoint.Index); err != nil {
			return err
		}
		if err := wire.WriteVarBytes(w, 0, txIn.SignatureScript); err != nil {
			return err
		}
		if err := writeUint32(w, txIn.Sequence); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, 0, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, txOut := range tx.TxOut {
		if err := wire.WriteTxOut(w, 0, tx.Version, txOut); err != nil {
			return err
		}
	}

	if err := writeUint32(w, tx.LockTime); err != nil {
		return err
	}
	if err := writeUint32(w, expiryHeight); err != nil {
		return err
	}

	// valueBalance, vShieldedSpend, vShieldedOutput, vJoinSplit
	var valueBalance [8]byte
	if _, err := w.Write(valueBalance[:]); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if err := wire.WriteVarInt(w, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}
