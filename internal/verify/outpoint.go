package verify

import (
	"encoding/hex"
	"fmt"

	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
)

// OutPointKey 以交易哈希和输出序号标识一个 UTXO；哈希存为 string 以便作为 map 键
type OutPointKey struct {
	hash  string
	index uint32
}

// NewOutPointKey 复制 hash 生成键
func NewOutPointKey(hash []byte, index uint32) OutPointKey {
	return OutPointKey{hash: string(hash), index: index}
}

// OutPointKeyFromProto 转换 Bitcoin/Zcash out point
func OutPointKeyFromProto(op *signing.OutPoint) (OutPointKey, error) {
	if op == nil {
		return OutPointKey{}, ErrOutPointNotSet
	}
	return NewOutPointKey(op.Hash, op.Vout), nil
}

// OutPointKeyFromDecred 转换 Decred out point，tree 不参与键
func OutPointKeyFromDecred(op *signing.DecredOutPoint) (OutPointKey, error) {
	if op == nil {
		return OutPointKey{}, ErrOutPointNotSet
	}
	return NewOutPointKey(op.Hash, op.Vout), nil
}

// Hash 返回交易哈希的副本
func (k OutPointKey) Hash() []byte {
	return []byte(k.hash)
}

// Index 返回输出序号
func (k OutPointKey) Index() uint32 {
	return k.index
}

func (k OutPointKey) String() string {
	return fmt.Sprintf("%s:%d", hex.EncodeToString([]byte(k.hash)), k.index)
}

// SpendMap out point 到金额的映射
type SpendMap map[OutPointKey]int64

// BuildSpendMap 收集请求输入的金额；重复的 out point 以后者为准
func BuildSpendMap(builder *signing.TransactionBuilder) (SpendMap, error) {
	inputs := builder.GetInputs()

	spends := make(SpendMap, len(inputs))
	for i, utxo := range inputs {
		key, err := OutPointKeyFromProto(utxo.GetOutPoint())
		if err != nil {
			return nil, integrityError(errors.Wrapf(err, "request input %d", i))
		}
		spends[key] = utxo.GetValue()
	}
	return spends, nil
}

// Amounts 按顺序查找金额；缺失的键返回 integrity 错误，不使用默认值
func (m SpendMap) Amounts(keys []OutPointKey) ([]int64, error) {
	amounts := make([]int64, 0, len(keys))
	for _, key := range keys {
		amount, ok := m[key]
		if !ok {
			return nil, integrityError(errors.Wrapf(ErrUnknownOutPoint, "signed transaction does not contain %s UTXO", key))
		}
		amounts = append(amounts, amount)
	}
	return amounts, nil
}
