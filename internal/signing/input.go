// Package signing 定义签名引擎的请求与响应消息。
//
// 这些类型对应签名引擎的外部消息格式：请求携带交易模板（builder 或 PSBT），
// 响应携带某一链变体的已签名交易。
package signing

// Template 交易模板，取值只能是 *TransactionBuilder 或 *Psbt
type Template interface {
	isTemplate()
}

func (*TransactionBuilder) isTemplate() {}
func (*Psbt) isTemplate()               {}

// SigningInput 签名请求
type SigningInput struct {
	Template Template
}

// GetTemplate 返回交易模板，input 为 nil 时返回 nil
func (x *SigningInput) GetTemplate() Template {
	if x == nil {
		return nil
	}
	return x.Template
}

// GetBuilder 返回 builder 模式的模板，其他模式返回 nil
func (x *SigningInput) GetBuilder() *TransactionBuilder {
	if b, ok := x.GetTemplate().(*TransactionBuilder); ok {
		return b
	}
	return nil
}

// InputSelector 输入选择策略
type InputSelector int32

const (
	// SelectorUseAll 使用全部输入
	SelectorUseAll InputSelector = iota
	// SelectorInOrder 按请求顺序选择，直到覆盖输出与手续费
	SelectorInOrder
)

func (s InputSelector) String() string {
	switch s {
	case SelectorUseAll:
		return "use_all"
	case SelectorInOrder:
		return "select_in_order"
	default:
		return "unknown"
	}
}

// TransactionBuilder builder 模式的交易模板
type TransactionBuilder struct {
	Version            int32
	LockTime           uint32
	Inputs             []*Input
	Outputs            []*Output
	ChangeScriptPubkey []byte
	FeePerVb           int64
	InputSelector      InputSelector
	// Sort 为 true 时按 BIP-69 对输入输出排序
	Sort  bool
	Zcash *ZcashExtra
}

// GetInputs 返回输入列表
func (x *TransactionBuilder) GetInputs() []*Input {
	if x == nil {
		return nil
	}
	return x.Inputs
}

// GetOutputs 返回输出列表
func (x *TransactionBuilder) GetOutputs() []*Output {
	if x == nil {
		return nil
	}
	return x.Outputs
}

// ZcashExtra Zcash sapling 交易的附加字段
type ZcashExtra struct {
	BranchID     uint32
	ExpiryHeight uint32
}

// Psbt PSBT 模式的交易模板
type Psbt struct {
	Psbt []byte
}

// OutPoint 被花费输出的引用
type OutPoint struct {
	Hash []byte
	Vout uint32
}

// GetHash 返回交易哈希
func (x *OutPoint) GetHash() []byte {
	if x == nil {
		return nil
	}
	return x.Hash
}

// GetVout 返回输出序号
func (x *OutPoint) GetVout() uint32 {
	if x == nil {
		return 0
	}
	return x.Vout
}

// Input 可花费的输入
type Input struct {
	OutPoint *OutPoint
	Value    int64
	Sequence uint32
	// SequenceEnableZero 为 false 时，Sequence 为 0 表示 0xffffffff
	SequenceEnableZero bool
	ScriptSig          []byte
	Witness            [][]byte
}

// GetOutPoint 返回输入引用的 OutPoint
func (x *Input) GetOutPoint() *OutPoint {
	if x == nil {
		return nil
	}
	return x.OutPoint
}

// GetValue 返回输入金额
func (x *Input) GetValue() int64 {
	if x == nil {
		return 0
	}
	return x.Value
}

// Output 交易输出
type Output struct {
	Value        int64
	ScriptPubkey []byte
}
