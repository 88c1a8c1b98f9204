package signing

// SigningError 签名引擎返回的状态码
type SigningError int32

const (
	ErrorOK SigningError = iota
	ErrorInvalidParams
	ErrorNotEnoughUtxos
	ErrorDustAmount
	ErrorUnsupportedTemplate
	ErrorUnsupportedCoin
	ErrorInternal
)

var signingErrorNames = map[SigningError]string{
	ErrorOK:                  "OK",
	ErrorInvalidParams:       "Error_invalid_params",
	ErrorNotEnoughUtxos:      "Error_not_enough_utxos",
	ErrorDustAmount:          "Error_dust_amount",
	ErrorUnsupportedTemplate: "Error_unsupported_template",
	ErrorUnsupportedCoin:     "Error_unsupported_coin",
	ErrorInternal:            "Error_internal",
}

func (e SigningError) String() string {
	if name, ok := signingErrorNames[e]; ok {
		return name
	}
	return "Error_unknown"
}

// Transaction 已签名交易，取值只能是 *BitcoinTransaction、*ZcashTransaction 或 *DecredTransaction
type Transaction interface {
	isTransaction()
}

func (*BitcoinTransaction) isTransaction() {}
func (*ZcashTransaction) isTransaction()   {}
func (*DecredTransaction) isTransaction()  {}

// SigningOutput 签名响应
type SigningOutput struct {
	Transaction  Transaction
	Encoded      []byte
	Txid         []byte
	Vsize        uint64
	Weight       uint64
	Fee          int64
	Error        SigningError
	ErrorMessage string
}

// GetTransaction 返回已签名交易，output 为 nil 时返回 nil
func (x *SigningOutput) GetTransaction() Transaction {
	if x == nil {
		return nil
	}
	return x.Transaction
}

// TransactionInput 已签名交易的输入（Bitcoin 与 Zcash 共用）
type TransactionInput struct {
	OutPoint  *OutPoint
	Sequence  uint32
	ScriptSig []byte
	Witness   [][]byte
}

// TransactionOutput 已签名交易的输出（Bitcoin 与 Zcash 共用）
type TransactionOutput struct {
	ScriptPubkey []byte
	Value        int64
}

// BitcoinTransaction 通用 UTXO 链的交易
type BitcoinTransaction struct {
	Version  int32
	LockTime uint32
	Inputs   []*TransactionInput
	Outputs  []*TransactionOutput
}

// ZcashTransaction 带 sapling 扩展的 Zcash 交易
type ZcashTransaction struct {
	Version             uint32
	VersionGroupID      uint32
	BranchID            uint32
	LockTime            uint32
	ExpiryHeight        uint32
	SaplingValueBalance int64
	Inputs              []*TransactionInput
	Outputs             []*TransactionOutput
}

// DecredOutPoint Decred 的输出引用，多一个 Tree 字段
type DecredOutPoint struct {
	Hash []byte
	Vout uint32
	Tree int32
}

// DecredTransactionInput Decred 交易输入
type DecredTransactionInput struct {
	OutPoint    *DecredOutPoint
	Sequence    uint32
	ValueIn     int64
	BlockHeight uint32
	BlockIndex  uint32
	ScriptSig   []byte
}

// DecredTransactionOutput Decred 交易输出
type DecredTransactionOutput struct {
	Value        int64
	Version      uint32
	ScriptPubkey []byte
}

// DecredTransaction Decred 交易
type DecredTransaction struct {
	SerializationType uint32
	Version           uint32
	LockTime          uint32
	Expiry            uint32
	Inputs            []*DecredTransactionInput
	Outputs           []*DecredTransactionOutput
}

// GetValue 返回输出金额
func (x *TransactionOutput) GetValue() int64 {
	if x == nil {
		return 0
	}
	return x.Value
}

// GetValue 返回输出金额
func (x *DecredTransactionOutput) GetValue() int64 {
	if x == nil {
		return 0
	}
	return x.Value
}
