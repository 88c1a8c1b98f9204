package verify

import (
	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/pkg/errors"
)

// TransactionOutPoints 按引擎输出的顺序返回交易花费的 out point
func TransactionOutPoints(tx signing.Transaction) ([]OutPointKey, error) {
	if isNilTransaction(tx) {
		return nil, integrityError(ErrTransactionNotSet)
	}

	switch tx := tx.(type) {
	case *signing.BitcoinTransaction:
		return transactionOutPoints(tx.Inputs)
	case *signing.ZcashTransaction:
		return transactionOutPoints(tx.Inputs)
	case *signing.DecredTransaction:
		return decredTransactionOutPoints(tx.Inputs)
	default:
		return nil, integrityError(ErrTransactionNotSet)
	}
}

// TransactionOutputAmounts 按引擎输出的顺序返回交易输出金额
func TransactionOutputAmounts(tx signing.Transaction) ([]int64, error) {
	if isNilTransaction(tx) {
		return nil, integrityError(ErrTransactionNotSet)
	}

	switch tx := tx.(type) {
	case *signing.BitcoinTransaction:
		return transactionOutputAmounts(tx.Outputs)
	case *signing.ZcashTransaction:
		return transactionOutputAmounts(tx.Outputs)
	case *signing.DecredTransaction:
		return decredTransactionOutputAmounts(tx.Outputs)
	default:
		return nil, integrityError(ErrTransactionNotSet)
	}
}

// isNilTransaction 同时识别接口中的带类型 nil 指针
func isNilTransaction(tx signing.Transaction) bool {
	switch tx := tx.(type) {
	case *signing.BitcoinTransaction:
		return tx == nil
	case *signing.ZcashTransaction:
		return tx == nil
	case *signing.DecredTransaction:
		return tx == nil
	default:
		return tx == nil
	}
}

func transactionOutPoints(inputs []*signing.TransactionInput) ([]OutPointKey, error) {
	keys := make([]OutPointKey, 0, len(inputs))
	for i, input := range inputs {
		if input == nil {
			return nil, integrityError(errors.Wrapf(ErrOutPointNotSet, "transaction input %d", i))
		}
		key, err := OutPointKeyFromProto(input.OutPoint)
		if err != nil {
			return nil, integrityError(errors.Wrapf(err, "transaction input %d", i))
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func decredTransactionOutPoints(inputs []*signing.DecredTransactionInput) ([]OutPointKey, error) {
	keys := make([]OutPointKey, 0, len(inputs))
	for i, input := range inputs {
		if input == nil {
			return nil, integrityError(errors.Wrapf(ErrOutPointNotSet, "transaction input %d", i))
		}
		key, err := OutPointKeyFromDecred(input.OutPoint)
		if err != nil {
			return nil, integrityError(errors.Wrapf(err, "transaction input %d", i))
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func transactionOutputAmounts(outputs []*signing.TransactionOutput) ([]int64, error) {
	amounts := make([]int64, 0, len(outputs))
	for i, output := range outputs {
		if output == nil {
			return nil, integrityError(errors.Wrapf(ErrOutputNotSet, "transaction output %d", i))
		}
		amounts = append(amounts, output.Value)
	}
	return amounts, nil
}

func decredTransactionOutputAmounts(outputs []*signing.DecredTransactionOutput) ([]int64, error) {
	amounts := make([]int64, 0, len(outputs))
	for i, output := range outputs {
		if output == nil {
			return nil, integrityError(errors.Wrapf(ErrOutputNotSet, "transaction output %d", i))
		}
		amounts = append(amounts, output.Value)
	}
	return amounts, nil
}
