package verify

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind 验证失败的类别
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfiguration 调用签名器之前的配置错误
	KindConfiguration
	// KindEngine 签名器返回非 OK 状态
	KindEngine
	// KindIntegrity 响应与请求不一致
	KindIntegrity
	// KindAssertion 字段与期望值不符
	KindAssertion
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindEngine:
		return "engine"
	case KindIntegrity:
		return "integrity"
	case KindAssertion:
		return "assertion"
	default:
		return "unknown"
	}
}

var (
	ErrSignerNotSet      = errors.New("'Harness' signer is not set")
	ErrCoinTypeNotSet    = errors.New("'Harness' coin type is not set")
	ErrTemplateNotSet    = errors.New("'SigningInput.Template' isn't set")
	ErrPsbtUnsupported   = errors.New("'Harness' doesn't support PSBT, consider using a PSBT harness")
	ErrHarnessUsed       = errors.New("'Harness' has already signed a transaction")
	ErrSigningFailed     = errors.New("signing failed")
	ErrTransactionNotSet = errors.New("'SigningOutput.Transaction' isn't set")
	ErrOutPointNotSet    = errors.New("no OutPoint specified")
	ErrOutputNotSet      = errors.New("no Output specified")
	ErrUnknownOutPoint   = errors.New("signed transaction spends an out point the request does not offer")
	ErrMismatch          = errors.New("mismatch")
)

// Error 验证失败的结果；Field 仅在断言失败时给出比较的字段
type Error struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s error (%s): %v", e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause 供 errors.Cause 取得底层错误
func (e *Error) Cause() error {
	return e.Err
}

// KindOf 返回错误链中第一个 *Error 的类别
func KindOf(err error) Kind {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind
	}
	return KindUnknown
}

func configurationError(err error) error {
	return &Error{Kind: KindConfiguration, Err: err}
}

func integrityError(err error) error {
	return &Error{Kind: KindIntegrity, Err: err}
}
