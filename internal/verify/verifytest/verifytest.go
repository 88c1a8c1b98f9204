// Package verifytest 验证失败时立即终止测试
package verifytest

import (
	"testing"

	"github.com/kashguard/go-txverify/internal/signing"
	"github.com/kashguard/go-txverify/internal/verify"
	"github.com/stretchr/testify/require"
)

// RequireSigned 签名并校验，出错立即失败
func RequireSigned(t testing.TB, h *verify.Harness, expected verify.Expected) *verify.Report {
	t.Helper()

	report, err := h.Sign(expected)
	require.NoError(t, err)
	require.NotNil(t, report)
	return report
}

// RequireVerified 校验已有输出，出错立即失败
func RequireVerified(t testing.TB, h *verify.Harness, output *signing.SigningOutput, expected verify.Expected) *verify.Report {
	t.Helper()

	report, err := h.VerifyOutput(output, expected)
	require.NoError(t, err)
	require.NotNil(t, report)
	return report
}

// RequireKind 断言 err 是指定类别的验证错误
func RequireKind(t testing.TB, err error, kind verify.Kind) {
	t.Helper()

	require.Error(t, err)
	require.Equal(t, kind, verify.KindOf(err), "unexpected error kind: %v", err)
}
