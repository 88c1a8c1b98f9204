// Package coin 支持的 Bitcoin 系币种及其交易形态
package coin

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Type SLIP-44 币种编号
type Type uint32

const (
	Bitcoin     Type = 0
	Litecoin    Type = 2
	Dogecoin    Type = 3
	Dash        Type = 5
	Decred      Type = 42
	Zcash       Type = 133
	Komodo      Type = 141
	BitcoinCash Type = 145
)

// Variant 签名交易的形态
type Variant int

const (
	// VariantBitcoin 通用 UTXO 交易
	VariantBitcoin Variant = iota
	// VariantZcash 带 sapling 扩展的 UTXO 交易
	VariantZcash
	// VariantDecred 前缀/见证分离的 Decred 交易
	VariantDecred
)

func (v Variant) String() string {
	switch v {
	case VariantBitcoin:
		return "bitcoin"
	case VariantZcash:
		return "zcash"
	case VariantDecred:
		return "decred"
	default:
		return "unknown"
	}
}

// Info 币种描述
type Info struct {
	Type    Type
	ID      string
	Name    string
	Symbol  string
	Variant Variant
	// Segwit 输入是否可以携带见证数据
	Segwit bool
}

var registry = map[Type]Info{
	Bitcoin:     {Type: Bitcoin, ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC", Variant: VariantBitcoin, Segwit: true},
	Litecoin:    {Type: Litecoin, ID: "litecoin", Name: "Litecoin", Symbol: "LTC", Variant: VariantBitcoin, Segwit: true},
	Dogecoin:    {Type: Dogecoin, ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE", Variant: VariantBitcoin},
	Dash:        {Type: Dash, ID: "dash", Name: "Dash", Symbol: "DASH", Variant: VariantBitcoin},
	Decred:      {Type: Decred, ID: "decred", Name: "Decred", Symbol: "DCR", Variant: VariantDecred},
	Zcash:       {Type: Zcash, ID: "zcash", Name: "Zcash", Symbol: "ZEC", Variant: VariantZcash},
	Komodo:      {Type: Komodo, ID: "komodo", Name: "Komodo", Symbol: "KMD", Variant: VariantZcash},
	BitcoinCash: {Type: BitcoinCash, ID: "bitcoincash", Name: "Bitcoin Cash", Symbol: "BCH", Variant: VariantBitcoin},
}

// Info 返回币种注册信息
func (t Type) Info() (Info, bool) {
	info, ok := registry[t]
	return info, ok
}

func (t Type) String() string {
	if info, ok := registry[t]; ok {
		return info.ID
	}
	return "unknown"
}

// Parse 按 ID 解析币种（不区分大小写）
func Parse(id string) (Type, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for t, info := range registry {
		if info.ID == id {
			return t, nil
		}
	}
	return 0, errors.Errorf("unsupported coin: %q", id)
}

// All 按币种编号返回所有支持的币种
func All() []Info {
	infos := make([]Info, 0, len(registry))
	for _, info := range registry {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Type < infos[j].Type })
	return infos
}
