package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxWholeDigits は価格の整数部の最大桁数。
const maxWholeDigits = 8

var (
	// ErrInvalidPrice は価格の表記が不正な場合のエラー。
	ErrInvalidPrice = errors.New("価格の形式が不正です")
	// ErrNegativePrice は価格が負の場合のエラー。
	ErrNegativePrice = errors.New("価格は0以上である必要があります")
	// ErrCostOverflow は注文金額が表現できる範囲を超えた場合のエラー。
	ErrCostOverflow = errors.New("注文金額が大きすぎます")
)

// Cents は最小通貨単位（1/100）で表した金額。
// JSONでは数値 699.99 と文字列 "699.99" のどちらも受け付ける。
type Cents int64

// UnmarshalJSON はJSONの数値または文字列を金額として読み込む。
func (c *Cents) UnmarshalJSON(data []byte) error {
	text := string(bytes.Trim(data, `"`))
	v, err := ParseCents(text)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// String は小数点以下2桁の文字列を返す。
func (c Cents) String() string {
	return FormatCents(int64(c))
}

// ParseCents は "699.99" のような10進表記を金額に変換する。
// 小数部は2桁まで、指数表記は受け付けない。
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidPrice
	}
	if strings.HasPrefix(s, "-") {
		return 0, ErrNegativePrice
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && frac == "") || len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if !isDigits(whole) || !isDigits(frac) || len(whole) > maxWholeDigits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	return Cents(w*100 + f), nil
}

// FormatCents は金額を小数点以下2桁の文字列にする。
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// orderCost は単価と数量から注文金額を計算する。
func orderCost(priceCents, quantity int64) (int64, error) {
	if quantity <= 0 || priceCents < 0 {
		return 0, fmt.Errorf("単価または数量が不正: price=%d, quantity=%d", priceCents, quantity)
	}
	if priceCents > 0 && quantity > math.MaxInt64/priceCents {
		return 0, ErrCostOverflow
	}
	return priceCents * quantity, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
