// Package utils は複数パッケージから使う小さな正規化ヘルパーを置きます。
package utils

import "strings"

// NormalizeTag は、タグ入力（Campaign / Faction）の前後空白を取り除き、
// 連続する空白を 1 つに畳みます。空白だけの入力は空文字列になります。
func NormalizeTag(tag string) string {
	return strings.Join(strings.Fields(tag), " ")
}
