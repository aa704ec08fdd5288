package model

import (
	"encoding/json"
	"strings"
)

// ID はカタログ由来の識別子（商品・店舗）。
// 導線によって数値IDと文字列IDが混在するので、境界で一度だけ正規化して
// 以後は文字列としてだけ比較する。
type ID string

// NormalizeID はパスパラメータ等の生文字列を正規形にする。
func NormalizeID(raw string) ID {
	return ID(strings.TrimSpace(raw))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}

	// "42" と 42 の両方を受ける
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = NormalizeID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
