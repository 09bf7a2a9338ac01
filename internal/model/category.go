package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// swagger:model Category
type Category struct {
	UUIDBase
	Name         CategoryName `gorm:"type:text;not null" json:"name"`
	DisplayOrder int          `gorm:"index;default:0" json:"order"`
}

func (Category) TableName() string {
	return "categories"
}

type nameKind uint8

const (
	nameLegacy nameKind = iota + 1
	nameLocalized
)

// CategoryName 历史数据中分类名既可能是纯字符串，也可能是三语对象。
// 在存储边界读入后统一通过 Normalize 得到 LocalizedText。
type CategoryName struct {
	kind      nameKind
	legacy    string
	localized LocalizedText
}

func LegacyName(name string) CategoryName {
	return CategoryName{kind: nameLegacy, legacy: name}
}

func LocalizedName(t LocalizedText) CategoryName {
	return CategoryName{kind: nameLocalized, localized: t}
}

func (n CategoryName) IsLegacy() bool {
	return n.kind == nameLegacy
}

// LegacyText 旧格式时返回原始字符串
func (n CategoryName) LegacyText() (string, bool) {
	return n.legacy, n.kind == nameLegacy
}

// NeedsMigration 旧格式或三语不完整
func (n CategoryName) NeedsMigration() bool {
	return n.kind != nameLocalized || !n.localized.Complete()
}

// knownCategoryNames 旧版本英文分类名对应的三语名称
var knownCategoryNames = map[string]LocalizedText{
	"Movies":   {UZ: "Kinolar", RU: "Фильмы", EN: "Movies"},
	"Science":  {UZ: "Fan", RU: "Наука", EN: "Science"},
	"Game":     {UZ: "O'yinlar", RU: "Игры", EN: "Games"},
	"Games":    {UZ: "O'yinlar", RU: "Игры", EN: "Games"},
	"Football": {UZ: "Futbol", RU: "Футбол", EN: "Football"},
	"MMA":      {UZ: "MMA", RU: "ММА", EN: "MMA"},
	"Music":    {UZ: "Musiqa", RU: "Музыка", EN: "Music"},
}

// KnownTranslation 查找旧分类名的内置翻译
func KnownTranslation(name string) (LocalizedText, bool) {
	t, ok := knownCategoryNames[strings.TrimSpace(name)]
	return t, ok
}

// Normalize 总是返回三个槽位都非空的名称（除非原始数据本身为空）
func (n CategoryName) Normalize() LocalizedText {
	switch n.kind {
	case nameLocalized:
		if n.localized.Complete() {
			return n.localized
		}
		if t, ok := KnownTranslation(n.localized.first()); ok {
			return t
		}
		return n.localized.FillMissing()
	case nameLegacy:
		if t, ok := KnownTranslation(n.legacy); ok {
			return t
		}
		return SameText(n.legacy)
	}
	return LocalizedText{}
}

// Text 业务层唯一使用的入口
func (n CategoryName) Text() LocalizedText {
	return n.Normalize()
}

// Scan 兼容三种存储形态：JSON 对象、JSON 字符串、纯文本
func (n *CategoryName) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*n = CategoryName{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported category name type %T", value)
	}
	return n.decode(raw)
}

func (n *CategoryName) decode(raw []byte) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		*n = CategoryName{}
		return nil
	}
	switch trimmed[0] {
	case '{':
		var t LocalizedText
		if err := json.Unmarshal(trimmed, &t); err != nil {
			return fmt.Errorf("decode localized category name: %w", err)
		}
		*n = LocalizedName(t)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode legacy category name: %w", err)
		}
		*n = LegacyName(s)
	default:
		*n = LegacyName(string(trimmed))
	}
	return nil
}

func (n CategoryName) Value() (driver.Value, error) {
	switch n.kind {
	case nameLegacy:
		b, err := json.Marshal(n.legacy)
		return string(b), err
	case nameLocalized:
		b, err := json.Marshal(n.localized)
		return string(b), err
	}
	return nil, nil
}

// MarshalJSON 对外始终输出三语对象
func (n CategoryName) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Normalize())
}

func (n *CategoryName) UnmarshalJSON(data []byte) error {
	return n.decode(data)
}
