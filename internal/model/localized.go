package model

import "strings"

// LocalizedText 固定三种语言的文本，基础语言 uz 必须非空
type LocalizedText struct {
	UZ string `gorm:"type:text" json:"uz"`
	RU string `gorm:"type:text" json:"ru"`
	EN string `gorm:"type:text" json:"en"`
}

// SameText 三个语言槽位都使用同一文本
func SameText(text string) LocalizedText {
	return LocalizedText{UZ: text, RU: text, EN: text}
}

// Get 返回指定语言的文本，为空时回退到 uz
func (t LocalizedText) Get(lang Language) string {
	var s string
	switch lang {
	case LangRU:
		s = t.RU
	case LangEN:
		s = t.EN
	default:
		s = t.UZ
	}
	if strings.TrimSpace(s) == "" {
		return t.UZ
	}
	return s
}

// Set 写入指定语言槽位
func (t *LocalizedText) Set(lang Language, text string) {
	switch lang {
	case LangRU:
		t.RU = text
	case LangEN:
		t.EN = text
	default:
		t.UZ = text
	}
}

// Complete 三个槽位都非空
func (t LocalizedText) Complete() bool {
	return strings.TrimSpace(t.UZ) != "" &&
		strings.TrimSpace(t.RU) != "" &&
		strings.TrimSpace(t.EN) != ""
}

// FillMissing 空槽位用 uz 补齐；uz 为空时取第一个非空槽位
func (t LocalizedText) FillMissing() LocalizedText {
	if strings.TrimSpace(t.UZ) == "" {
		t.UZ = t.first()
	}
	if strings.TrimSpace(t.RU) == "" {
		t.RU = t.UZ
	}
	if strings.TrimSpace(t.EN) == "" {
		t.EN = t.UZ
	}
	return t
}

func (t LocalizedText) first() string {
	for _, s := range []string{t.UZ, t.EN, t.RU} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
