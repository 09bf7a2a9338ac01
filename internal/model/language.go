package model

import "strings"

// Language 题目内容支持的语言，uz 为基础语言
type Language string

const (
	LangUZ Language = "uz"
	LangRU Language = "ru"
	LangEN Language = "en"

	BaseLanguage = LangUZ
)

// TargetLanguages 基础语言之外需要自动翻译的语言
var TargetLanguages = []Language{LangRU, LangEN}

var languageAliases = map[string]string{
	"uzb": "uz",
	"rus": "ru",
	"eng": "en",
	"uz":  "uz",
	"ru":  "ru",
	"en":  "en",
}

// NormalizeLanguageCode 把长代码（uzb/rus/eng）归一为短代码，未知代码原样返回
func NormalizeLanguageCode(code string) string {
	c := strings.ToLower(strings.TrimSpace(code))
	if short, ok := languageAliases[c]; ok {
		return short
	}
	return code
}

// ParseLanguage 归一化后只接受 uz/ru/en
func ParseLanguage(code string) (Language, bool) {
	switch l := Language(NormalizeLanguageCode(code)); l {
	case LangUZ, LangRU, LangEN:
		return l, true
	}
	return "", false
}

// ResolveLanguage 优先级：请求参数 > 用户偏好 > 基础语言。
// 无法识别的代码回退到基础语言而不是报错。
func ResolveLanguage(requested string, preferred Language) Language {
	code := requested
	if strings.TrimSpace(code) == "" {
		code = string(preferred)
	}
	if l, ok := ParseLanguage(code); ok {
		return l
	}
	return BaseLanguage
}
