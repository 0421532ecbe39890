// Package i18n provides short localized labels for issue codes, used when
// failures are shown to people rather than matched by programs.
package i18n

import "sync"

// Translator retrieves localized messages for issue codes. data carries
// optional values such as "field" or "expected".
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です"
		case "required":
			msg = "必須フィールドが不足しています"
		case "invalid_enum":
			msg = "未知のデータ型です"
		case "invalid_value":
			msg = "値が不正です"
		case "duplicate_key":
			msg = "キーが重複しています"
		case "parse_error":
			msg = "解析エラー"
		case "truncated":
			msg = "入力が大きすぎます"
		}
	default:
		switch code {
		case "invalid_type":
			msg = "invalid type"
		case "required":
			msg = "required field missing"
		case "invalid_enum":
			msg = "unknown data type"
		case "invalid_value":
			msg = "invalid value"
		case "duplicate_key":
			msg = "duplicate key"
		case "parse_error":
			msg = "parse error"
		case "truncated":
			msg = "input too large"
		}
	}
	if msg == "" {
		return code
	}
	if f := data["field"]; f != "" {
		return msg + " (" + f + ")"
	}
	return msg
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation. nil restores the
// English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
