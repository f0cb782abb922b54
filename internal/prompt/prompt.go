// Package prompt holds the fixed instructions and templates sent to every
// translation engine.
package prompt

import "fmt"

// DefaultSystem is used when the user has not configured a system prompt.
const DefaultSystem = `あなたは優秀な翻訳家です。与えられたテキストを日本語に翻訳し、結果をMarkdown形式で出力してください。
参考情報として、与えられたテキストを含む全体の文章が過去の会話として提供される場合があります。`

// RestoreProperNouns replaces the system prompt on the second pass.
const RestoreProperNouns = `あなたは優秀な翻訳家です。原文と翻訳文を与えるため、翻訳文のうち固有名詞を原文に戻し、結果をMarkdown形式で出力してください。`

// FormatPageContent wraps the full page text so the model treats it as
// reference material and leaves it untranslated.
func FormatPageContent(pageContent string) string {
	return fmt.Sprintf("以下は翻訳の参考情報となるテキストの全文です。参考情報自体は翻訳しないでください。\n  <参考情報>\n  %s\n  </参考情報>", pageContent)
}

// RestoreInput builds the single user turn of the proper-noun restoration pass.
func RestoreInput(sourceText, translation string) string {
	return fmt.Sprintf("原文: %s\n翻訳文: %s", sourceText, translation)
}
