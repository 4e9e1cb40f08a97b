package render

import (
	"bytes"
	"html/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var codeFormatter = chromahtml.New(chromahtml.WithClasses(true))

// HighlightCode 为代码块生成带 chroma class 的 HTML。代码块没有语言标注，
// 由 lexers.Analyse 猜测，猜不出时按纯文本处理。
func HighlightCode(code string) template.HTML {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return plainCode(code)
	}
	var buf bytes.Buffer
	if err := codeFormatter.Format(&buf, styles.Fallback, it); err != nil {
		return plainCode(code)
	}
	return template.HTML(buf.String())
}

func plainCode(code string) template.HTML {
	return template.HTML("<pre><code>" + template.HTMLEscapeString(code) + "</code></pre>")
}
