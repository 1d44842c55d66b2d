package rules

import (
	"fmt"

	"github.com/typelint/typelint/internal/checker"
	"github.com/typelint/typelint/internal/semantic"
	"github.com/typelint/typelint/internal/syntax"
	tt "github.com/typelint/typelint/internal/types"
)

// deprecatedAliases maps deprecated typing members to their builtin
// replacements. The table is maintained by hand; the typing module deprecates
// members rarely enough that scraping documentation is not worth it.
var deprecatedAliases = map[string]string{
	"Text":       "str",
	"ByteString": "bytes",
}

// DeprecatedAlias flags references to typing members that are deprecated
// aliases of builtin types, such as typing.Text for str. Fires on both the
// imported-name form and the module-attribute form.
func DeprecatedAlias(c *checker.Checker, node syntax.Node) {
	expr, ok := node.(syntax.Expr)
	if !ok {
		return
	}
	qn, ok := c.Semantic().ResolveQualifiedName(expr)
	if !ok {
		return
	}
	for member, replacement := range deprecatedAliases {
		if !semantic.IsTypingQualifiedName(qn, member) {
			continue
		}
		c.Report(tt.Diagnostic{
			Range:   expr.Range(),
			Message: fmt.Sprintf("`typing.%s` is deprecated, use `%s`", member, replacement),
			Fix: tt.SafeFix(
				fmt.Sprintf("Replace with `%s`", replacement),
				tt.Replacement(expr.Range(), replacement),
			),
		})
		return
	}
}
