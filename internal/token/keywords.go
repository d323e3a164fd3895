package token

var keywords = map[string]Kind{
	"component":      KwComponent,
	"port":           KwPort,
	"arch":           KwArch,
	"generate":       KwGenerate,
	"process":        KwProcess,
	"connect":        KwConnect,
	"signal":         KwSignal,
	"variable":       KwVariable,
	"const":          KwConst,
	"new":            KwNew,
	"if":             KwIf,
	"else":           KwElse,
	"for":            KwFor,
	"while":          KwWhile,
	"input":          KwInput,
	"output":         KwOutput,
	"int":            KwInt,
	"uint":           KwUint,
	"vec":            KwVec,
	"bool":           KwBool,
	"true":           KwTrue,
	"false":          KwFalse,
	"and":            KwAnd,
	"or":             KwOr,
	"not":            KwNot,
	"nand":           KwNand,
	"nor":            KwNor,
	"xor":            KwXor,
	"xnor":           KwXnor,
	"implementation": KwImplementation,
	"verification":   KwVerification,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Keywords returns a copy of the keyword table.
func Keywords() map[string]Kind {
	out := make(map[string]Kind, len(keywords))
	for s, k := range keywords {
		out[s] = k
	}
	return out
}
