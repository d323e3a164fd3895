package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwComponent represents the 'component' keyword.
	KwComponent // component
	// KwPort represents the 'port' keyword.
	KwPort // port
	// KwArch represents the 'arch' keyword.
	KwArch // arch
	// KwGenerate represents the 'generate' keyword.
	KwGenerate // generate
	// KwProcess represents the 'process' keyword.
	KwProcess // process
	// KwConnect represents the 'connect' keyword.
	KwConnect // connect
	// KwSignal represents the 'signal' keyword.
	KwSignal // signal
	// KwVariable represents the 'variable' keyword.
	KwVariable // variable
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwNew represents the 'new' keyword.
	KwNew // new
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwInput represents the 'input' port direction.
	KwInput // input
	// KwOutput represents the 'output' port direction.
	KwOutput // output
	// KwInt represents the 'int' type.
	KwInt // int
	// KwUint represents the 'uint' type.
	KwUint // uint
	// KwVec represents the 'vec' type.
	KwVec // vec
	// KwBool represents the 'bool' type.
	KwBool // bool
	// KwTrue represents the 'true' literal.
	KwTrue // true
	// KwFalse represents the 'false' literal.
	KwFalse // false
	// KwAnd represents the 'and' bitwise operator.
	KwAnd // and
	// KwOr represents the 'or' bitwise operator.
	KwOr // or
	// KwNot represents the 'not' operator.
	KwNot // not
	// KwNand represents the 'nand' bitwise operator.
	KwNand // nand
	// KwNor represents the 'nor' bitwise operator.
	KwNor // nor
	// KwXor represents the 'xor' bitwise operator.
	KwXor // xor
	// KwXnor represents the 'xnor' bitwise operator.
	KwXnor // xnor
	// KwImplementation represents the 'implementation' arch name.
	KwImplementation // implementation
	// KwVerification represents the 'verification' arch name.
	KwVerification // verification

	// IntLit represents a decimal integer literal.
	IntLit
	// HexIntLit represents a 0x-prefixed integer literal.
	HexIntLit
	// BinIntLit represents a 0b-prefixed integer literal.
	BinIntLit
	// BinVecLit represents a "0101" vector literal.
	BinVecLit
	// HexVecLit represents an x"1F" vector literal.
	HexVecLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// StarStar represents the exponent operator token.
	StarStar // **
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Question represents the ternary question token.
	Question // ?
	// Colon represents the ternary separator.
	Colon // : (general scope)
	// RangeSep represents the splice range separator.
	RangeSep // : (index scope)
	// Amp represents the bitwise and token.
	Amp // &
	// Pipe represents the bitwise or token.
	Pipe // |
	// Caret represents the bitwise xor token.
	Caret // ^
	// Bang represents the bitwise not token.
	Bang // !
	// Lt represents the less than operator token.
	Lt // <
	// Gt represents the greater than operator token.
	Gt // >
	// LtEq represents the less than or equal operator token.
	LtEq // <= (relational scope)
	// SigAssign represents the signal assignment operator.
	SigAssign // <= (general scope)
	// GtEq represents the greater than or equal operator token.
	GtEq // >=
	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Assign represents the generic assignment token.
	Assign // =
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the member access token.
	Dot // .
	// Semicolon represents the statement terminator.
	Semicolon // ;
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident",
	KwComponent: "component", KwPort: "port", KwArch: "arch", KwGenerate: "generate",
	KwProcess: "process", KwConnect: "connect", KwSignal: "signal", KwVariable: "variable",
	KwConst: "const", KwNew: "new", KwIf: "if", KwElse: "else", KwFor: "for", KwWhile: "while",
	KwInput: "input", KwOutput: "output", KwInt: "int", KwUint: "uint", KwVec: "vec",
	KwBool: "bool", KwTrue: "true", KwFalse: "false", KwAnd: "and", KwOr: "or", KwNot: "not",
	KwNand: "nand", KwNor: "nor", KwXor: "xor", KwXnor: "xnor",
	KwImplementation: "implementation", KwVerification: "verification",
	IntLit: "IntLit", HexIntLit: "HexIntLit", BinIntLit: "BinIntLit",
	BinVecLit: "BinVecLit", HexVecLit: "HexVecLit",
	Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/", Percent: "%",
	Question: "?", Colon: "Colon", RangeSep: "RangeSep", Amp: "&", Pipe: "|", Caret: "^",
	Bang: "!", Lt: "<", Gt: ">", LtEq: "LtEq", SigAssign: "SigAssign", GtEq: ">=",
	EqEq: "==", BangEq: "!=", Assign: "=", LParen: "(", RParen: ")", LBrace: "{",
	RBrace: "}", LBracket: "[", RBracket: "]", Comma: ",", Dot: ".", Semicolon: ";",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
