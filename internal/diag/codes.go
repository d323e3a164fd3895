package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedVector       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadVectorDigit           Code = 1005

	// Синтаксические
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynInstanceTypeMismatch Code = 2002
	SynDuplicateArch        Code = 2003
	SynDuplicatePortBlock   Code = 2004
	SynExpectType           Code = 2005
	SynExpectConstant       Code = 2006
	SynExpectExpression     Code = 2007
	SynUnclosedBlock        Code = 2008
	SynExpectComponent      Code = 2009

	// Семантические: имена, типы, граф компонентов
	SemaInfo               Code = 3000
	SemaNotAVector         Code = 3001
	SemaDuplicateDecl      Code = 3002
	SemaDuplicateComponent Code = 3003
	SemaUnknownComponent   Code = 3004
	SemaUnknownInstance    Code = 3005
	SemaUnknownPort        Code = 3006
	SemaCircularReference  Code = 3007
	SemaTopHasGenerics     Code = 3008
	SemaUnknownTop         Code = 3009
	SemaDependencyFailed   Code = 3010

	// I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Проект
	ProjInfo         Code = 5000
	ProjBadManifest  Code = 5001
	ProjNoSources    Code = 5002
	ProjMissingInput Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedVector:       "Unterminated vector literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexBadVectorDigit:           "Bad digit in vector literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynInstanceTypeMismatch:     "Instance type does not match constructor",
	SynDuplicateArch:            "Component already has an architecture",
	SynDuplicatePortBlock:       "Component already has a port block",
	SynExpectType:               "Expected a type",
	SynExpectConstant:           "Expected a constant",
	SynExpectExpression:         "Expected an expression",
	SynUnclosedBlock:            "Unclosed block",
	SynExpectComponent:          "Expected component",
	SemaInfo:                    "Semantic information",
	SemaNotAVector:              "Splice of a non-vector identifier",
	SemaDuplicateDecl:           "Duplicate declaration",
	SemaDuplicateComponent:      "Duplicate component",
	SemaUnknownComponent:        "Unknown component",
	SemaUnknownInstance:         "Unknown instance",
	SemaUnknownPort:             "Unknown port",
	SemaCircularReference:       "Circular component reference",
	SemaTopHasGenerics:          "Top-level component declares generics",
	SemaUnknownTop:              "Unknown top-level component",
	SemaDependencyFailed:        "Dependency component has errors",
	IOLoadFileError:             "Cannot load file",
	IOWriteFileError:            "Cannot write file",
	ProjInfo:                    "Project information",
	ProjBadManifest:             "Bad project manifest",
	ProjNoSources:               "No sources",
	ProjMissingInput:            "Missing input",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
