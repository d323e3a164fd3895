// Package fuzztests houses Go fuzz harnesses that exercise the CDL front end
// and back end (source -> lexer -> parser -> sema -> codegen) on arbitrary
// bytes. They guard against panics and hangs, not against wrong output.
//
// Назначение: загрузить байты в FileSet и прогнать их через лексер, парсер и
// генератор VHDL.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
