// Package fuzztests houses Go fuzz harnesses for the expansion pipeline
// (source -> lexer -> token trees -> paste! expansion -> printer). They guard
// against panics on arbitrary input and check that printing is lossless.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
