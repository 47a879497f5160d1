// Package compiler is the front end of the Cppt teaching language: a
// trie-driven lexer, a recursive-descent parser with inline semantic
// checks over a scoped identifier table, and a shunting-yard generator
// that turns every expression into reverse Polish notation.
//
// Pipeline: Cppt source → Lex → Parse (+ Analyzer) → ValidateExpression → GenerateRPN
package compiler
