// Package jsonvalue implements the minimal JSON value model used by diagram
// documents.
//
// The model is a closed set of five variants:
//
//	Bool    true / false
//	Int     64-bit signed integer (no fractions, no exponents)
//	Str     UTF-8 string
//	*Object ordered mapping from unique string keys to values
//	Array   ordered sequence of values
//
// There is no null and no floating point. [Parse] rejects any text that
// strays outside this grammar with an error carrying the MALFORMED_JSON
// code and a [*SyntaxError] holding the byte offset. [Write] rejects any
// value that was not built from the five variants (including nil) with the
// UNSUPPORTED_JSON_TYPE code, so nothing is ever silently coerced.
//
// Object keys keep their insertion order, and both the parser and the writer
// preserve it, which makes documents stable across load/save cycles:
//
//	obj := jsonvalue.NewObject().
//	    Set("diagram", jsonvalue.Str("ClassDiagram")).
//	    Set("nodes", jsonvalue.Array{})
//	text, _ := jsonvalue.Write(obj) // {"diagram":"ClassDiagram","nodes":[]}
//	back, _ := jsonvalue.Parse([]byte(text))
//	jsonvalue.Equal(obj, back) // true
package jsonvalue
