// Package mapper copies same-named fields from one struct into another.
//
// Two strategies are provided. Hydrate walks the fields of an existing target on every call,
// converting values whose types differ. Map compiles a copy function once per
// (source type, target type) pair and reuses it, copying only fields whose names and types
// match exactly.
//
// Basic Usage
//
//	var user User
//	err := mapper.Hydrate(&user, &row)
//
//	dto, err := mapper.Map[Row, UserDTO](row)
//
// # Hydrate Rules
//
// For each exported field of the target, in declaration order:
//  1. Skip the field if its name was passed to WithIgnored
//  2. Skip the field if the source has no exported field with the same name
//  3. Assign the source value directly when the declared types are identical
//  4. Otherwise convert it with converters.ChangeType, failing with a *ConversionError
//
// A nil target or a nil source makes Hydrate a no-op. When a conversion fails the fields
// assigned before it stay assigned. The WithAfterMap hook runs once after the last field.
//
// # Fluent Configuration
//
//	err := mapper.Create(&row, &user).
//	    Ignore("Password").
//	    WithAfterMap(func(u *User, r *Row) error { u.Display = r.First + " " + r.Last; return nil }).
//	    Apply()
//
// # Compiled Mapping
//
// Map never converts: a field present on both sides with different types keeps its zero value.
// Compiled functions are cached by a Compiler for the life of the process. DefaultCompiler
// returns the one used by Map; MapWith accepts an explicit one.
//
// # Embedded Structs
//
// Fields promoted from embedded structs (including pointer-to-struct) are matched as if they
// were declared on the outer struct. Nil embedded pointers on the target are allocated when
// one of their fields is assigned.
//
// # Thread Safety
//
// Hydrate and Builder keep no shared state. A Compiler is safe for concurrent use; concurrent
// first use of a type pair may compile more than once, but only one function is stored and used.
package mapper
