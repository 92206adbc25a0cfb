// Package model defines the parameter editing types shared by the value store,
// the field renderers and the definition loaders. A ParameterDefinition is the
// static schema for one editable field, a Model carries the current values keyed
// by parameter id plus unrelated reference data (colors), and Value is the
// string-or-number payload stored per parameter. Value equality is kind
// sensitive, so the string "100" and the number 100 are different values, while
// two not-a-number values compare equal to keep no-op updates stable.
package model
