// Package utils provides loose coercion helpers shared by the extract
// loaders and the aggregation stage.
//
// The extracts come from three systems with different locales and number
// formats, so coercion here is deliberately forgiving: anything unparsable
// becomes the zero value rather than an error.
package utils
