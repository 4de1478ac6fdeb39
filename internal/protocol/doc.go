// Package protocol maps ActiveSync command documents to the request and
// response models of the engine.
//
// Decoders are small recursive-descent routines, one per structural shape,
// built on the token primitives of package wbxml. Unknown elements are
// skipped so that newer clients do not break older servers. Encoders write
// through a wbxml.Encoder and only close elements they actually opened.
package protocol
