package models

// Token is the opaque single-use payment credential produced by the native
// sheet on user approval. It is forwarded to the processor exactly once and
// never retained or logged.
type Token []byte

// String redacts the token bytes so accidental formatting (logs, errors)
// never exposes them.
func (t Token) String() string {
	if len(t) == 0 {
		return "token[empty]"
	}
	return "token[redacted]"
}
