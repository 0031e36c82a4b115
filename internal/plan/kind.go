package plan

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind is the origin of a registered conversion.
type Kind int

const (
	KindDirect   Kind = iota // direct
	KindBlanket              // blanket
	KindChain                // chain
	KindExternal             // external
)

// Generated reports whether conversions of this kind are emitted by the generator.
func (k Kind) Generated() bool {
	return k != KindExternal
}
