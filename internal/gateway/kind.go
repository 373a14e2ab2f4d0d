package gateway

// Kind identifies one operation of the external tool's invocation contract.
type Kind int

// noKind marks errors that are not tied to a single operation.
const noKind Kind = -1

const (
	KindListFolder Kind = iota
	KindListAssets
	KindSearch
	KindUpload
	KindDownload
)

var kindNames = [...]string{
	KindListFolder: "list-folder",
	KindListAssets: "list-assets",
	KindSearch:     "search",
	KindUpload:     "upload",
	KindDownload:   "download",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the known operation kinds.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// Kinds lists every operation kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}
