package statusx

// Style is how a status is presented to users
type Style struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// DefaultStyle is returned for statuses without an entry
var DefaultStyle = Style{Color: "gray", Icon: "circle", Label: "Unknown"}

// Palette maps statuses to their style
type Palette[S ~string] map[S]Style

// Style looks up s, falling back to DefaultStyle
func (p Palette[S]) Style(s S) Style {
	if st, ok := p[s]; ok {
		return st
	}
	return DefaultStyle
}
