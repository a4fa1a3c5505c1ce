package cache

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	Measurer   string  `json:"measurer"`
	FontFamily string  `json:"font_family"`
	FontSize   float64 `json:"font_size"`
	Padding    float64 `json:"padding"`
	TextMargin float64 `json:"text_margin"`
	NoteInset  float64 `json:"note_inset"`
}

// ExportKeyOpts holds every option that changes an exported drawing.
type ExportKeyOpts struct {
	Format string `json:"format"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey addresses the layout report of a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	// ExportKey addresses a rendered export of a layout.
	ExportKey(layoutHash string, opts ExportKeyOpts) string
}

// DefaultKeyer hashes the inputs into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ExportKey implements Keyer.
func (DefaultKeyer) ExportKey(layoutHash string, opts ExportKeyOpts) string {
	return hashKey("export", layoutHash, opts)
}
