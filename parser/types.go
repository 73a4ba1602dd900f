package parser

// ImportStyle distinguishes how a dependency specifier was declared
type ImportStyle string

const (
	StyleImport  ImportStyle = "import"  // Static import declaration
	StyleRequire ImportStyle = "require" // CommonJS require call
	StyleDynamic ImportStyle = "dynamic" // Dynamic import() expression
)

// ImportRecord is one raw dependency specifier extracted from file content
type ImportRecord struct {
	Specifier  string      `json:"specifier"`
	Line       int         `json:"line"`
	Style      ImportStyle `json:"style"`
	IsTypeOnly bool        `json:"isTypeOnly,omitempty"`
	Members    []string    `json:"members,omitempty"` // Imported member names, if declared
}

// ExportRecord is one exported symbol extracted from file content
type ExportRecord struct {
	Name            string `json:"name"`
	ExportType      string `json:"exportType"`      // named, default, re-export
	DeclarationType string `json:"declarationType"` // function, class, const, method
	ParentClass     string `json:"parentClass,omitempty"`
	IsAsync         bool   `json:"isAsync,omitempty"`
	IsStatic        bool   `json:"isStatic,omitempty"`
	Visibility      string `json:"visibility,omitempty"` // public, private, protected
	Line            int    `json:"line"`
}

// LinkRecord is one link extracted from a documentation file
type LinkRecord struct {
	Target  string `json:"target"`
	Text    string `json:"text,omitempty"`
	Line    int    `json:"line"`
	IsImage bool   `json:"isImage,omitempty"`
}

// Parser extracts raw import and export records from source content.
// Implementations range from regex heuristics to full syntax trees; the
// classifier depends only on this interface.
type Parser interface {
	// ParseImports returns every dependency specifier declared in content
	ParseImports(path string, content []byte) ([]ImportRecord, error)

	// ParseExports returns every exported symbol declared in content
	ParseExports(path string, content []byte) ([]ExportRecord, error)
}
