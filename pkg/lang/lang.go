// Package lang maps repository files to language tags and dependency families.
package lang

// Family groups languages that share reference syntax and resolution rules.
type Family string

// Dependency families.
const (
	FamilyNone       Family = ""
	FamilyPython     Family = "python"
	FamilyJavaScript Family = "javascript"
	FamilyC          Family = "c"
	FamilyRust       Family = "rust"
	FamilyGo         Family = "go"
	FamilyJVM        Family = "jvm"
	FamilyCSharp     Family = "csharp"
	FamilySwift      Family = "swift"
	FamilyAsset      Family = "asset"
	FamilySQL        Family = "sql"
	FamilyRuby       Family = "ruby"
)

// Language tags. Names follow the linguist naming used by enry so that
// fallback detection lands on the same tags.
const (
	Python     = "Python"
	JavaScript = "JavaScript"
	TypeScript = "TypeScript"
	C          = "C"
	CPP        = "C++"
	ObjectiveC = "Objective-C"
	CSharp     = "C#"
	Rust       = "Rust"
	Go         = "Go"
	Java       = "Java"
	Kotlin     = "Kotlin"
	Scala      = "Scala"
	Swift      = "Swift"
	HTML       = "HTML"
	CSS        = "CSS"
	SQL        = "SQL"
	Ruby       = "Ruby"
)

// Priority bands used by the default registry.
const (
	PriorityPrimary   = 10
	PriorityHeader    = 9
	PrioritySystem    = 8
	PrioritySecondary = 5
	PriorityDocument  = 3
	PriorityConfig    = 2
)

// Definition describes one language known to the registry.
type Definition struct {
	Name       string
	Family     Family
	Extensions []string
	Priority   int
	Enabled    bool
}

// HasDependencies reports whether files of this language carry references.
func (d Definition) HasDependencies() bool {
	return d.Family != FamilyNone
}

func defaultDefinitions() []Definition {
	return []Definition{
		{Name: Python, Family: FamilyPython, Extensions: []string{".py", ".pyw"}, Priority: PriorityPrimary},
		{Name: JavaScript, Family: FamilyJavaScript, Extensions: []string{".js", ".jsx", ".mjs", ".cjs"}, Priority: PriorityPrimary},
		{Name: TypeScript, Family: FamilyJavaScript, Extensions: []string{".ts", ".tsx"}, Priority: PriorityPrimary},
		{Name: C, Family: FamilyC, Extensions: []string{".c"}, Priority: PrioritySystem},
		{
			Name: CPP, Family: FamilyC,
			Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx", ".h"},
			Priority:   PriorityHeader,
		},
		{Name: CSharp, Family: FamilyCSharp, Extensions: []string{".cs"}, Priority: PrioritySystem},
		{Name: Rust, Family: FamilyRust, Extensions: []string{".rs"}, Priority: PrioritySystem},
		{Name: Go, Family: FamilyGo, Extensions: []string{".go"}, Priority: PrioritySystem},
		{Name: Java, Family: FamilyJVM, Extensions: []string{".java"}, Priority: PrioritySystem},
		{Name: Swift, Family: FamilySwift, Extensions: []string{".swift"}, Priority: PrioritySystem},
		{Name: HTML, Family: FamilyAsset, Extensions: []string{".html", ".htm"}, Priority: PrioritySecondary},
		{Name: CSS, Family: FamilyAsset, Extensions: []string{".css"}, Priority: PrioritySecondary},
		{Name: SQL, Family: FamilySQL, Extensions: []string{".sql"}, Priority: PrioritySecondary},
		{Name: Ruby, Family: FamilyRuby, Extensions: []string{".rb"}, Priority: PrioritySecondary},
		{Name: "PHP", Extensions: []string{".php"}, Priority: PrioritySecondary},
		{Name: Kotlin, Family: FamilyJVM, Extensions: []string{".kt", ".kts"}, Priority: PrioritySecondary},
		{Name: Scala, Family: FamilyJVM, Extensions: []string{".scala"}, Priority: PrioritySecondary},
		{Name: "Shell", Extensions: []string{".sh"}, Priority: PrioritySecondary},
		{Name: "Bash", Extensions: []string{".bash"}, Priority: PrioritySecondary},
		{Name: "Zsh", Extensions: []string{".zsh"}, Priority: PrioritySecondary},
		{Name: "PowerShell", Extensions: []string{".ps1"}, Priority: PrioritySecondary},
		{Name: "R", Extensions: []string{".r", ".R"}, Priority: PrioritySecondary},
		{Name: ObjectiveC, Family: FamilyC, Extensions: []string{".m"}, Priority: PrioritySecondary},
		{Name: "SCSS", Extensions: []string{".scss"}, Priority: PrioritySecondary},
		{Name: "Sass", Extensions: []string{".sass"}, Priority: PrioritySecondary},
		{Name: "Less", Extensions: []string{".less"}, Priority: PrioritySecondary},
		{Name: "Vue", Extensions: []string{".vue"}, Priority: PrioritySecondary},
		{Name: "Markdown", Extensions: []string{".md"}, Priority: PriorityDocument},
		{Name: "reStructuredText", Extensions: []string{".rst"}, Priority: PriorityDocument},
		{Name: "YAML", Extensions: []string{".yml", ".yaml"}, Priority: PriorityDocument},
		{Name: "JSON", Extensions: []string{".json"}, Priority: PriorityDocument},
		{Name: "XML", Extensions: []string{".xml"}, Priority: PriorityDocument},
		{Name: "TOML", Extensions: []string{".toml"}, Priority: PriorityDocument},
		{Name: "INI", Extensions: []string{".ini"}, Priority: PriorityDocument},
		{Name: "Config", Extensions: []string{".cfg", ".conf"}, Priority: PriorityConfig},
	}
}
