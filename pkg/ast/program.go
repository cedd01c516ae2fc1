package ast

type ReturnKind int

const (
	Void ReturnKind = iota
	Num
)

func (k ReturnKind) String() string {
	if k == Num {
		return "num"
	}
	return "void"
}

// ParseReturnKind maps a header type keyword to its ReturnKind
func ParseReturnKind(s string) (ReturnKind, bool) {
	switch s {
	case "void":
		return Void, true
	case "num":
		return Num, true
	default:
		return Void, false
	}
}

// MethodDefinition is a parsed method header together with its body
type MethodDefinition struct {
	Pos
	Name    string
	Params  []string
	Returns ReturnKind
	Body    []Statement
}

// MethodTable maps method names to their definitions.
// Defining an existing name replaces it.
type MethodTable struct {
	methods map[string]*MethodDefinition
	order   []string
}

// NewMethodTable creates an empty method table
func NewMethodTable() *MethodTable {
	return &MethodTable{
		methods: make(map[string]*MethodDefinition),
		order:   make([]string, 0),
	}
}

// Define inserts or overwrites def, reporting whether a definition was replaced
func (t *MethodTable) Define(def *MethodDefinition) (replaced bool) {
	if _, ok := t.methods[def.Name]; ok {
		replaced = true
	} else {
		t.order = append(t.order, def.Name)
	}

	t.methods[def.Name] = def
	return replaced
}

// Lookup returns the definition registered under name
func (t *MethodTable) Lookup(name string) (*MethodDefinition, bool) {
	def, ok := t.methods[name]
	return def, ok
}

// Len returns the number of defined methods
func (t *MethodTable) Len() int {
	return len(t.methods)
}

// Methods returns all definitions in the order their names were first defined
func (t *MethodTable) Methods() []*MethodDefinition {
	defs := make([]*MethodDefinition, 0, len(t.order))
	for _, name := range t.order {
		defs = append(defs, t.methods[name])
	}
	return defs
}

// Program is the result of parsing: top-level statements plus the method table.
// It is not modified once parsing is done.
type Program struct {
	Statements []Statement
	Methods    *MethodTable
}

// NewProgram creates an empty program
func NewProgram() *Program {
	return &Program{
		Statements: make([]Statement, 0),
		Methods:    NewMethodTable(),
	}
}
