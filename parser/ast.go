package parser

// NodeKind tags every AST node variant
type NodeKind int

const (
	NodeLiteral NodeKind = iota
	NodeIdentifier
	NodeBinary
	NodeUnary
	NodeAssign
	NodeMember
	NodeCall
	NodeClone
	NodeMethod
	NodeExprStmt
	NodeVarDecl
	NodeBlock
	NodeIf
	NodeFor
	NodeWhile
	NodeCase
	NodeReturn
	NodeBreak
	NodeContinue
	NodeImport
	NodeExport
)

var nodeKindNames = [...]string{
	NodeLiteral:    "Literal",
	NodeIdentifier: "Identifier",
	NodeBinary:     "Binary",
	NodeUnary:      "Unary",
	NodeAssign:     "Assignment",
	NodeMember:     "MemberAccess",
	NodeCall:       "Call",
	NodeClone:      "Clone",
	NodeMethod:     "MethodLiteral",
	NodeExprStmt:   "ExpressionStatement",
	NodeVarDecl:    "VariableDecl",
	NodeBlock:      "Block",
	NodeIf:         "If",
	NodeFor:        "For",
	NodeWhile:      "While",
	NodeCase:       "Case",
	NodeReturn:     "Return",
	NodeBreak:      "Break",
	NodeContinue:   "Continue",
	NodeImport:     "Import",
	NodeExport:     "Export",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is the base interface for all AST nodes
type Node interface {
	Kind() NodeKind
	Span() Span
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// Program is the parse result: top-level statements in source order
type Program struct {
	Path       string
	Statements []Stmt
}

// LiteralExpr holds a host primitive: nil, bool, int64, float64 or string
type LiteralExpr struct {
	Pos   Span
	Value any
}

func (e *LiteralExpr) Kind() NodeKind { return NodeLiteral }
func (e *LiteralExpr) Span() Span     { return e.Pos }
func (e *LiteralExpr) exprNode()      {}

// IdentifierExpr represents a variable reference
type IdentifierExpr struct {
	Pos  Span
	Name string
}

func (e *IdentifierExpr) Kind() NodeKind { return NodeIdentifier }
func (e *IdentifierExpr) Span() Span     { return e.Pos }
func (e *IdentifierExpr) exprNode()      {}

// BinaryExpr represents a binary operation
type BinaryExpr struct {
	Pos      Span
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (e *BinaryExpr) Kind() NodeKind { return NodeBinary }
func (e *BinaryExpr) Span() Span     { return e.Pos }
func (e *BinaryExpr) exprNode()      {}

// UnaryExpr represents a prefix operator (! + - ++ --) or, when Postfix is
// set, a postfix ++ / --
type UnaryExpr struct {
	Pos      Span
	Operator TokenType
	Operand  Expr
	Postfix  bool
}

func (e *UnaryExpr) Kind() NodeKind { return NodeUnary }
func (e *UnaryExpr) Span() Span     { return e.Pos }
func (e *UnaryExpr) exprNode()      {}

// IsUpdate reports whether the operator mutates its operand
func (e *UnaryExpr) IsUpdate() bool {
	return e.Operator == TOKEN_INC || e.Operator == TOKEN_DEC
}

// AssignExpr represents assignment: lvalue = expr
type AssignExpr struct {
	Pos    Span
	Target Expr // IdentifierExpr or MemberExpr
	Value  Expr
}

func (e *AssignExpr) Kind() NodeKind { return NodeAssign }
func (e *AssignExpr) Span() Span     { return e.Pos }
func (e *AssignExpr) exprNode()      {}

// MemberExpr represents member access: expr.name
type MemberExpr struct {
	Pos      Span
	Object   Expr
	Property string
}

func (e *MemberExpr) Kind() NodeKind { return NodeMember }
func (e *MemberExpr) Span() Span     { return e.Pos }
func (e *MemberExpr) exprNode()      {}

// CallExpr represents a call: callee(args)
type CallExpr struct {
	Pos    Span
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) Kind() NodeKind { return NodeCall }
func (e *CallExpr) Span() Span     { return e.Pos }
func (e *CallExpr) exprNode()      {}

// Override is one `key = expr` pair of a clone expression
type Override struct {
	Pos   Span
	Key   string
	Value Expr
}

// CloneExpr represents clone proto { key = expr, ... }. Overrides keep
// source order, duplicates included.
type CloneExpr struct {
	Pos       Span
	Prototype Expr // IdentifierExpr or MemberExpr
	Overrides []Override
}

func (e *CloneExpr) Kind() NodeKind { return NodeClone }
func (e *CloneExpr) Span() Span     { return e.Pos }
func (e *CloneExpr) exprNode()      {}

// MethodExpr represents a method literal: method (params) { body }
type MethodExpr struct {
	Pos    Span
	Params []string
	Body   *BlockStmt
}

func (e *MethodExpr) Kind() NodeKind { return NodeMethod }
func (e *MethodExpr) Span() Span     { return e.Pos }
func (e *MethodExpr) exprNode()      {}

// Statement AST nodes

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	Pos  Span
	Expr Expr
}

func (s *ExprStmt) Kind() NodeKind { return NodeExprStmt }
func (s *ExprStmt) Span() Span     { return s.Pos }
func (s *ExprStmt) stmtNode()      {}

// VarDecl represents let/const declarations
type VarDecl struct {
	Pos   Span
	Const bool
	Name  string
	Init  Expr // Can be nil for let
}

func (s *VarDecl) Kind() NodeKind { return NodeVarDecl }
func (s *VarDecl) Span() Span     { return s.Pos }
func (s *VarDecl) stmtNode()      {}

// BlockStmt represents { stmts }
type BlockStmt struct {
	Pos        Span
	Statements []Stmt
}

func (s *BlockStmt) Kind() NodeKind { return NodeBlock }
func (s *BlockStmt) Span() Span     { return s.Pos }
func (s *BlockStmt) stmtNode()      {}

// IfStmt represents if/else if/else. Else is nil, a *BlockStmt or a
// nested *IfStmt for `else if`.
type IfStmt struct {
	Pos       Span
	Condition Expr
	Then      *BlockStmt
	Else      Stmt
}

func (s *IfStmt) Kind() NodeKind { return NodeIf }
func (s *IfStmt) Span() Span     { return s.Pos }
func (s *IfStmt) stmtNode()      {}

// WhileStmt represents while loops
type WhileStmt struct {
	Pos       Span
	Condition Expr
	Body      *BlockStmt
}

func (s *WhileStmt) Kind() NodeKind { return NodeWhile }
func (s *WhileStmt) Span() Span     { return s.Pos }
func (s *WhileStmt) stmtNode()      {}

// ForStmt represents C-style for loops. Init, Condition and Update are
// each optional.
type ForStmt struct {
	Pos       Span
	Init      Stmt // *VarDecl or *ExprStmt
	Condition Expr
	Update    Expr
	Body      *BlockStmt
}

func (s *ForStmt) Kind() NodeKind { return NodeFor }
func (s *ForStmt) Span() Span     { return s.Pos }
func (s *ForStmt) stmtNode()      {}

// CaseTest is one `of expr -> stmt` or `default -> stmt` arm
type CaseTest struct {
	Pos     Span
	Test    Expr // nil for default
	Default bool
	Body    Stmt
}

// CaseStmt represents case (discriminant) { arms }
type CaseStmt struct {
	Pos          Span
	Discriminant Expr
	Tests        []*CaseTest
}

func (s *CaseStmt) Kind() NodeKind { return NodeCase }
func (s *CaseStmt) Span() Span     { return s.Pos }
func (s *CaseStmt) stmtNode()      {}

// ReturnStmt represents return statement
type ReturnStmt struct {
	Pos   Span
	Value Expr // Can be nil (returns null)
}

func (s *ReturnStmt) Kind() NodeKind { return NodeReturn }
func (s *ReturnStmt) Span() Span     { return s.Pos }
func (s *ReturnStmt) stmtNode()      {}

// BreakStmt represents break statement
type BreakStmt struct {
	Pos Span
}

func (s *BreakStmt) Kind() NodeKind { return NodeBreak }
func (s *BreakStmt) Span() Span     { return s.Pos }
func (s *BreakStmt) stmtNode()      {}

// ContinueStmt represents continue statement
type ContinueStmt struct {
	Pos Span
}

func (s *ContinueStmt) Kind() NodeKind { return NodeContinue }
func (s *ContinueStmt) Span() Span     { return s.Pos }
func (s *ContinueStmt) stmtNode()      {}

// ImportStmt represents import "path"; or import name;
type ImportStmt struct {
	Pos  Span
	Path string
}

func (s *ImportStmt) Kind() NodeKind { return NodeImport }
func (s *ImportStmt) Span() Span     { return s.Pos }
func (s *ImportStmt) stmtNode()      {}

// ExportStmt represents export <declaration>
type ExportStmt struct {
	Pos  Span
	Decl *VarDecl
}

func (s *ExportStmt) Kind() NodeKind { return NodeExport }
func (s *ExportStmt) Span() Span     { return s.Pos }
func (s *ExportStmt) stmtNode()      {}
