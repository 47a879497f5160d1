package compiler

import (
	"fmt"
	"strings"
)

// NodeType tags an AST node.
type NodeType int

const (
	NodeProgram NodeType = iota
	NodeFunction
	NodeBlock
	NodeVarDecl
	NodeAssignment
	NodeExpression
	NodeLiteral
	NodeIdentifier
	NodeIf
	NodeLoop
	NodeReturn
	NodeInput
	NodeOutput
	NodeSwitch
	NodeBreak
	NodeContinue
)

var nodeTypeNames = [...]string{
	NodeProgram:    "Program",
	NodeFunction:   "Function",
	NodeBlock:      "Block",
	NodeVarDecl:    "VarDecl",
	NodeAssignment: "Assignment",
	NodeExpression: "Expression",
	NodeLiteral:    "Literal",
	NodeIdentifier: "Identifier",
	NodeIf:         "If",
	NodeLoop:       "Loop",
	NodeReturn:     "Return",
	NodeInput:      "Input",
	NodeOutput:     "Output",
	NodeSwitch:     "Switch",
	NodeBreak:      "Break",
	NodeContinue:   "Continue",
}

func (nt NodeType) String() string {
	if int(nt) >= 0 && int(nt) < len(nodeTypeNames) {
		return nodeTypeNames[nt]
	}
	return fmt.Sprintf("NodeType(%d)", int(nt))
}

// Node is a tagged AST node. A parent exclusively owns its children.
//
// Shapes produced by the parser:
//
//	Function   Value=name     children: Identifier(return type), VarDecl(param)..., Block
//	VarDecl    Value=name     Token=name; children: Identifier(type), [dims...], [init expr]
//	Assignment Value=name     children: Identifier(target, index children), expr
//	Expression Value=operator children: one (unary) or two (binary) operands
//	Identifier Value=name     children: index operands, if any
//	If                        children: cond, Block, [Block | If]
//	Loop       Value=while|for children: cond, Block  or  init, cond, step, Block
//	Switch                    children: expr, Block(Value="case") with Literal first..., Block(Value="default")
type Node struct {
	Type     NodeType
	Value    string
	Token    Token // token the node was built from
	Children []*Node

	// Tokens is the source span of a full expression. Only expression
	// roots carry it; nested operand nodes leave it nil.
	Tokens []Token
}

func NewNode(nt NodeType, value string, tok Token) *Node {
	return &Node{Type: nt, Value: value, Token: tok}
}

// Add appends children that are not nil and returns n.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Expressions returns every full expression root under n in source order.
// Sub-expressions of a root are not listed separately.
func (n *Node) Expressions() []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Tokens != nil {
			out = append(out, c)
			return false
		}
		return true
	})
	return out
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Type.String())
	if n.Value != "" {
		fmt.Fprintf(sb, " %q", n.Value)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}
