package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/chtz/miniscript/internal/ast"
	"github.com/chtz/miniscript/internal/lexer"
	"github.com/chtz/miniscript/internal/parser"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	parseExpr    string
	parseDumpAST bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse source and report diagnostics without evaluating",
	Long: `Parse reports lex/parse diagnostics for a program without running it.

If no file is given, reads from stdin. Use --dump-ast to print a tree
view of the parsed statements instead of just the diagnostic summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseExpr, "expression", "e", "", "parse inline source instead of a file")
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", false, "print the parsed AST")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string
	switch {
	case parseExpr != "":
		input = parseExpr
	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(l.Errors()) == 0 && len(p.Errors()) == 0 {
		color.New(color.FgGreen).Println("no diagnostics")
	} else {
		for _, e := range l.Errors() {
			fmt.Printf("[%s] (lex) %s\n", e.Pos, e.Message)
		}
		for _, e := range p.Errors() {
			fmt.Printf("[%s] (parse) %s\n", e.Pos, e.Message)
		}
	}

	if parseDumpAST {
		fmt.Println()
		dumpProgram(program)
	}

	if len(l.Errors()) > 0 || len(p.Errors()) > 0 {
		return fmt.Errorf("parsing failed with %d diagnostic(s)", len(l.Errors())+len(p.Errors()))
	}
	return nil
}

func dumpProgram(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		dumpNode(stmt, 0)
	}
}

func dumpNode(node ast.Node, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	pos := node.Pos()

	switch n := node.(type) {
	case *ast.Block:
		fmt.Printf("%sBlock [%s]\n", pad, pos)
		for _, s := range n.Statements {
			dumpNode(s, indent+1)
		}
	case *ast.ExpressionStatement:
		fmt.Printf("%sExpressionStatement [%s]\n", pad, pos)
		dumpNode(n.Expression, indent+1)
	case *ast.VarDecl:
		fmt.Printf("%sVarDecl %s [%s]\n", pad, n.Name, pos)
		if n.Init != nil {
			dumpNode(n.Init, indent+1)
		}
	case *ast.Assign:
		fmt.Printf("%sAssign %s [%s]\n", pad, n.Name, pos)
		dumpNode(n.Value, indent+1)
	case *ast.FunctionDecl:
		fmt.Printf("%sFunctionDecl %s(%v) [%s]\n", pad, n.Name, n.Params, pos)
		dumpNode(n.Body, indent+1)
	case *ast.Return:
		fmt.Printf("%sReturn [%s]\n", pad, pos)
		if n.Value != nil {
			dumpNode(n.Value, indent+1)
		}
	case *ast.If:
		fmt.Printf("%sIf [%s]\n", pad, pos)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Then, indent+1)
		if n.ElseIf != nil {
			dumpNode(n.ElseIf, indent+1)
		}
		if n.Else != nil {
			dumpNode(n.Else, indent+1)
		}
	case *ast.While:
		fmt.Printf("%sWhile [%s]\n", pad, pos)
		dumpNode(n.Cond, indent+1)
		dumpNode(n.Body, indent+1)
	case *ast.Ident:
		fmt.Printf("%sIdent %s [%s]\n", pad, n.Name, pos)
	case *ast.NumberLit:
		fmt.Printf("%sNumberLit %g [%s]\n", pad, n.Value, pos)
	case *ast.StringLit:
		fmt.Printf("%sStringLit %q [%s]\n", pad, n.Value, pos)
	case *ast.BoolLit:
		fmt.Printf("%sBoolLit %v [%s]\n", pad, n.Value, pos)
	case *ast.NullLit:
		fmt.Printf("%sNullLit [%s]\n", pad, pos)
	case *ast.PrefixExpr:
		fmt.Printf("%sPrefixExpr %s [%s]\n", pad, n.Operator, pos)
		dumpNode(n.Right, indent+1)
	case *ast.InfixExpr:
		fmt.Printf("%sInfixExpr %s [%s]\n", pad, n.Operator, pos)
		dumpNode(n.Left, indent+1)
		dumpNode(n.Right, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr [%s]\n", pad, pos)
		dumpNode(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpNode(a, indent+1)
		}
	case *ast.MemberExpr:
		fmt.Printf("%sMemberExpr .%s [%s]\n", pad, n.Property, pos)
		dumpNode(n.Object, indent+1)
	case *ast.IndexExpr:
		fmt.Printf("%sIndexExpr [%s]\n", pad, pos)
		dumpNode(n.Object, indent+1)
		dumpNode(n.Index, indent+1)
	case *ast.ArrayLit:
		fmt.Printf("%sArrayLit [%s]\n", pad, pos)
		for _, e := range n.Elements {
			dumpNode(e, indent+1)
		}
	default:
		fmt.Printf("%s%T [%s]\n", pad, node, pos)
	}
}
