// Package typecheck implements the two-phase static checker of spec.md §4.3:
// a gather pass collects function signatures (and, structurally, the root's
// variable table) along the program's Seq spine, then a single recursive
// descent checks every expression and command against an environment that
// copies itself across if/while branches. Grounded on
// original_source/rs-sources/src/type_checker/type_checker.rs for the
// gather-then-check shape and enclave-bin/type_checker/enclave/src/lib.rs
// for the flow that wraps it (see attest.Certify).
package typecheck

import (
	"fmt"

	"github.com/nspcc-dev/vimp/pkg/ast"
	"github.com/nspcc-dev/vimp/pkg/vimperr"
)

type varInfo struct {
	Type        ast.DataType
	Initialised bool
}

type checkEnv struct {
	vars    map[string]varInfo
	globals map[string]varInfo
	funcs   map[string]ast.FnProtoType
	// declaredHere tracks names declared directly in this scope, as opposed
	// to vars entries inherited from an enclosing scope's flattened copy.
	// Re-declaring an inherited name is shadowing, not a duplicate.
	declaredHere  map[string]bool
	funcNames     map[string]bool
	currentReturn ast.DataType
}

func copyVars(src map[string]varInfo) map[string]varInfo {
	dst := make(map[string]varInfo, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// branch returns a child environment for an if/while body: an independent
// copy of vars so declarations inside don't leak out, sharing the immutable
// function tables.
func (e *checkEnv) branch() *checkEnv {
	return &checkEnv{
		vars:          copyVars(e.vars),
		globals:       e.globals,
		funcs:         e.funcs,
		declaredHere:  map[string]bool{},
		funcNames:     e.funcNames,
		currentReturn: e.currentReturn,
	}
}

// Check runs both phases over p's root command and returns the first
// violated invariant, or nil if the program is well-typed.
func Check(p *ast.Program) error {
	funcs := map[string]ast.FnProtoType{}
	funcNames := map[string]bool{}
	globals := map[string]varInfo{}

	if err := gather(p, p.Root, funcs, funcNames, globals); err != nil {
		return err
	}

	root := &checkEnv{
		vars:          map[string]varInfo{},
		globals:       globals,
		funcs:         funcs,
		declaredHere:  map[string]bool{},
		funcNames:     funcNames,
		currentReturn: ast.Void,
	}
	return checkCmd(p, p.Root, root)
}

// gather walks the Seq spine of the root command, collecting function
// signatures and the structural shape of the global variable table. It does
// not descend into FnDecl bodies or any non-spine construct, matching
// spec.md §4.3 Phase 1.
func gather(p *ast.Program, idx ast.NodeIdx, funcs map[string]ast.FnProtoType, funcNames map[string]bool, globals map[string]varInfo) error {
	c := p.Cmd(idx)
	switch c.Kind {
	case ast.CmdSeq:
		if err := gather(p, c.A, funcs, funcNames, globals); err != nil {
			return err
		}
		return gather(p, c.B, funcs, funcNames, globals)

	case ast.CmdFnDecl:
		key := overloadKey(c.Proto.Name, c.Proto.ParamTypes())
		if _, exists := funcs[key]; exists {
			return fmt.Errorf("%w: %s", vimperr.ErrDuplicateFunction, c.Proto.Name)
		}
		funcs[key] = c.Proto
		funcNames[c.Proto.Name] = true
		return nil

	case ast.CmdVarDecl:
		if _, exists := globals[c.Decl.Name]; exists {
			return fmt.Errorf("%w: %s", vimperr.ErrDuplicateVariable, c.Decl.Name)
		}
		globals[c.Decl.Name] = varInfo{Type: c.Decl.Type}
		return nil

	case ast.CmdAssign:
		if info, ok := globals[c.AssignTo.Name]; ok {
			info.Initialised = true
			globals[c.AssignTo.Name] = info
		}
		return nil

	default:
		return nil
	}
}

func overloadKey(name string, params []ast.DataType) string {
	key := name
	for _, t := range params {
		key += "/" + t.String()
	}
	return key
}

func checkCmd(p *ast.Program, idx ast.NodeIdx, e *checkEnv) error {
	c := p.Cmd(idx)
	switch c.Kind {
	case ast.CmdSkip:
		return nil

	case ast.CmdVarDecl:
		if e.declaredHere[c.Decl.Name] {
			return fmt.Errorf("%w: %s", vimperr.ErrDuplicateVariable, c.Decl.Name)
		}
		e.declaredHere[c.Decl.Name] = true
		e.vars[c.Decl.Name] = varInfo{Type: c.Decl.Type}
		return nil

	case ast.CmdAssign:
		info, ok := e.vars[c.AssignTo.Name]
		if !ok {
			return fmt.Errorf("%w: %s", vimperr.ErrUnknownVariable, c.AssignTo.Name)
		}
		rhs, err := checkExp(p, c.AssignExp, e)
		if err != nil {
			return err
		}
		if !rhs.CanWidenTo(info.Type) {
			return fmt.Errorf("%w: assigning %s to %s variable %s", vimperr.ErrTypeMismatch, rhs, info.Type, c.AssignTo.Name)
		}
		info.Initialised = true
		e.vars[c.AssignTo.Name] = info
		return nil

	case ast.CmdIfElse:
		if err := checkBexp(p, c.Cond, e); err != nil {
			return err
		}
		if err := checkCmd(p, c.A, e.branch()); err != nil {
			return err
		}
		return checkCmd(p, c.B, e.branch())

	case ast.CmdWhileLoop:
		if err := checkBexp(p, c.Cond, e); err != nil {
			return err
		}
		return checkCmd(p, c.A, e.branch())

	case ast.CmdSeq:
		if err := checkCmd(p, c.A, e); err != nil {
			return err
		}
		return checkCmd(p, c.B, e)

	case ast.CmdFnDecl:
		fnEnv := &checkEnv{
			vars:          copyVars(e.globals),
			globals:       e.globals,
			funcs:         e.funcs,
			declaredHere:  map[string]bool{},
			funcNames:     e.funcNames,
			currentReturn: c.Proto.RetType,
		}
		seen := map[string]bool{}
		for _, param := range c.Proto.Params {
			if seen[param.Name] {
				return fmt.Errorf("%w: duplicate parameter %s in %s", vimperr.ErrDuplicateVariable, param.Name, c.Proto.Name)
			}
			seen[param.Name] = true
			fnEnv.declaredHere[param.Name] = true
			fnEnv.vars[param.Name] = varInfo{Type: param.Type, Initialised: true}
		}
		return checkCmd(p, c.A, fnEnv)

	case ast.CmdReturn:
		if !c.HasReturn {
			if e.currentReturn != ast.Void {
				return fmt.Errorf("%w: bare return in function returning %s", vimperr.ErrTypeMismatch, e.currentReturn)
			}
			return nil
		}
		rt, err := checkExp(p, c.RetExp, e)
		if err != nil {
			return err
		}
		if !rt.CanWidenTo(e.currentReturn) {
			return fmt.Errorf("%w: returning %s from function declared to return %s", vimperr.ErrTypeMismatch, rt, e.currentReturn)
		}
		return nil

	default:
		return nil
	}
}

func checkExp(p *ast.Program, ref ast.ExpRef, e *checkEnv) (ast.DataType, error) {
	switch ref.Kind {
	case ast.ExpA:
		return checkAexp(p, ref.Idx, e)
	case ast.ExpB:
		if err := checkBexp(p, ref.Idx, e); err != nil {
			return ast.Void, err
		}
		return ast.Bool, nil
	default:
		return ast.Void, fmt.Errorf("%w: exp kind %d", vimperr.ErrTypeMismatch, ref.Kind)
	}
}

func checkAexp(p *ast.Program, idx ast.NodeIdx, e *checkEnv) (ast.DataType, error) {
	a := p.Aexp(idx)
	switch a.Kind {
	case ast.AexpIntConst:
		return ast.Int32, nil
	case ast.AexpFloConst:
		return ast.Float32, nil

	case ast.AexpAdd, ast.AexpSub, ast.AexpMul, ast.AexpDiv, ast.AexpMod:
		lt, err := checkAexp(p, a.L, e)
		if err != nil {
			return ast.Void, err
		}
		rt, err := checkAexp(p, a.R, e)
		if err != nil {
			return ast.Void, err
		}
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return ast.Void, fmt.Errorf("%w: arithmetic operand %s/%s", vimperr.ErrTypeMismatch, lt, rt)
		}
		if lt == ast.Int32 && rt == ast.Int32 {
			return ast.Int32, nil
		}
		return ast.Float32, nil

	case ast.AexpVar:
		info, ok := e.vars[a.VarName]
		if !ok {
			return ast.Void, fmt.Errorf("%w: %s", vimperr.ErrUnknownVariable, a.VarName)
		}
		if !info.Initialised {
			return ast.Void, fmt.Errorf("%w: %s", vimperr.ErrUninitialisedVariable, a.VarName)
		}
		return info.Type, nil

	case ast.AexpFnCall:
		return checkCall(p, a.Call, e)

	default:
		return ast.Void, fmt.Errorf("%w: aexp kind %d", vimperr.ErrTypeMismatch, a.Kind)
	}
}

func checkBexp(p *ast.Program, idx ast.NodeIdx, e *checkEnv) error {
	b := p.Bexp(idx)
	switch b.Kind {
	case ast.BexpBoolConst:
		return nil

	case ast.BexpBeq, ast.BexpBneq, ast.BexpAnd, ast.BexpOr:
		if err := checkBexp(p, b.L, e); err != nil {
			return err
		}
		return checkBexp(p, b.R, e)

	case ast.BexpNot:
		return checkBexp(p, b.L, e)

	case ast.BexpAeq, ast.BexpAneq, ast.BexpLt, ast.BexpLte, ast.BexpGt, ast.BexpGte:
		lt, err := checkAexp(p, b.L, e)
		if err != nil {
			return err
		}
		rt, err := checkAexp(p, b.R, e)
		if err != nil {
			return err
		}
		if !lt.IsNumeric() || !rt.IsNumeric() {
			return fmt.Errorf("%w: comparison operand %s/%s", vimperr.ErrTypeMismatch, lt, rt)
		}
		return nil

	case ast.BexpVar:
		info, ok := e.vars[b.VarName]
		if !ok {
			return fmt.Errorf("%w: %s", vimperr.ErrUnknownVariable, b.VarName)
		}
		if !info.Initialised {
			return fmt.Errorf("%w: %s", vimperr.ErrUninitialisedVariable, b.VarName)
		}
		if info.Type != ast.Bool {
			return fmt.Errorf("%w: %s is %s, not bool", vimperr.ErrTypeMismatch, b.VarName, info.Type)
		}
		return nil

	case ast.BexpFnCall:
		rt, err := checkCall(p, b.Call, e)
		if err != nil {
			return err
		}
		if rt != ast.Bool {
			return fmt.Errorf("%w: call to %s is %s, not bool", vimperr.ErrTypeMismatch, b.Call.Name, rt)
		}
		return nil

	default:
		return fmt.Errorf("%w: bexp kind %d", vimperr.ErrTypeMismatch, b.Kind)
	}
}

func checkCall(p *ast.Program, fc ast.FnCall, e *checkEnv) (ast.DataType, error) {
	argTypes := make([]ast.DataType, len(fc.Args))
	for i, arg := range fc.Args {
		t, err := checkExp(p, arg, e)
		if err != nil {
			return ast.Void, err
		}
		argTypes[i] = t
	}
	key := overloadKey(fc.Name, argTypes)
	proto, ok := e.funcs[key]
	if !ok {
		if e.funcNames[fc.Name] {
			return ast.Void, fmt.Errorf("%w: %s", vimperr.ErrNoOverloadMatch, fc.Name)
		}
		return ast.Void, fmt.Errorf("%w: %s", vimperr.ErrUnknownFunction, fc.Name)
	}
	return proto.RetType, nil
}
