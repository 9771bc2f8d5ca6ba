// Package symbol provides the symbolic expression engine behind the equation
// solver: an immutable expression tree over exact rationals with substitution,
// differentiation, numeric evaluation (real and complex), and polynomial
// coefficient extraction.
package symbol

import (
	"fmt"
	"math"
	"math/big"
	"math/cmplx"
	"sort"
	"strings"
)

// Expr is an immutable symbolic algebraic term.
type Expr interface {
	Simplify() Expr
	String() string
	Sub(varName string, value Expr) Expr
	Diff(varName string) Expr
}

// ============================================================
// Num — exact rational constant
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func NFloat(f float64) *Num {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		// Infinities have no rational form; callers substitute these only
		// through the evaluators, never as tree nodes.
		r = new(big.Rat)
	}
	return &Num{val: r}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

var ratOne = new(big.Rat).SetInt64(1)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }

// ============================================================
// Sym — free variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym      { return &Sym{name: name} }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) Name() string   { return s.name }

func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

// ============================================================
// Add — sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	acc := N(0)
	for _, t := range a.terms {
		switch v := t.Simplify().(type) {
		case *Add:
			for _, inner := range v.terms {
				if n, ok := inner.(*Num); ok {
					acc = numAdd(acc, n)
				} else {
					flat = append(flat, inner)
				}
			}
		case *Num:
			acc = numAdd(acc, v)
		default:
			flat = append(flat, v)
		}
	}
	if !acc.IsZero() {
		flat = append(flat, acc)
	}
	switch len(flat) {
	case 0:
		return N(0)
	case 1:
		return flat[0]
	}
	return &Add{terms: flat}
}

func (a *Add) String() string {
	parts := make([]string, len(a.terms))
	for i, t := range a.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (a *Add) Sub(varName string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(varName, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(varName string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(varName)
	}
	return AddOf(out...)
}

// ============================================================
// Mul — product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	coeff := N(1)
	for _, f := range m.factors {
		switch v := f.Simplify().(type) {
		case *Mul:
			for _, inner := range v.factors {
				if n, ok := inner.(*Num); ok {
					coeff = numMul(coeff, n)
				} else {
					flat = append(flat, inner)
				}
			}
		case *Num:
			coeff = numMul(coeff, v)
		default:
			flat = append(flat, v)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(flat) == 0 {
		return coeff
	}
	// Deterministic factor order keeps String() stable across calls.
	sort.Slice(flat, func(i, j int) bool { return flat[i].String() < flat[j].String() })
	if coeff.IsOne() {
		if len(flat) == 1 {
			return flat[0]
		}
		return &Mul{factors: flat}
	}
	return &Mul{factors: append([]Expr{coeff}, flat...)}
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, isAdd := f.(*Add); isAdd {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(varName, value)
	}
	return MulOf(out...)
}

// Diff applies the product rule across all factors.
func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, m.factors[i].Diff(varName))
		for j, f := range m.factors {
			if j != i {
				parts = append(parts, f)
			}
		}
		terms[i] = MulOf(parts...)
	}
	return AddOf(terms...)
}

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()
	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			if en, ok2 := exp.(*Num); ok2 && en.val.Sign() > 0 {
				return N(0)
			}
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			e := en.val.Num().Int64()
			if e >= -16 && e <= 16 && e != 0 && !(bn.IsZero() && e < 0) {
				acc := N(1)
				steps := e
				if steps < 0 {
					steps = -steps
				}
				for i := int64(0); i < steps; i++ {
					acc = numMul(acc, bn)
				}
				if e < 0 {
					if acc.IsZero() {
						return &Pow{base: base, exp: exp}
					}
					return &Num{val: new(big.Rat).Inv(acc.val)}
				}
				return acc
			}
		}
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	switch p.exp.(type) {
	case *Add, *Mul, *Pow:
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Diff(varName string) Expr {
	du := p.base.Diff(varName)
	dv := p.exp.Diff(varName)
	if _, expIsNum := p.exp.(*Num); expIsNum {
		// d/dx u^n = n*u^(n-1)*u'
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), du)
	}
	if _, baseIsNum := p.base.(*Num); baseIsNum {
		// d/dx a^v = a^v * ln(a) * v'
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), dv)
	}
	// General case: u^v * (v'*ln(u) + v*u'/u).
	return MulOf(
		PowOf(p.base, p.exp),
		AddOf(MulOf(dv, LnOf(p.base)), MulOf(p.exp, du, PowOf(p.base, N(-1)))),
	)
}

// Base and Exponent expose the decomposition used by the root verifier.
func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

// ============================================================
// Func — named function application
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func FuncOf(name string, arg Expr) Expr { return (&Func{name: name, arg: arg}).Simplify() }

func SinOf(arg Expr) Expr  { return FuncOf("sin", arg) }
func CosOf(arg Expr) Expr  { return FuncOf("cos", arg) }
func TanOf(arg Expr) Expr  { return FuncOf("tan", arg) }
func CotOf(arg Expr) Expr  { return FuncOf("cot", arg) }
func ExpOf(arg Expr) Expr  { return FuncOf("exp", arg) }
func LnOf(arg Expr) Expr   { return FuncOf("ln", arg) }
func AsinOf(arg Expr) Expr { return FuncOf("asin", arg) }
func AcosOf(arg Expr) Expr { return FuncOf("acos", arg) }
func AtanOf(arg Expr) Expr { return FuncOf("atan", arg) }
func AcotOf(arg Expr) Expr { return FuncOf("acot", arg) }
func AbsOf(arg Expr) Expr  { return FuncOf("abs", arg) }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "sin":
			if n.IsZero() {
				return N(0)
			}
		case "cos":
			if n.IsZero() {
				return N(1)
			}
		case "exp":
			if n.IsZero() {
				return N(1)
			}
		case "ln":
			if n.IsOne() {
				return N(0)
			}
		}
	}
	if inner, ok := arg.(*Func); ok {
		if f.name == "ln" && inner.name == "exp" {
			return inner.arg
		}
		if f.name == "exp" && inner.name == "ln" {
			return inner.arg
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) Sub(varName string, value Expr) Expr {
	return FuncOf(f.name, f.arg.Sub(varName, value))
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	var outer Expr
	switch f.name {
	case "sin":
		outer = CosOf(f.arg)
	case "cos":
		outer = MulOf(N(-1), SinOf(f.arg))
	case "tan":
		outer = AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "cot":
		outer = MulOf(N(-1), AddOf(N(1), PowOf(CotOf(f.arg), N(2))))
	case "exp":
		outer = ExpOf(f.arg)
	case "ln":
		outer = PowOf(f.arg, N(-1))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), &Num{val: big.NewRat(-1, 2)})
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(f.arg, N(2)))), &Num{val: big.NewRat(-1, 2)}))
	case "atan":
		outer = PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1))
	case "acot":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), PowOf(f.arg, N(2))), N(-1)))
	case "sinh":
		outer = FuncOf("cosh", f.arg)
	case "cosh":
		outer = FuncOf("sinh", f.arg)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(FuncOf("tanh", f.arg), N(2))))
	case "abs":
		outer = FuncOf("sign", f.arg)
	default:
		outer = FuncOf("D["+f.name+"]", f.arg)
	}
	return MulOf(outer, du).Simplify()
}

// FuncName reports the applied function, used by the verifier's boundary table.
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

// ============================================================
// Free symbols
// ============================================================

// FreeSymbols returns the set of variable names appearing in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// ContainsSymbol reports whether varName appears free in e.
func ContainsSymbol(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}

// ContainsFunc reports whether a function application named name appears
// anywhere in e.
func ContainsFunc(e Expr, name string) bool {
	switch v := e.(type) {
	case *Add:
		for _, t := range v.terms {
			if ContainsFunc(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if ContainsFunc(f, name) {
				return true
			}
		}
	case *Pow:
		return ContainsFunc(v.base, name) || ContainsFunc(v.exp, name)
	case *Func:
		if v.name == name {
			return true
		}
		return ContainsFunc(v.arg, name)
	}
	return false
}

// ============================================================
// Numeric evaluation
// ============================================================

// EvalReal evaluates e over float64 with vars bound to values. Unknown
// functions and unbound variables are errors; domain violations surface as
// NaN/Inf in the result, which callers test for.
func EvalReal(e Expr, vars map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil
	case *Sym:
		val, ok := vars[v.name]
		if !ok {
			return 0, fmt.Errorf("unbound variable %q", v.name)
		}
		return val, nil
	case *Add:
		acc := 0.0
		for _, t := range v.terms {
			tv, err := EvalReal(t, vars)
			if err != nil {
				return 0, err
			}
			acc += tv
		}
		return acc, nil
	case *Mul:
		acc := 1.0
		for _, f := range v.factors {
			fv, err := EvalReal(f, vars)
			if err != nil {
				return 0, err
			}
			acc *= fv
		}
		return acc, nil
	case *Pow:
		b, err := EvalReal(v.base, vars)
		if err != nil {
			return 0, err
		}
		x, err := EvalReal(v.exp, vars)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, x), nil
	case *Func:
		a, err := EvalReal(v.arg, vars)
		if err != nil {
			return 0, err
		}
		return evalRealFunc(v.name, a)
	}
	return 0, fmt.Errorf("cannot evaluate expression of type %T", e)
}

func evalRealFunc(name string, a float64) (float64, error) {
	switch name {
	case "sin":
		return math.Sin(a), nil
	case "cos":
		return math.Cos(a), nil
	case "tan":
		return math.Tan(a), nil
	case "cot":
		return math.Cos(a) / math.Sin(a), nil
	case "asin":
		return math.Asin(a), nil
	case "acos":
		return math.Acos(a), nil
	case "atan":
		return math.Atan(a), nil
	case "acot":
		// atan(1/x) convention: acot(0) = pi/2, acot(±Inf) = 0.
		return math.Atan(1 / a), nil
	case "exp":
		return math.Exp(a), nil
	case "ln":
		return math.Log(a), nil
	case "sinh":
		return math.Sinh(a), nil
	case "cosh":
		return math.Cosh(a), nil
	case "tanh":
		return math.Tanh(a), nil
	case "abs":
		return math.Abs(a), nil
	case "sign":
		switch {
		case a > 0:
			return 1, nil
		case a < 0:
			return -1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unknown function %q", name)
}

// EvalComplex evaluates e over complex128. Used when candidate roots carry an
// imaginary part.
func EvalComplex(e Expr, vars map[string]complex128) (complex128, error) {
	switch v := e.(type) {
	case *Num:
		return complex(v.Float64(), 0), nil
	case *Sym:
		val, ok := vars[v.name]
		if !ok {
			return 0, fmt.Errorf("unbound variable %q", v.name)
		}
		return val, nil
	case *Add:
		acc := complex128(0)
		for _, t := range v.terms {
			tv, err := EvalComplex(t, vars)
			if err != nil {
				return 0, err
			}
			acc += tv
		}
		return acc, nil
	case *Mul:
		acc := complex128(1)
		for _, f := range v.factors {
			fv, err := EvalComplex(f, vars)
			if err != nil {
				return 0, err
			}
			acc *= fv
		}
		return acc, nil
	case *Pow:
		b, err := EvalComplex(v.base, vars)
		if err != nil {
			return 0, err
		}
		x, err := EvalComplex(v.exp, vars)
		if err != nil {
			return 0, err
		}
		return cmplx.Pow(b, x), nil
	case *Func:
		a, err := EvalComplex(v.arg, vars)
		if err != nil {
			return 0, err
		}
		return evalComplexFunc(v.name, a)
	}
	return 0, fmt.Errorf("cannot evaluate expression of type %T", e)
}

func evalComplexFunc(name string, a complex128) (complex128, error) {
	switch name {
	case "sin":
		return cmplx.Sin(a), nil
	case "cos":
		return cmplx.Cos(a), nil
	case "tan":
		return cmplx.Tan(a), nil
	case "cot":
		return cmplx.Cot(a), nil
	case "asin":
		return cmplx.Asin(a), nil
	case "acos":
		return cmplx.Acos(a), nil
	case "atan":
		return cmplx.Atan(a), nil
	case "acot":
		return cmplx.Atan(1 / a), nil
	case "exp":
		return cmplx.Exp(a), nil
	case "ln":
		return cmplx.Log(a), nil
	case "sinh":
		return cmplx.Sinh(a), nil
	case "cosh":
		return cmplx.Cosh(a), nil
	case "tanh":
		return cmplx.Tanh(a), nil
	case "abs":
		return complex(cmplx.Abs(a), 0), nil
	}
	return 0, fmt.Errorf("unknown function %q", name)
}

// ============================================================
// Polynomial coefficient extraction
// ============================================================

const maxPolyDegree = 64

// Coefficients attempts a polynomial decomposition of e in varName. On success
// it returns coefficients highest degree first with len == degree+1. The false
// return is the normal non-polynomial branch, not an error.
func Coefficients(e Expr, varName string) ([]float64, bool) {
	byDeg, ok := polyMap(e.Simplify(), varName)
	if !ok {
		return nil, false
	}
	deg := 0
	for d, c := range byDeg {
		if d > deg && c != 0 {
			deg = d
		}
	}
	out := make([]float64, deg+1)
	for d, c := range byDeg {
		// Degrees above deg only appear with zero coefficients.
		if d <= deg {
			out[deg-d] = c
		}
	}
	return out, true
}

// polyMap returns degree → coefficient, or false when e is not a finite-degree
// polynomial in varName.
func polyMap(e Expr, varName string) (map[int]float64, bool) {
	if !ContainsSymbol(e, varName) {
		v, err := EvalReal(e, nil)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		return map[int]float64{0: v}, true
	}
	switch v := e.(type) {
	case *Sym:
		return map[int]float64{1: 1}, true
	case *Add:
		acc := map[int]float64{}
		for _, t := range v.terms {
			m, ok := polyMap(t, varName)
			if !ok {
				return nil, false
			}
			for d, c := range m {
				acc[d] += c
			}
		}
		return acc, true
	case *Mul:
		acc := map[int]float64{0: 1}
		for _, f := range v.factors {
			m, ok := polyMap(f, varName)
			if !ok {
				return nil, false
			}
			acc = polyMul(acc, m)
			if acc == nil {
				return nil, false
			}
		}
		return acc, true
	case *Pow:
		// The variable in an exponent is never polynomial.
		if ContainsSymbol(v.exp, varName) {
			return nil, false
		}
		en, err := EvalReal(v.exp, nil)
		if err != nil || en < 0 || en != math.Trunc(en) || en > maxPolyDegree {
			return nil, false
		}
		base, ok := polyMap(v.base, varName)
		if !ok {
			return nil, false
		}
		acc := map[int]float64{0: 1}
		for i := 0; i < int(en); i++ {
			acc = polyMul(acc, base)
			if acc == nil {
				return nil, false
			}
		}
		return acc, true
	case *Func:
		// Reaching here means the argument contains the variable.
		return nil, false
	}
	return nil, false
}

func polyMul(a, b map[int]float64) map[int]float64 {
	out := map[int]float64{}
	for da, ca := range a {
		for db, cb := range b {
			if da+db > maxPolyDegree {
				return nil
			}
			out[da+db] += ca * cb
		}
	}
	return out
}
