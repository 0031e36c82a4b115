package plan

import (
	"errors"
	"fmt"
	"go/types"
	"strings"

	"github.com/rs/zerolog"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/common"
	"newtype-generator/internal/diagnostic"
	"newtype-generator/internal/rules"
)

// Diagnostic codes reported during resolution.
const (
	CodeDuplicateConversion   = "duplicate_conversion"
	CodeDuplicateFunction     = "duplicate_function"
	CodeNoConversionPath      = "no_conversion_path"
	CodeMissingChainLink      = "missing_chain_link"
	CodeChainNativeLink       = "chain_native_link"
	CodeCyclicConversion      = "cyclic_conversion"
	CodeBlanketInterfaceHeld  = "blanket_interface_held"
	CodeBlanketInterfaceTerm  = "blanket_interface_term"
	CodeBlanketNotConvertible = "blanket_term_not_convertible"
	CodeBlanketTypeSet        = "blanket_type_set"
	CodeHeldTypeMismatch      = "held_type_mismatch"
	CodeUnexportedType        = "unexported_type"
	CodeUnexportedField       = "unexported_field"
	CodeUnexportedFunc        = "unexported_function"
	CodeUnusedConversion      = "unused_conversion"
)

// ErrInvalidRules is returned when Resolve is called without a rule file or type graph.
var ErrInvalidRules = errors.New("rule file and type graph are required")

// Config holds configuration for the resolution process.
type Config struct {
	// OutputPkgPath is the import path of the generated package. Types of
	// that package are referred to unqualified and may be unexported.
	OutputPkgPath string
	// Logger receives a debug event per registered conversion.
	Logger zerolog.Logger
}

// DefaultConfig returns the default resolution configuration.
func DefaultConfig() Config {
	return Config{
		Logger: zerolog.Nop(),
	}
}

// Resolver performs the resolution pipeline.
type Resolver struct {
	graph  *analyze.TypeGraph
	rules  *rules.RuleFile
	config Config
	log    zerolog.Logger

	reg   *registry
	diags *diagnostic.Diagnostics
}

// NewResolver creates a new Resolver.
func NewResolver(graph *analyze.TypeGraph, rf *rules.RuleFile, config Config) *Resolver {
	return &Resolver{
		graph:  graph,
		rules:  rf,
		config: config,
		log:    config.Logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve runs the full resolution pipeline and returns a Plan.
// Rule problems are reported through Plan.Diagnostics; when it has errors
// the plan holds no conversions. The error result is reserved for misuse.
func (r *Resolver) Resolve() (*Plan, error) {
	if r.graph == nil || r.rules == nil {
		return nil, ErrInvalidRules
	}

	p := &Plan{
		OutputPkgPath: r.config.OutputPkgPath,
		TypeGraph:     r.graph,
	}

	r.reg = newRegistry()
	r.diags = &p.Diagnostics

	r.diags.Merge(*rules.Validate(r.rules, r.graph))
	if r.diags.HasErrors() {
		return p, nil
	}

	p.External = r.registerExternal()

	var generated []*Conversion

	generated = append(generated, r.registerWraps()...)
	generated = append(generated, r.registerWrapAny()...)
	generated = append(generated, r.registerChains()...)

	for _, c := range generated {
		switch c.Kind {
		case KindDirect:
			r.resolveDirect(c)
		case KindChain:
			r.resolveChain(c)
		}
	}

	r.warnUnused(p.External, generated)

	if r.diags.HasErrors() {
		return p, nil
	}

	ordered, err := r.order(generated)
	if errors.Is(err, errCycle) {
		return p, nil
	}

	if err != nil {
		return nil, err
	}

	p.Conversions = ordered

	return p, nil
}

// register adds c unless it duplicates a registered pair or function name.
func (r *Resolver) register(c *Conversion) bool {
	if prev := r.reg.conflict(c); prev != nil {
		r.diags.AddError(CodeDuplicateConversion,
			fmt.Sprintf("%s already converts %s (%s, %s)", prev.Qualified(), c.Pair(), prev.Kind, prev.Rule),
			c.Rule, c.Name)

		return false
	}

	if prev := r.reg.function(c.PkgPath, c.Name); prev != nil {
		r.diags.AddError(CodeDuplicateFunction,
			fmt.Sprintf("function %s is already declared by %s", c.Name, prev.Rule),
			c.Rule, c.Name)

		return false
	}

	r.reg.add(c)

	r.log.Debug().
		Str("kind", c.Kind.String()).
		Str("rule", c.Rule).
		Str("func", c.Qualified()).
		Str("pair", c.Pair()).
		Msg("registered conversion")

	return true
}

func (r *Resolver) registerExternal() []*Conversion {
	var out []*Conversion

	for i, def := range r.rules.Conversions {
		label := rules.Label(rules.KindConversion, i)

		from, errFrom := rules.ResolveType(def.From, r.graph)
		to, errTo := rules.ResolveType(def.To, r.graph)

		fn, errFn := rules.ResolveFunc(def.Func, r.graph)
		if errFrom != nil || errTo != nil || errFn != nil {
			// Reported by validation.
			continue
		}

		c := &Conversion{
			Kind:        KindExternal,
			Rule:        label,
			Name:        fn.ID.Name,
			PkgPath:     fn.ID.PkgPath,
			From:        from,
			To:          to,
			Description: def.Description,
		}

		if r.register(c) {
			out = append(out, c)
		}
	}

	return out
}

func (r *Resolver) registerWraps() []*Conversion {
	var out []*Conversion

	for i, rule := range r.rules.Wraps {
		label := rules.Label(rules.KindWrap, i)

		w, ok := r.wrapper(label, rule.Wrapper, rule.Case)
		if !ok {
			continue
		}

		for _, src := range rule.Source {
			from, err := rules.ResolveType(src, r.graph)
			if err != nil {
				continue
			}

			r.checkTypes(label, from)

			name := rule.Func
			if name == "" {
				name = directName(w, from)
			}

			c := &Conversion{
				Kind:    KindDirect,
				Rule:    label,
				Name:    name,
				PkgPath: r.config.OutputPkgPath,
				From:    from,
				To:      w.Target.GoType,
				Wrapper: w,
			}

			if r.register(c) {
				out = append(out, c)
			}
		}
	}

	return out
}

func (r *Resolver) registerWrapAny() []*Conversion {
	var out []*Conversion

	for i, rule := range r.rules.WrapAny {
		label := rules.Label(rules.KindWrapAny, i)

		w, ok := r.wrapper(label, rule.Wrapper, rule.Case)
		if !ok {
			continue
		}

		terms, ok := r.blanketTerms(label, w, rule)
		if !ok {
			continue
		}

		name := rule.Func
		if name == "" {
			name = blanketName(w)
		}

		c := &Conversion{
			Kind:    KindBlanket,
			Rule:    label,
			Name:    name,
			PkgPath: r.config.OutputPkgPath,
			To:      w.Target.GoType,
			Wrapper: w,
			Terms:   terms,
		}

		if !r.register(c) {
			continue
		}

		r.diags.AddInfo(CodeBlanketTypeSet,
			fmt.Sprintf("%s accepts every type whose underlying type is one of %s, named types included", name, c.Source()),
			label, name)

		out = append(out, c)
	}

	return out
}

// blanketTerms computes the constraint terms of a blanket rule: the
// underlying type of the held type, then the underlying type of every
// extra term, without repeats.
func (r *Resolver) blanketTerms(label string, w *rules.Wrapper, rule rules.WrapAnyRule) ([]types.Type, bool) {
	held := w.Held()

	if rule.Held != "" {
		want, err := rules.ResolveType(rule.Held, r.graph)
		if err != nil {
			return nil, false
		}

		if !types.Identical(want, held) {
			r.diags.AddError(CodeHeldTypeMismatch,
				fmt.Sprintf("%s holds %s, not %s", w.Name(), analyze.TypeString(held), analyze.TypeString(want)),
				label, rule.Held)

			return nil, false
		}
	}

	if types.IsInterface(held) {
		r.diags.AddError(CodeBlanketInterfaceHeld,
			fmt.Sprintf("%s holds interface type %s, which cannot form a type set", w.Name(), analyze.TypeString(held)),
			label, w.Name())

		return nil, false
	}

	r.checkTypes(label, held)

	terms := []types.Type{held.Underlying()}
	r.checkLiteralFields(label, held.Underlying())

	ok := true

	for _, ref := range rule.Also {
		t, err := rules.ResolveType(ref, r.graph)
		if err != nil {
			ok = false
			continue
		}

		u := t.Underlying()

		switch {
		case types.IsInterface(u):
			r.diags.AddError(CodeBlanketInterfaceTerm,
				fmt.Sprintf("interface type %s cannot be a type set term", analyze.TypeString(t)), label, ref)

			ok = false
		case !convertible(u, held):
			r.diags.AddError(CodeBlanketNotConvertible,
				fmt.Sprintf("%s is not convertible to held type %s", analyze.TypeString(t), analyze.TypeString(held)),
				label, ref)

			ok = false
		case !containsIdentical(terms, u):
			r.checkTypes(label, u)
			r.checkLiteralFields(label, u)
			terms = append(terms, u)
		}
	}

	return terms, ok
}

func (r *Resolver) registerChains() []*Conversion {
	var out []*Conversion

	for i, rule := range r.rules.Chains {
		label := rules.Label(rules.KindChain, i)

		path := make([]types.Type, 0, len(rule.Types))

		for _, ref := range rule.Types {
			t, err := rules.ResolveType(ref, r.graph)
			if err != nil {
				break
			}

			path = append(path, t)
		}

		if len(path) != len(rule.Types) || len(path) < 2 {
			continue
		}

		r.checkTypes(label, path...)

		first, _ := common.First(path)
		last, _ := common.Last(path)

		name := rule.Func
		if name == "" {
			name = chainName(first, last)
		}

		c := &Conversion{
			Kind:    KindChain,
			Rule:    label,
			Name:    name,
			PkgPath: r.config.OutputPkgPath,
			From:    first,
			To:      last,
			Path:    path,
		}

		if r.register(c) {
			out = append(out, c)
		}
	}

	return out
}

// wrapper resolves a rule's wrapper and checks it can be built from the
// output package.
func (r *Resolver) wrapper(label, ref, caseTag string) (*rules.Wrapper, bool) {
	w, _, err := rules.ResolveWrapper(ref, caseTag, r.graph)
	if err != nil {
		return nil, false
	}

	r.checkTypes(label, w.Target.GoType, w.Value.GoType)
	r.checkField(label, w.Value)

	return &w, true
}

// resolveDirect resolves the step from a direct wrap's source to the held type.
func (r *Resolver) resolveDirect(c *Conversion) {
	held := c.Wrapper.Held()

	l := r.link(c, c.From, held)
	if l == nil {
		r.diags.AddError(CodeNoConversionPath,
			fmt.Sprintf("no conversion from %s to held type %s of %s", analyze.TypeString(c.From), analyze.TypeString(held), c.Wrapper.Name()),
			c.Rule, c.Name)

		return
	}

	r.checkTypes(c.Rule, held)
	r.checkFunc(c.Rule, l.Via)

	c.Held = l
}

// resolveChain resolves every link of a chain.
func (r *Resolver) resolveChain(c *Conversion) {
	links := make([]Link, 0, len(c.Path)-1)
	ok := true

	for i, pair := range common.Pairs(c.Path) {
		l := r.link(c, pair[0], pair[1])
		if l == nil {
			r.diags.AddError(CodeMissingChainLink,
				fmt.Sprintf("link %d: no conversion from %s to %s", i, analyze.TypeString(pair[0]), analyze.TypeString(pair[1])),
				c.Rule, c.Name)

			ok = false

			continue
		}

		if l.Native() {
			r.diags.AddInfo(CodeChainNativeLink,
				fmt.Sprintf("link %d: %s to %s uses a Go conversion", i, analyze.TypeString(pair[0]), analyze.TypeString(pair[1])),
				c.Rule, c.Name)
		}

		r.checkFunc(c.Rule, l.Via)

		links = append(links, *l)
	}

	if ok {
		c.Links = links
	}
}

// link finds how to convert from -> to, excluding self: a registered
// conversion, then a blanket covering from, then a Go conversion.
func (r *Resolver) link(self *Conversion, from, to types.Type) *Link {
	if c := r.reg.lookup(from, to); c != nil && c != self {
		return &Link{From: from, To: to, Via: c}
	}

	if c := r.reg.blanketFor(from, to); c != nil && c != self {
		return &Link{From: from, To: to, Via: c}
	}

	if convertible(from, to) {
		return &Link{From: from, To: to}
	}

	return nil
}

// warnUnused reports external conversions no generated function calls.
func (r *Resolver) warnUnused(external, generated []*Conversion) {
	used := make(map[*Conversion]bool)

	for _, c := range generated {
		if c.Held != nil && c.Held.Via != nil {
			used[c.Held.Via] = true
		}

		for _, l := range c.Links {
			if l.Via != nil {
				used[l.Via] = true
			}
		}
	}

	for _, c := range external {
		if !used[c] {
			r.diags.AddWarning(CodeUnusedConversion,
				fmt.Sprintf("%s is not used by any generated conversion", c.Qualified()),
				c.Rule, c.Name)
		}
	}
}

// convertible reports whether to(v) is a valid Go conversion for v of type
// from that keeps every value. Integer to string conversions yield a rune
// and are not accepted; numeric conversions must widen.
func convertible(from, to types.Type) bool {
	if isInteger(from) && isString(to) {
		return false
	}

	fb, fok := from.Underlying().(*types.Basic)
	tb, tok := to.Underlying().(*types.Basic)

	if fok && tok && fb.Kind() != tb.Kind() &&
		fb.Info()&types.IsNumeric != 0 && tb.Info()&types.IsNumeric != 0 {
		return widens(fb, tb)
	}

	return types.ConvertibleTo(from, to)
}

// widens reports whether every value of from is exactly representable in to.
func widens(from, to *types.Basic) bool {
	fi, ti := from.Info(), to.Info()
	fbits, tbits := bitSize(from, true), bitSize(to, false)

	switch {
	case fi&types.IsInteger != 0 && ti&types.IsInteger != 0:
		fu, tu := fi&types.IsUnsigned != 0, ti&types.IsUnsigned != 0

		switch {
		case fu == tu:
			return fbits <= tbits
		case fu:
			return fbits < tbits
		default:
			return false
		}

	case fi&types.IsInteger != 0 && ti&types.IsFloat != 0:
		mantissa := 24
		if tbits == 64 {
			mantissa = 53
		}

		if fi&types.IsUnsigned == 0 {
			fbits--
		}

		return fbits <= mantissa

	case fi&types.IsFloat != 0 && ti&types.IsFloat != 0,
		fi&types.IsComplex != 0 && ti&types.IsComplex != 0:
		return fbits <= tbits

	default:
		return false
	}
}

// bitSize returns the width of a numeric kind. Word sized kinds count as
// 64 bits when converted from and 32 bits when converted to, so the result
// holds on every platform.
func bitSize(b *types.Basic, source bool) int {
	switch b.Kind() {
	case types.Int8, types.Uint8:
		return 8
	case types.Int16, types.Uint16:
		return 16
	case types.Int32, types.Uint32, types.Float32:
		return 32
	case types.Int64, types.Uint64, types.Float64, types.Complex64:
		return 64
	case types.Complex128:
		return 128
	default:
		if source {
			return 64
		}

		return 32
	}
}

func isInteger(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsInteger != 0
}

func isString(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsString != 0
}

// order sorts generated conversions so that every function follows the
// functions it calls.
func (r *Resolver) order(convs []*Conversion) ([]*Conversion, error) {
	index := make(map[*Conversion]int, len(convs))
	for i, c := range convs {
		index[c] = i
	}

	order, err := topoSort(len(convs), func(i int) []int {
		var deps []int

		for _, d := range convs[i].Dependencies() {
			if j, ok := index[d]; ok {
				deps = append(deps, j)
			}
		}

		return deps
	})
	if err != nil {
		if !errors.Is(err, errCycle) {
			return nil, fmt.Errorf("ordering conversions: %w", err)
		}

		done := make(map[int]bool, len(order))
		for _, i := range order {
			done[i] = true
		}

		var names []string

		for i, c := range convs {
			if !done[i] {
				names = append(names, c.Name)
			}
		}

		r.diags.AddError(CodeCyclicConversion,
			"conversions call each other in a cycle: "+strings.Join(names, ", "),
			"", "")

		return nil, err
	}

	out := make([]*Conversion, len(order))
	for i, j := range order {
		out[i] = convs[j]
	}

	return out, nil
}

func containsIdentical(list []types.Type, t types.Type) bool {
	for _, x := range list {
		if types.Identical(x, t) {
			return true
		}
	}

	return false
}
