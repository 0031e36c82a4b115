package rules

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/diagnostic"
)

// Diagnostic codes reported while validating a rule file.
const (
	CodeRulesNil            = "rules_is_nil"
	CodeGraphNil            = "graph_is_nil"
	CodeUnsupportedVersion  = "unsupported_version"
	CodeTypeNotFound        = "type_not_found"
	CodeFuncNotFound        = "func_not_found"
	CodeNotANewtype         = "not_a_newtype"
	CodeCaseRequired        = "case_required"
	CodeCaseOnNonUnion      = "case_on_non_union"
	CodeCaseNotFound        = "case_not_found"
	CodeMissingField        = "missing_field"
	CodeSignatureMismatch   = "conversion_signature_mismatch"
	CodeFuncMultipleSources = "func_with_multiple_sources"
	CodeInvalidFuncName     = "invalid_func_name"
	CodeChainTooShort       = "chain_too_short"
	CodeInvalidOutput       = "invalid_output"
)

// Validate validates a rule file against the given type graph.
// This is a structural validation step only: references must resolve and
// wrappers must have a usable shape. Convertibility and duplicate
// conversions are checked during resolution.
func Validate(rf *RuleFile, graph *analyze.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if rf == nil {
		res.AddError(CodeRulesNil, "rule file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError(CodeGraphNil, "type graph is nil", "", "")
		return res
	}

	if rf.Version != CurrentVersion {
		res.AddError(CodeUnsupportedVersion, fmt.Sprintf("unsupported version %q (want %q)", rf.Version, CurrentVersion), "", "")
	}

	if name := rf.Output.Package; name != "" && !token.IsIdentifier(name) {
		res.AddError(CodeInvalidOutput, fmt.Sprintf("output package %q is not an identifier", name), "output", name)
	}

	for i := range rf.Conversions {
		validateConversion(res, Label(KindConversion, i), &rf.Conversions[i], graph)
	}

	for i := range rf.Wraps {
		validateWrap(res, Label(KindWrap, i), &rf.Wraps[i], graph)
	}

	for i := range rf.WrapAny {
		validateWrapAny(res, Label(KindWrapAny, i), &rf.WrapAny[i], graph)
	}

	for i := range rf.Chains {
		validateChain(res, Label(KindChain, i), &rf.Chains[i], graph)
	}

	return res
}

func validateConversion(res *diagnostic.Diagnostics, label string, def *ConversionDef, graph *analyze.TypeGraph) {
	if !requireFields(res, label, map[string]string{"from": def.From, "to": def.To, "func": def.Func}) {
		return
	}

	from, okFrom := checkType(res, label, def.From, graph)
	to, okTo := checkType(res, label, def.To, graph)

	fn, err := ResolveFunc(def.Func, graph)
	if err != nil {
		addResolveError(res, CodeFuncNotFound, label, def.Func, err)
		return
	}

	if okFrom && okTo && !fn.IsConversion(from, to) {
		res.AddError(CodeSignatureMismatch,
			fmt.Sprintf("%s is %s, want func(%s) %s", fn.ID.Short(), analyze.TypeString(fn.Signature),
				analyze.TypeString(from), analyze.TypeString(to)),
			label, def.Func)
	}
}

func validateWrap(res *diagnostic.Diagnostics, label string, rule *WrapRule, graph *analyze.TypeGraph) {
	if !requireFields(res, label, map[string]string{"wrapper": rule.Wrapper}) {
		return
	}

	checkWrapper(res, label, rule.Wrapper, rule.Case, graph)

	if rule.Source.IsEmpty() {
		res.AddError(CodeMissingField, "source is required", label, rule.Wrapper)
	}

	for _, src := range rule.Source {
		checkType(res, label, src, graph)
	}

	if rule.Func != "" && !rule.Source.IsEmpty() && !rule.Source.IsSingle() {
		res.AddError(CodeFuncMultipleSources, "func can only be set when a single source is listed", label, rule.Func)
	}

	checkFuncName(res, label, rule.Func)
}

func validateWrapAny(res *diagnostic.Diagnostics, label string, rule *WrapAnyRule, graph *analyze.TypeGraph) {
	if !requireFields(res, label, map[string]string{"wrapper": rule.Wrapper}) {
		return
	}

	checkWrapper(res, label, rule.Wrapper, rule.Case, graph)

	if rule.Held != "" {
		checkType(res, label, rule.Held, graph)
	}

	for _, term := range rule.Also {
		checkType(res, label, term, graph)
	}

	checkFuncName(res, label, rule.Func)
}

func validateChain(res *diagnostic.Diagnostics, label string, rule *ChainRule, graph *analyze.TypeGraph) {
	if len(rule.Types) < 2 {
		res.AddError(CodeChainTooShort, fmt.Sprintf("chain needs at least two types, got %d", len(rule.Types)), label, "")
		return
	}

	for _, ref := range rule.Types {
		checkType(res, label, ref, graph)
	}

	checkFuncName(res, label, rule.Func)
}

func requireFields(res *diagnostic.Diagnostics, label string, fields map[string]string) bool {
	ok := true

	for _, name := range []string{"wrapper", "from", "to", "func"} {
		if v, present := fields[name]; present && v == "" {
			res.AddError(CodeMissingField, name+" is required", label, "")
			ok = false
		}
	}

	return ok
}

func checkType(res *diagnostic.Diagnostics, label, ref string, graph *analyze.TypeGraph) (types.Type, bool) {
	t, err := ResolveType(ref, graph)
	if err != nil {
		addResolveError(res, CodeTypeNotFound, label, ref, err)
		return nil, false
	}

	return t, true
}

func checkWrapper(res *diagnostic.Diagnostics, label, ref, caseTag string, graph *analyze.TypeGraph) {
	if _, code, err := ResolveWrapper(ref, caseTag, graph); err != nil {
		addResolveError(res, code, label, ref, err)
	}
}

func checkFuncName(res *diagnostic.Diagnostics, label, name string) {
	if name != "" && !token.IsIdentifier(name) {
		res.AddError(CodeInvalidFuncName, fmt.Sprintf("%q is not a Go identifier", name), label, name)
	}
}

func addResolveError(res *diagnostic.Diagnostics, code, label, subject string, err error) {
	var re *ResolveError
	if errors.As(err, &re) {
		res.AddError(code, re.Msg, label, subject, re.Suggestions...)
		return
	}

	res.AddError(code, err.Error(), label, subject)
}
