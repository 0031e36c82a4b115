package main

import (
	"go/types"

	"github.com/davecgh/go-spew/spew"

	"newtype-generator/internal/analyze"
	"newtype-generator/internal/plan"
)

// CheckCmd validates and resolves a rule file without writing anything.
type CheckCmd struct {
	RuleSource

	Dump bool `long:"dump" description:"Print the resolved plan"`

	root *Options
}

func (c *CheckCmd) Execute(_ []string) error {
	log := c.root.logger()

	s, err := c.load(log)
	if err != nil {
		return err
	}

	pkgPath, err := s.outputPath(s.outputDir(""))
	if err != nil {
		return err
	}

	p, err := s.resolve(pkgPath)
	if err != nil {
		return err
	}

	if c.Dump {
		dumper := spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(c.root.stdout, dumpPlan(p))
	}

	log.Info().
		Int("functions", len(p.Conversions)).
		Int("external", len(p.External)).
		Msg("rule file is valid")

	return nil
}

// dumpedConversion is the printable form of a plan entry. The plan itself
// links into go/types and is too deep to print.
type dumpedConversion struct {
	Kind  string
	Rule  string
	Func  string
	From  string
	To    string
	Via   []string
	Terms []string
}

func dumpPlan(p *plan.Plan) []dumpedConversion {
	out := make([]dumpedConversion, 0, len(p.External)+len(p.Conversions))

	for _, list := range [][]*plan.Conversion{p.External, p.Conversions} {
		for _, c := range list {
			d := dumpedConversion{
				Kind:  c.Kind.String(),
				Rule:  c.Rule,
				Func:  c.Qualified(),
				From:  c.Source(),
				To:    analyze.TypeString(c.To),
				Terms: typeStrings(c.Terms),
			}

			links := c.Links
			if c.Held != nil {
				links = append([]plan.Link{*c.Held}, links...)
			}

			for _, l := range links {
				if l.Native() {
					d.Via = append(d.Via, analyze.TypeString(l.To)+"(v)")
				} else {
					d.Via = append(d.Via, l.Via.Qualified())
				}
			}

			out = append(out, d)
		}
	}

	return out
}

func typeStrings(list []types.Type) []string {
	if len(list) == 0 {
		return nil
	}

	out := make([]string, len(list))
	for i, t := range list {
		out[i] = analyze.TypeString(t)
	}

	return out
}
