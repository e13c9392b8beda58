package proof

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/smasher164/lamkernel/eval"
	"github.com/smasher164/lamkernel/term"
)

// Proofs are exchanged as YAML. Terms are written in their display form and
// read back with term.Parse.

type document struct {
	Kind       Kind        `yaml:"kind"`
	Expr1      string      `yaml:"expr1,omitempty"`
	Expr2      string      `yaml:"expr2,omitempty"`
	Original   string      `yaml:"original,omitempty"`
	Reduced    string      `yaml:"reduced,omitempty"`
	Expr       string      `yaml:"expr,omitempty"`
	Result     string      `yaml:"result,omitempty"`
	Outcome    *outcome    `yaml:"outcome,omitempty"`
	Proofs     []*document `yaml:"proofs,omitempty"`
	Conclusion string      `yaml:"conclusion,omitempty"`
}

type outcome struct {
	Value   string            `yaml:"value,omitempty"`
	Closure string            `yaml:"closure,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}

type provenDocument struct {
	Expr  string    `yaml:"expr"`
	Proof *document `yaml:"proof"`
}

func Marshal(p Proof) ([]byte, error) {
	d, err := encode(p)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(d)
}

func Unmarshal(b []byte) (Proof, error) {
	var d document
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decoding proof: %w", err)
	}
	return decode(&d)
}

func MarshalProven(pe ProvenExpr) ([]byte, error) {
	expr, err := text("expr", pe.Expr)
	if err != nil {
		return nil, err
	}
	d, err := encode(pe.Proof)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(provenDocument{Expr: expr, Proof: d})
}

func UnmarshalProven(b []byte) (ProvenExpr, error) {
	var d provenDocument
	if err := yaml.Unmarshal(b, &d); err != nil {
		return ProvenExpr{}, fmt.Errorf("decoding proven expression: %w", err)
	}
	expr, err := parseField("expr", d.Expr)
	if err != nil {
		return ProvenExpr{}, err
	}
	if d.Proof == nil {
		return ProvenExpr{}, fmt.Errorf("proven expression has no proof")
	}
	p, err := decode(d.Proof)
	if err != nil {
		return ProvenExpr{}, err
	}
	return Attach(expr, p), nil
}

func encode(p Proof) (*document, error) {
	d := &document{}
	var err error
	switch p := p.(type) {
	case AlphaEquivalence:
		d.Kind = p.Kind()
		d.Expr1, err = text("expr1", p.Expr1)
		if err == nil {
			d.Expr2, err = text("expr2", p.Expr2)
		}
	case BetaReduction:
		d.Kind = p.Kind()
		d.Original, err = text("original", p.Original)
		if err == nil {
			d.Reduced, err = text("reduced", p.Reduced)
		}
	case Evaluation:
		d.Kind = p.Kind()
		d.Expr, err = text("expr", p.Expr)
		if err == nil {
			d.Outcome, err = encodeResult(p.Result)
		}
	case Normalization:
		d.Kind = p.Kind()
		d.Expr, err = text("expr", p.Expr)
		if err == nil {
			d.Result, err = text("result", p.Result)
		}
	case Consistency:
		d.Kind = p.Kind()
	case Composite:
		d.Kind = p.Kind()
		d.Conclusion = p.Conclusion
		for i, q := range p.Proofs {
			qd, err := encode(q)
			if err != nil {
				return nil, fmt.Errorf("proof %d of composite: %w", i, err)
			}
			d.Proofs = append(d.Proofs, qd)
		}
	default:
		return nil, fmt.Errorf("cannot encode proof %T", p)
	}
	if err != nil {
		return nil, fmt.Errorf("%s proof: %w", d.Kind, err)
	}
	return d, nil
}

func encodeResult(r eval.Result) (*outcome, error) {
	switch r := r.(type) {
	case eval.Value:
		v, err := text("value", r.Term)
		if err != nil {
			return nil, err
		}
		return &outcome{Value: v}, nil
	case eval.Closure:
		body, err := text("closure", r.Body)
		if err != nil {
			return nil, err
		}
		o := &outcome{Closure: body}
		if !r.Env.Empty() {
			o.Env = make(map[string]string, r.Env.Len())
			for _, i := range r.Env.Indices() {
				t, _ := r.Env.Lookup(i)
				k := strconv.Itoa(i)
				if o.Env[k], err = text("env."+k, t); err != nil {
					return nil, err
				}
			}
		}
		return o, nil
	}
	return nil, fmt.Errorf("cannot encode evaluation result %T", r)
}

func text(field string, t term.Term) (string, error) {
	if err := term.Validate(t); err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	return t.String(), nil
}

func decode(d *document) (Proof, error) {
	switch d.Kind {
	case KindAlphaEquivalence:
		e1, err := parseField("expr1", d.Expr1)
		if err != nil {
			return nil, err
		}
		e2, err := parseField("expr2", d.Expr2)
		if err != nil {
			return nil, err
		}
		return AlphaEquivalence{Expr1: e1, Expr2: e2}, nil
	case KindBetaReduction:
		orig, err := parseField("original", d.Original)
		if err != nil {
			return nil, err
		}
		red, err := parseField("reduced", d.Reduced)
		if err != nil {
			return nil, err
		}
		return BetaReduction{Original: orig, Reduced: red}, nil
	case KindEvaluation:
		e, err := parseField("expr", d.Expr)
		if err != nil {
			return nil, err
		}
		if d.Outcome == nil {
			return nil, fmt.Errorf("evaluation proof has no outcome")
		}
		r, err := decodeResult(d.Outcome)
		if err != nil {
			return nil, err
		}
		return Evaluation{Expr: e, Result: r}, nil
	case KindNormalization:
		e, err := parseField("expr", d.Expr)
		if err != nil {
			return nil, err
		}
		r, err := parseField("result", d.Result)
		if err != nil {
			return nil, err
		}
		return Normalization{Expr: e, Result: r}, nil
	case KindConsistency:
		return Consistency{}, nil
	case KindComposite:
		proofs := make([]Proof, 0, len(d.Proofs))
		for i, qd := range d.Proofs {
			if qd == nil {
				return nil, fmt.Errorf("proof %d of composite is empty", i)
			}
			q, err := decode(qd)
			if err != nil {
				return nil, fmt.Errorf("proof %d of composite: %w", i, err)
			}
			proofs = append(proofs, q)
		}
		return Composite{Proofs: proofs, Conclusion: d.Conclusion}, nil
	}
	return nil, fmt.Errorf("unknown proof kind %q", d.Kind)
}

func decodeResult(o *outcome) (eval.Result, error) {
	if o.Value != "" && o.Closure != "" {
		return nil, fmt.Errorf("outcome is both a value and a closure")
	}
	if o.Value != "" {
		if len(o.Env) != 0 {
			return nil, fmt.Errorf("value outcome has an environment")
		}
		t, err := parseField("value", o.Value)
		if err != nil {
			return nil, err
		}
		return eval.Value{Term: t}, nil
	}
	body, err := parseField("closure", o.Closure)
	if err != nil {
		return nil, err
	}
	env := eval.NewEnv()
	for _, k := range lo.Keys(o.Env) {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("bad environment index %q", k)
		}
		t, err := parseField("env."+k, o.Env[k])
		if err != nil {
			return nil, err
		}
		env = env.Insert(i, t)
	}
	return eval.Closure{Env: env, Body: body}, nil
}

func parseField(name, s string) (term.Term, error) {
	if s == "" {
		return nil, fmt.Errorf("missing %s", name)
	}
	t, err := term.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
