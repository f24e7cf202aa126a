package optimizers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnresolved matches an *UnresolvedError.
var ErrUnresolved = errors.New("optimizers: unresolved optimizer expression")

// UnresolvedError reports an expression that names no registered optimizer
// or cannot be parsed.
type UnresolvedError struct {
	Expr   string
	Reason error
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("optimizers: cannot resolve %q: %v. Accepted optimizers from %s: %s",
		e.Expr, e.Reason, strings.Join(Namespaces(), ", "), strings.Join(Names(), ", "))
}

func (e *UnresolvedError) Unwrap() error { return e.Reason }

// Is matches ErrUnresolved.
func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolved
}

// Resolve parses an optimizer expression and constructs the optimizer.
//
// The grammar is [namespace.]Name[(args)]. Name is matched
// case-insensitively against the catalog; namespace, when present, must be
// one of Namespaces and must provide Name. args is a comma separated list of
// key=value pairs, optionally led by a bare learning rate. Values are numbers
// or True/False. Omitted hyperparameters take their defaults.
func Resolve(expr string) (Optimizer, error) {
	e, hyper, err := parse(expr)
	if err != nil {
		return nil, &UnresolvedError{Expr: expr, Reason: err}
	}
	return e.build(hyper), nil
}

// parse splits the expression and merges its arguments over the defaults.
func parse(expr string) (entry, map[string]float64, error) {
	s := strings.TrimSpace(expr)
	if s == "" {
		return entry{}, nil, errors.New("empty expression")
	}

	head, args := s, ""
	if open := strings.IndexByte(s, '('); open >= 0 {
		if !strings.HasSuffix(s, ")") {
			return entry{}, nil, errors.New("unbalanced parentheses")
		}
		head, args = strings.TrimSpace(s[:open]), s[open+1:len(s)-1]
	}

	namespace, ident := "", head
	if dot := strings.LastIndexByte(head, '.'); dot >= 0 {
		namespace, ident = head[:dot], head[dot+1:]
	}

	e, ok := catalog[strings.ToLower(ident)]
	if !ok {
		return entry{}, nil, errors.Errorf("name '%s' is not defined", ident)
	}
	if namespace != "" && !e.provides(namespace) {
		return entry{}, nil, errors.Errorf("%s is not provided by %s", e.name, namespace)
	}

	hyper := copyHyper(e.defaults)
	if err := parseArgs(args, hyper); err != nil {
		return entry{}, nil, errors.Wrapf(err, "%s arguments", e.name)
	}
	return e, hyper, nil
}

// parseArgs assigns the call arguments into hyper, whose keys are the only
// accepted keywords.
func parseArgs(args string, hyper map[string]float64) error {
	if strings.TrimSpace(args) == "" {
		return nil
	}

	for i, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}

		key, raw, keyword := strings.Cut(arg, "=")
		if !keyword {
			if i != 0 {
				return errors.Errorf("positional argument %q after the first", arg)
			}
			key, raw = "learning_rate", arg
		}
		key, raw = strings.TrimSpace(key), strings.TrimSpace(raw)

		if _, ok := hyper[key]; !ok {
			return errors.Errorf("unexpected keyword argument %q", key)
		}
		v, err := parseValue(raw)
		if err != nil {
			return errors.Wrapf(err, "argument %s", key)
		}
		hyper[key] = v
	}
	return nil
}

func parseValue(raw string) (float64, error) {
	switch strings.ToLower(raw) {
	case "true":
		return 1, nil
	case "false":
		return 0, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Errorf("value %q is not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("value is invalid (%v)", v)
	}
	return v, nil
}
