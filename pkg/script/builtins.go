package script

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/neusis/pkg/engine"
	"github.com/chazu/neusis/pkg/geom"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Neusis Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: point-on-line -> point_on_line
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a *geom.Point so builtins can hand points to each other.
type sexpPoint struct {
	pt *geom.Point
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(point %q %g %g)", s.pt.Name, s.pt.X.Val, s.pt.Y.Val)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpLine wraps a *geom.Line.
type sexpLine struct {
	ln *geom.Line
}

func (s *sexpLine) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(line %q %s)", s.ln.Name, s.ln.Kind)
}
func (s *sexpLine) Type() *zygo.RegisteredType { return nil }

// sexpCircle wraps a *geom.Circle.
type sexpCircle struct {
	c *geom.Circle
}

func (s *sexpCircle) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(circle %q %s r=%g)", s.c.Name, s.c.Kind, s.c.Radius())
}
func (s *sexpCircle) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a point reference from a Sexp.
func toPoint(s zygo.Sexp) (*geom.Point, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.pt, nil
	}
	return nil, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// toLine extracts a line reference from a Sexp.
func toLine(s zygo.Sexp) (*geom.Line, error) {
	if l, ok := s.(*sexpLine); ok {
		return l.ln, nil
	}
	return nil, fmt.Errorf("expected line, got %T (%s)", s, s.SexpString(nil))
}

// toCircle extracts a circle reference from a Sexp.
func toCircle(s zygo.Sexp) (*geom.Circle, error) {
	if c, ok := s.(*sexpCircle); ok {
		return c.c, nil
	}
	return nil, fmt.Errorf("expected circle, got %T (%s)", s, s.SexpString(nil))
}

// toObject extracts any wrapped sketch object from a Sexp.
func toObject(s zygo.Sexp) (geom.Object, error) {
	switch v := s.(type) {
	case *sexpPoint:
		return v.pt, nil
	case *sexpLine:
		return v.ln, nil
	case *sexpCircle:
		return v.c, nil
	}
	return nil, fmt.Errorf("expected point, line or circle, got %T (%s)", s, s.SexpString(nil))
}

// wrapObject turns a sketch object into its script-side reference.
func wrapObject(o geom.Object) zygo.Sexp {
	switch v := o.(type) {
	case *geom.Point:
		return &sexpPoint{pt: v}
	case *geom.Line:
		return &sexpLine{ln: v}
	case *geom.Circle:
		return &sexpCircle{c: v}
	}
	return zygo.SexpNull
}

// pointList wraps a slice of points as a Lisp list.
func pointList(pts []*geom.Point) zygo.Sexp {
	items := make([]zygo.Sexp, 0, len(pts))
	for _, p := range pts {
		items = append(items, &sexpPoint{pt: p})
	}
	return zygo.MakeList(items)
}

// coordPair extracts an x, y coordinate pair from exactly two args.
func coordPair(op string, args []zygo.Sexp) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s requires x and y coordinates, got %d arguments", op, len(args))
	}
	x, err := toFloat64(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: x: %w", op, err)
	}
	y, err := toFloat64(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: y: %w", op, err)
	}
	return x, y, nil
}

// pointPair extracts exactly two point references.
func pointPair(op string, args []zygo.Sexp) (*geom.Point, *geom.Point, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s requires exactly 2 point arguments, got %d", op, len(args))
	}
	a, err := toPoint(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	b, err := toPoint(args[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, b, nil
}

// pointTrio extracts exactly three point references.
func pointTrio(op string, args []zygo.Sexp) (*geom.Point, *geom.Point, *geom.Point, error) {
	if len(args) != 3 {
		return nil, nil, nil, fmt.Errorf("%s requires exactly 3 point arguments, got %d", op, len(args))
	}
	a, err := toPoint(args[0])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	b, err := toPoint(args[1])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	c, err := toPoint(args[2])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, b, c, nil
}

// curveAndCoords extracts a leading curve reference plus x, y coordinates.
func curveAndCoords(op string, args []zygo.Sexp) (zygo.Sexp, float64, float64, error) {
	if len(args) != 3 {
		return nil, 0, 0, fmt.Errorf("%s requires a curve and x, y coordinates, got %d arguments", op, len(args))
	}
	x, y, err := coordPair(op, args[1:])
	if err != nil {
		return nil, 0, 0, err
	}
	return args[0], x, y, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all Neusis DSL builtins into a zygomys environment.
// The builtins drive the provided engine, populating its sketch during
// evaluation. snapRadius is the host default for (snap ...) calls that carry
// no :radius; zero or negative falls through to the engine default.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names match their registered underscore forms.
func registerBuiltins(env *zygo.Zlisp, eng *engine.Engine, snapRadius float64) {

	// -----------------------------------------------------------------------
	// (point 120 80)
	// -----------------------------------------------------------------------
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		x, y, err := coordPair("point", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := eng.CreateFreePoint(x, y)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point: %w", err)
		}
		return &sexpPoint{pt: p}, nil
	})

	// -----------------------------------------------------------------------
	// (point-on-line ab 30 0)
	//
	// Note: registered as "point_on_line" because zygomys does not support
	// hyphens in identifiers. The preprocessor converts point-on-line to
	// point_on_line in the source.
	// -----------------------------------------------------------------------
	env.AddFunction("point_on_line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		curve, x, y, err := curveAndCoords("point-on-line", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		l, err := toLine(curve)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point-on-line: %w", err)
		}
		p, err := eng.CreatePointOnLine(l, x, y)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point-on-line: %w", err)
		}
		return &sexpPoint{pt: p}, nil
	})

	// -----------------------------------------------------------------------
	// (point-on-circle c1 0 50)
	// -----------------------------------------------------------------------
	env.AddFunction("point_on_circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		curve, x, y, err := curveAndCoords("point-on-circle", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		c, err := toCircle(curve)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point-on-circle: %w", err)
		}
		p, err := eng.CreatePointOnCircle(c, x, y)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("point-on-circle: %w", err)
		}
		return &sexpPoint{pt: p}, nil
	})

	// -----------------------------------------------------------------------
	// (midpoint a b)
	// -----------------------------------------------------------------------
	env.AddFunction("midpoint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := pointPair("midpoint", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := eng.CreateMidpoint(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("midpoint: %w", err)
		}
		return &sexpPoint{pt: p}, nil
	})

	// -----------------------------------------------------------------------
	// (line a b)     infinite line through a and b
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := pointPair("line", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		l, err := eng.CreateInfiniteLine(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		return &sexpLine{ln: l}, nil
	})

	// -----------------------------------------------------------------------
	// (ray a b)      ray from a through b
	// -----------------------------------------------------------------------
	env.AddFunction("ray", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := pointPair("ray", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		l, err := eng.CreateRay(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ray: %w", err)
		}
		return &sexpLine{ln: l}, nil
	})

	// -----------------------------------------------------------------------
	// (segment a b)
	// -----------------------------------------------------------------------
	env.AddFunction("segment", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, err := pointPair("segment", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		l, err := eng.CreateSegment(a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("segment: %w", err)
		}
		return &sexpLine{ln: l}, nil
	})

	// -----------------------------------------------------------------------
	// (perpendicular p base)    line through p perpendicular to base
	// -----------------------------------------------------------------------
	env.AddFunction("perpendicular", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("perpendicular requires a point and a line, got %d arguments", len(args))
		}
		p, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("perpendicular: %w", err)
		}
		base, err := toLine(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("perpendicular: %w", err)
		}
		l, err := eng.CreatePerpendicularLine(p, base)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("perpendicular: %w", err)
		}
		return &sexpLine{ln: l}, nil
	})

	// -----------------------------------------------------------------------
	// (parallel p base)         line through p parallel to base
	// -----------------------------------------------------------------------
	env.AddFunction("parallel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("parallel requires a point and a line, got %d arguments", len(args))
		}
		p, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("parallel: %w", err)
		}
		base, err := toLine(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("parallel: %w", err)
		}
		l, err := eng.CreateParallelLine(p, base)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("parallel: %w", err)
		}
		return &sexpLine{ln: l}, nil
	})

	// -----------------------------------------------------------------------
	// (circle center rim)       radius follows the rim point
	// -----------------------------------------------------------------------
	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		center, rim, err := pointPair("circle", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		c, err := eng.CreateCircle(center, rim)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle: %w", err)
		}
		return &sexpCircle{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (circle-r center 50)      fixed radius
	// -----------------------------------------------------------------------
	env.AddFunction("circle_r", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("circle-r requires a center point and a radius, got %d arguments", len(args))
		}
		center, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle-r: %w", err)
		}
		r, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle-r: radius: %w", err)
		}
		c, err := eng.CreateCircleWithRadius(center, r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle-r: %w", err)
		}
		return &sexpCircle{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (compass center a b)      radius copied from the distance a-b
	// -----------------------------------------------------------------------
	env.AddFunction("compass", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		center, a, b, err := pointTrio("compass", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		c, err := eng.CreateCompassCircle(center, a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("compass: %w", err)
		}
		return &sexpCircle{c: c}, nil
	})

	// -----------------------------------------------------------------------
	// (circle3 a b c)           circle through three points
	// -----------------------------------------------------------------------
	env.AddFunction("circle3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		a, b, c, err := pointTrio("circle3", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		circ, err := eng.CreateThreePointCircle(a, b, c)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("circle3: %w", err)
		}
		return &sexpCircle{c: circ}, nil
	})

	// -----------------------------------------------------------------------
	// (intersect ab cd)         line x line     -> point
	// (intersect ab c1)         line x circle   -> list of points
	// (intersect c1 c2)         circle x circle -> list of points
	// -----------------------------------------------------------------------
	env.AddFunction("intersect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("intersect requires exactly 2 curves, got %d arguments", len(args))
		}
		switch a := args[0].(type) {
		case *sexpLine:
			switch b := args[1].(type) {
			case *sexpLine:
				p, err := eng.CreateLineLineIntersection(a.ln, b.ln)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
				}
				return &sexpPoint{pt: p}, nil
			case *sexpCircle:
				pts, err := eng.CreateLineCircleIntersection(a.ln, b.c)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
				}
				return pointList(pts), nil
			}
		case *sexpCircle:
			switch b := args[1].(type) {
			case *sexpLine:
				pts, err := eng.CreateLineCircleIntersection(b.ln, a.c)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
				}
				return pointList(pts), nil
			case *sexpCircle:
				pts, err := eng.CreateCircleCircleIntersection(a.c, b.c)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("intersect: %w", err)
				}
				return pointList(pts), nil
			}
		}
		return zygo.SexpNull, fmt.Errorf("intersect: expected two lines or circles, got %T and %T",
			args[0], args[1])
	})

	// -----------------------------------------------------------------------
	// (drag a 40 25)            returns true when the point moved
	// -----------------------------------------------------------------------
	env.AddFunction("drag", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("drag requires a point and x, y coordinates, got %d arguments", len(args))
		}
		p, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: %w", err)
		}
		x, y, err := coordPair("drag", args[1:])
		if err != nil {
			return zygo.SexpNull, err
		}
		moved := eng.DragTo(p.ID, x, y)
		return &zygo.SexpBool{Val: moved}, nil
	})

	// -----------------------------------------------------------------------
	// (freeze a)                pin a point against any movement
	// -----------------------------------------------------------------------
	env.AddFunction("freeze", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("freeze requires exactly 1 point argument, got %d", len(args))
		}
		p, err := toPoint(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("freeze: %w", err)
		}
		p.Frozen = true
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (hide c1 helper)          hide one or more objects
	// -----------------------------------------------------------------------
	env.AddFunction("hide", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("hide requires at least 1 object argument")
		}
		for _, arg := range args {
			o, err := toObject(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("hide: %w", err)
			}
			eng.SetHidden(geom.IDOf(o), true)
		}
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (show c1)                 make hidden objects visible again
	// -----------------------------------------------------------------------
	env.AddFunction("show", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("show requires at least 1 object argument")
		}
		for _, arg := range args {
			o, err := toObject(arg)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("show: %w", err)
			}
			eng.SetHidden(geom.IDOf(o), false)
		}
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (color a "#cc3311")
	// -----------------------------------------------------------------------
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("color requires an object and a color string, got %d arguments", len(args))
		}
		o, err := toObject(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		col, err := toString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		eng.SetColor(geom.IDOf(o), col)
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (clear)                   wipe the sketch, names and ids included
	// -----------------------------------------------------------------------
	env.AddFunction("clear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		eng.Clear()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (lookup "A")              find an object by display name
	// -----------------------------------------------------------------------
	env.AddFunction("lookup", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("lookup requires exactly 1 name argument, got %d", len(args))
		}
		objName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("lookup: %w", err)
		}
		o, ok := eng.FindName(objName)
		if !ok {
			return zygo.SexpNull, fmt.Errorf("lookup: no object named %q", objName)
		}
		return wrapObject(o), nil
	})

	// -----------------------------------------------------------------------
	// (snap 49 51)              resolved position as (x y), or nil
	// (snap 49 51 :radius 20)
	// -----------------------------------------------------------------------
	env.AddFunction("snap", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		x, y, err := coordPair("snap", pa.positional)
		if err != nil {
			return zygo.SexpNull, err
		}
		radius := snapRadius
		if v, ok := pa.kw["radius"]; ok {
			radius, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("snap: radius: %w", err)
			}
		}
		hit, ok := eng.ResolveSnap(x, y, radius)
		if !ok {
			return zygo.SexpNull, nil
		}
		return zygo.MakeList([]zygo.Sexp{
			&zygo.SexpFloat{Val: hit.Pos.X},
			&zygo.SexpFloat{Val: hit.Pos.Y},
		}), nil
	})

	// -----------------------------------------------------------------------
	// (checkpoint)              push the current state onto the undo stack
	// -----------------------------------------------------------------------
	env.AddFunction("checkpoint", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		eng.Checkpoint()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (undo)                    returns true when a state was restored
	// -----------------------------------------------------------------------
	env.AddFunction("undo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: eng.Undo()}, nil
	})

	// -----------------------------------------------------------------------
	// (redo)
	// -----------------------------------------------------------------------
	env.AddFunction("redo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: eng.Redo()}, nil
	})
}
