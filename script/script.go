// Package script runs tengo macros against the editor.
//
// A macro sees a read-only `editor` map:
//
//	editor.width(), editor.height()
//	editor.has(x, y)
//	editor.paint(x, y), editor.erase(x, y)
//	editor.decor(x, y, tile), editor.clear_decor(x, y)
//	editor.text(content, x, y)
//	editor.log(args...)
package script

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Target is what a macro edits. Calls go through the same mirrored engine
// as pointer edits.
type Target interface {
	Size() (width, height int)
	Has(x, y int) bool
	Paint(x, y int)
	Erase(x, y int)
	PaintDecor(x, y, tile int)
	EraseDecor(x, y int)
	AddText(content string, x, y float64)
}

// Result counts the edits a macro issued.
type Result struct {
	Painted int
	Erased  int
	Decor   int
	Texts   int
}

func (r Result) Edits() int {
	return r.Painted + r.Erased + r.Decor + r.Texts
}

// Load reads a macro from disk.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return data, nil
}

// Run compiles and executes src against t.
func Run(ctx context.Context, src []byte, t Target) (Result, error) {
	var res Result
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math", "rand", "text", "fmt"))
	if err := s.Add("editor", buildEditor(t, &res)); err != nil {
		return res, fmt.Errorf("script: bind editor: %w", err)
	}
	compiled, err := s.Compile()
	if err != nil {
		return res, fmt.Errorf("script: compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return res, fmt.Errorf("script: run: %w", err)
	}
	return res, nil
}

func buildEditor(t Target, res *Result) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["width"] = &tengo.UserFunction{Name: "width", Value: func(args ...tengo.Object) (tengo.Object, error) {
		w, _ := t.Size()
		return &tengo.Int{Value: int64(w)}, nil
	}}

	values["height"] = &tengo.UserFunction{Name: "height", Value: func(args ...tengo.Object) (tengo.Object, error) {
		_, h := t.Size()
		return &tengo.Int{Value: int64(h)}, nil
	}}

	values["has"] = &tengo.UserFunction{Name: "has", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("has", args)
		if err != nil {
			return nil, err
		}
		if t.Has(x, y) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["paint"] = &tengo.UserFunction{Name: "paint", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("paint", args)
		if err != nil {
			return nil, err
		}
		t.Paint(x, y)
		res.Painted++
		return tengo.UndefinedValue, nil
	}}

	values["erase"] = &tengo.UserFunction{Name: "erase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("erase", args)
		if err != nil {
			return nil, err
		}
		t.Erase(x, y)
		res.Erased++
		return tengo.UndefinedValue, nil
	}}

	values["decor"] = &tengo.UserFunction{Name: "decor", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, y, err := point("decor", args[:2])
		if err != nil {
			return nil, err
		}
		tile, ok := tengo.ToInt(args[2])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "tile", Expected: "int", Found: args[2].TypeName()}
		}
		t.PaintDecor(x, y, tile)
		res.Decor++
		return tengo.UndefinedValue, nil
	}}

	values["clear_decor"] = &tengo.UserFunction{Name: "clear_decor", Value: func(args ...tengo.Object) (tengo.Object, error) {
		x, y, err := point("clear_decor", args)
		if err != nil {
			return nil, err
		}
		t.EraseDecor(x, y)
		res.Decor++
		return tengo.UndefinedValue, nil
	}}

	values["text"] = &tengo.UserFunction{Name: "text", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		content := objectAsString(args[0])
		x, xok := tengo.ToFloat64(args[1])
		y, yok := tengo.ToFloat64(args[2])
		if !xok || !yok {
			return nil, tengo.ErrInvalidArgumentType{Name: "position", Expected: "number", Found: args[1].TypeName()}
		}
		t.AddText(content, x, y)
		res.Texts++
		return tengo.UndefinedValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func point(name string, args []tengo.Object) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, tengo.ErrWrongNumArguments
	}
	x, xok := tengo.ToInt(args[0])
	y, yok := tengo.ToInt(args[1])
	if !xok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: name + " x", Expected: "int", Found: args[0].TypeName()}
	}
	if !yok {
		return 0, 0, tengo.ErrInvalidArgumentType{Name: name + " y", Expected: "int", Found: args[1].TypeName()}
	}
	return x, y, nil
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
