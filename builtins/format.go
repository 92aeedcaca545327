package builtins

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"golosina/types"
)

// ============================================================================
// FMT MODULE
// ============================================================================

func (r *Registry) formatModule() *types.Object {
	return r.newModule(
		types.NewNative("print", types.Variadic, r.builtinPrint),
		types.NewNative("println", types.Variadic, r.builtinPrintln),
		types.NewNative("format", types.Variadic, builtinFormat),
		types.NewNative("number", types.Fixed(1), builtinNumber),
	)
}

// builtinPrint writes its arguments separated by spaces
// print(...) -> null
func (r *Registry) builtinPrint(args []types.Value) (any, error) {
	if _, err := io.WriteString(r.out, joinDisplay(args)); err != nil {
		return nil, err
	}
	return nil, nil
}

// builtinPrintln is print followed by a newline
// println(...) -> null
func (r *Registry) builtinPrintln(args []types.Value) (any, error) {
	if _, err := io.WriteString(r.out, joinDisplay(args)+"\n"); err != nil {
		return nil, err
	}
	return nil, nil
}

func joinDisplay(args []types.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = display(arg)
	}
	return strings.Join(parts, " ")
}

// builtinFormat substitutes each {} in the template with the next
// argument's display form. "{{" and "}}" produce literal braces.
// format(template, ...) -> str
func builtinFormat(args []types.Value) (any, error) {
	tpl, err := types.StringArg(args, 0)
	if err != nil {
		return nil, err
	}
	rest := args[1:]

	var sb strings.Builder
	next := 0
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		switch {
		case c == '{' && i+1 < len(tpl) && tpl[i+1] == '{':
			sb.WriteByte('{')
			i++
		case c == '}' && i+1 < len(tpl) && tpl[i+1] == '}':
			sb.WriteByte('}')
			i++
		case c == '{' && i+1 < len(tpl) && tpl[i+1] == '}':
			if next >= len(rest) {
				return nil, types.NewError(types.E_ARGS, "format has more placeholders than arguments (%d)", len(rest))
			}
			sb.WriteString(display(rest[next]))
			next++
			i++
		default:
			sb.WriteByte(c)
		}
	}
	if next < len(rest) {
		return nil, types.NewError(types.E_ARGS, "format used %d of %d arguments", next, len(rest))
	}
	return sb.String(), nil
}

// builtinNumber renders a number with English digit grouping
// number(n) -> str
func builtinNumber(args []types.Value) (any, error) {
	p := message.NewPrinter(language.English)
	switch v := types.PrimitiveOf(args[0]).(type) {
	case types.IntValue:
		return p.Sprint(number.Decimal(v.Val)), nil
	case types.FloatValue:
		return p.Sprint(number.Decimal(v.Val)), nil
	}
	return nil, types.NewError(types.E_TYPE, "number expects a number, got %s", types.TypeOf(args[0]))
}
