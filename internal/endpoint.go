package internal

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"runtime"
	"slices"
	"strings"
)

// Struct tags recognized on endpoint input fields.
const (
	paramTag   = "param"
	defaultTag = "default"

	// varKeywordName marks a map[string]any field receiving every argument.
	varKeywordName = "*"
	requiredOption = "required"
)

var (
	contextType = reflect.TypeFor[Context]()
	errorType   = reflect.TypeFor[error]()
	kwargsType  = reflect.TypeFor[map[string]any]()
)

// Endpoint is the analyzed signature of an endpoint function.
//
// An endpoint function takes an optional leading Context followed by at most
// one input parameter: a struct, a pointer to a struct, or map[string]any.
// It returns nothing, an error, a result, or a result and an error.
//
//	type registerInput struct {
//	    Email  string `param:"email,required"`
//	    Name   string `param:"name,required"`
//	    Passwd string `param:"passwd,required"`
//	}
//
//	func (h *Handler) register(c awesome.Context, in registerInput) (any, error)
//
// Input struct fields are keyword arguments named by their param tag or by the
// lower-cased field name. The "required" option makes the argument mandatory,
// a default tag supplies a fallback value, and a map[string]any field tagged
// param:"*" receives every extracted argument.
type Endpoint struct {
	fn         reflect.Value
	name       string
	params     []string
	input      reflect.Type
	inputPtr   bool
	varKWField []int
	keys       []string
	required   []string
	defaults   map[string]string
	hasContext bool
	hasVarKW   bool
	hasResult  bool
	hasError   bool
}

// Analyze inspects an endpoint function and builds its argument plan.
func Analyze(fn any) (*Endpoint, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrInvalidEndpoint, fn)
	}
	t := v.Type()
	e := &Endpoint{
		fn:       v,
		name:     funcName(v),
		defaults: map[string]string{},
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("%w: %s: variadic parameters are not supported", ErrInvalidEndpoint, e.name)
	}

	for i := range t.NumIn() {
		in := t.In(i)
		switch {
		case in == contextType:
			if i != 0 {
				return nil, fmt.Errorf("%w: %s: Context must be the first parameter", ErrInvalidEndpoint, e.name)
			}
			e.hasContext = true
			e.params = append(e.params, "c")
		case e.input != nil:
			return nil, fmt.Errorf("%w: %s: at most one input parameter is allowed", ErrInvalidEndpoint, e.name)
		default:
			if err := e.analyzeInput(in); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEndpoint, e.name, err)
			}
		}
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			e.hasError = true
		} else {
			e.hasResult = true
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, fmt.Errorf("%w: %s: second result must be error", ErrInvalidEndpoint, e.name)
		}
		e.hasResult = true
		e.hasError = true
	default:
		return nil, fmt.Errorf("%w: %s: too many results", ErrInvalidEndpoint, e.name)
	}

	return e, nil
}

// MustAnalyze is like Analyze but panics on an invalid signature.
func MustAnalyze(fn any) *Endpoint {
	e, err := Analyze(fn)
	if err != nil {
		panic(err)
	}
	return e
}

func (e *Endpoint) analyzeInput(t reflect.Type) error {
	if t == kwargsType {
		e.input = t
		e.hasVarKW = true
		e.params = append(e.params, "**kw")
		return nil
	}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
		e.inputPtr = true
	}
	if st.Kind() != reflect.Struct {
		return fmt.Errorf("input must be a struct, a struct pointer or map[string]any, got %s", t)
	}
	e.input = st

	for i := range st.NumField() {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get(paramTag)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == varKeywordName {
			if f.Type != kwargsType {
				return fmt.Errorf("field %s: %q requires map[string]any", f.Name, varKeywordName)
			}
			if e.hasVarKW {
				return fmt.Errorf("field %s: duplicate %q field", f.Name, varKeywordName)
			}
			e.hasVarKW = true
			e.varKWField = f.Index
			e.params = append(e.params, "**"+strings.ToLower(f.Name))
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		if slices.Contains(e.keys, name) {
			return fmt.Errorf("field %s: duplicate argument %q", f.Name, name)
		}
		e.keys = append(e.keys, name)
		e.params = append(e.params, name)

		def, hasDefault := f.Tag.Lookup(defaultTag)
		if hasDefault {
			e.defaults[name] = def
		}
		if !hasDefault && slices.Contains(strings.Split(opts, ","), requiredOption) {
			e.required = append(e.required, name)
		}
	}
	return nil
}

// Name returns the function name used in logs.
func (e *Endpoint) Name() string { return e.name }

// Keys returns the named keyword arguments in declaration order.
func (e *Endpoint) Keys() []string { return slices.Clone(e.keys) }

// Required returns the keyword arguments that must be present.
func (e *Endpoint) Required() []string { return slices.Clone(e.required) }

// HasContext reports whether the function receives the request Context.
func (e *Endpoint) HasContext() bool { return e.hasContext }

// HasVarKeyword reports whether the function receives every extracted argument.
func (e *Endpoint) HasVarKeyword() bool { return e.hasVarKW }

// Signature renders the parameter list, e.g. "c,email,name".
func (e *Endpoint) Signature() string { return strings.Join(e.params, ",") }

// Extract collects keyword arguments for the endpoint from the request.
//
// Body methods read a JSON object or a form; other methods read the query
// string. Without a catch-all, arguments are filtered to the named keys.
// Path parameters are always merged in and take precedence.
func (e *Endpoint) Extract(c Context) (map[string]any, error) {
	var kw map[string]any
	if e.hasVarKW || len(e.keys) > 0 {
		if hasBody(c.Request().Method) {
			body, err := extractBody(c)
			if err != nil {
				return nil, err
			}
			kw = body
		} else {
			kw = extractQuery(c)
		}
	}

	params := c.Params()
	if kw == nil {
		kw = make(map[string]any, len(params))
		for k, v := range params {
			kw[k] = v
		}
	} else {
		if !e.hasVarKW && len(e.keys) > 0 {
			filtered := make(map[string]any, len(e.keys))
			for _, k := range e.keys {
				if v, ok := kw[k]; ok {
					filtered[k] = v
				}
			}
			kw = filtered
		}
		for k, v := range params {
			if _, ok := kw[k]; ok {
				c.LogWarn("duplicate arg name in named arg and kw args", "arg", k)
			}
			kw[k] = v
		}
	}

	for _, k := range e.required {
		if _, ok := kw[k]; !ok {
			return nil, ErrBadRequest("Missing argument: " + k)
		}
	}
	return kw, nil
}

// Call binds kw to the input parameter, invokes the function and returns its result.
func (e *Endpoint) Call(c Context, kw map[string]any) (any, error) {
	args := make([]reflect.Value, 0, 2)
	if e.hasContext {
		args = append(args, reflect.ValueOf(&c).Elem())
	}
	if e.input != nil {
		in, err := e.bind(kw)
		if err != nil {
			return nil, err
		}
		args = append(args, in)
	}

	out := e.fn.Call(args)

	if e.hasError {
		if err, _ := out[len(out)-1].Interface().(error); err != nil {
			return nil, err
		}
	}
	if !e.hasResult {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// bind builds the input argument value from keyword arguments.
func (e *Endpoint) bind(kw map[string]any) (reflect.Value, error) {
	if e.input == kwargsType {
		return reflect.ValueOf(maps.Clone(kw)), nil
	}

	values := make(map[string]any, len(kw)+len(e.defaults))
	for k, v := range e.defaults {
		values[k] = v
	}
	maps.Copy(values, kw)

	ptr := reflect.New(e.input)
	if err := decodeArgs(values, ptr.Interface()); err != nil {
		return reflect.Value{}, ErrBadRequest("Invalid argument", WithError(err))
	}
	if e.hasVarKW {
		ptr.Elem().FieldByIndex(e.varKWField).Set(reflect.ValueOf(maps.Clone(kw)))
	}

	if e.inputPtr {
		return ptr, nil
	}
	return ptr.Elem(), nil
}

// HandlerFunc adapts the endpoint to the low-level handler signature.
// An APIError returned by the function is sent to the client as a JSON
// mapping with a 200 status; other errors go to the error handler.
func (e *Endpoint) HandlerFunc() HandlerFunc {
	return func(c Context) error {
		kw, err := e.Extract(c)
		if err != nil {
			return err
		}
		c.LogDebug("call with args", "endpoint", e.name, "args", kw)

		result, err := e.Call(c, kw)
		if err != nil {
			if apiErr, ok := AsAPIError(err); ok {
				return Respond(c, apiErr.Payload())
			}
			return err
		}
		return Respond(c, result)
	}
}

// toHandlerFunc converts a route target into a HandlerFunc.
// Plain handlers are used as is; anything else is analyzed as an endpoint.
func toHandlerFunc(fn any) (HandlerFunc, *Endpoint, error) {
	switch h := fn.(type) {
	case HandlerFunc:
		return h, nil, nil
	case func(Context) error:
		return h, nil, nil
	case nil:
		return nil, nil, errors.Join(ErrInvalidEndpoint, errors.New("nil handler"))
	}
	e, err := Analyze(fn)
	if err != nil {
		return nil, nil, err
	}
	return e.HandlerFunc(), e, nil
}

func funcName(v reflect.Value) string {
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return v.Type().String()
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
