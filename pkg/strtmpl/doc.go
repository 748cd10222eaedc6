/*
Package strtmpl builds strings from literal text and typed placeholder slots.

# Overview

A Template is an ordered list of literal segments with a placeholder slot
between each pair. Templates are assembled once, usually at package level,
and compiled many times with different values. There is no template syntax
to parse: the parts are given directly as Go values.

# Basic Usage

	hello := strtmpl.New("Hello ", strtmpl.Str("Template"), "!")

	hello.MustCompile()        // "Hello Template!"
	hello.MustCompile("World") // "Hello World!"

Values that are not placeholders are stringified into the surrounding text:

	env := "prod"
	t := strtmpl.New("environment is ", env) // no slots

# Placeholders

Two kinds of placeholder exist:

  - Primitive slots (Str, Num, Primitive) substitute the value as text and
    may declare a default used when the value is missing.
  - Computed slots (Cond, Tuple, Enum, Record, Lines, Joined, Computed)
    pass the value to a function that produces the text.

A value is missing when it is nil, Missing, a nil pointer, or not supplied.

	profile := strtmpl.New(
	    "Name: ", strtmpl.Str(), "\n",
	    "Age: ", strtmpl.Num[int](), "\n",
	    "Gender: ", strtmpl.Tuple[int]("male", "female", "other", "no answer"), "\n",
	    "Role: ", strtmpl.Record(map[string]string{"admin": "Administrator", "member": "Member"}), "\n",
	    "Rank: ", strtmpl.Cond("premium", "regular"), " user\n",
	    "Log:\n", strtmpl.Lines(),
	)

	profile.Compile("Alice", 18, 1, "admin", true, []string{"signed in"})

# Named Values

Prepare names the slots so the template can be filled from a map. Names may
repeat; every slot with the same name gets the same value:

	p := profile.MustPrepare("name", "age", "gender", "role", "premium", "logs")
	p.Compile(map[string]any{
	    "name": "Alice", "age": 18, "gender": 1,
	    "role": "admin", "premium": true, "logs": []string{"signed in"},
	})

# Typed Bindings

Bind1 through Bind6 fix the parameter list of Compile at compile time:

	greet := strtmpl.New("Hello ", strtmpl.Str(), ", you are ", strtmpl.Num[int]())
	g, err := strtmpl.Bind2[string, int](greet)
	out, err := g.Compile("Alice", 18)

Use a pointer type parameter for optional slots; a nil pointer selects the
default.

# Errors

Compile returns a *MissingValueError when a slot ends up without usable
text: the value is missing and there is no default, or the slot resolved to
the empty string. Present zero values such as 0 and false are kept. Other
failures are *ArityError, *ValueTypeError and *ResolveError. All of them
match their sentinel with errors.Is.

WithMissingAction and WithAllowEmpty relax these rules per template.

# Observability

WithLogger, WithMetrics and WithTracing attach slog logging and
OpenTelemetry metrics and spans to compiles. All are off by default.

# Thread Safety

Template, Placeholder, Prepared and the typed bindings are immutable and safe
for concurrent use. Computed slot functions are called synchronously, once
per slot per compile.
*/
package strtmpl
