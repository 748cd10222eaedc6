/*
Package definition declares templates as YAML or JSON documents.

A definition is an ordered list of parts. Each part is either literal text
or a slot description; there is no template syntax inside the text:

	name: profile
	description: Member profile card
	parts:
	  - text: "Name: "
	  - slot: {kind: str, name: name}
	  - text: "\nAge: "
	  - slot: {kind: int, name: age}
	  - text: "\nRank: "
	  - slot: {kind: cond, name: premium, then: premium, else: regular}
	  - text: " user"

Build turns a definition into a *strtmpl.Template. Prepare also applies
the slot names so the template can be compiled from a map.

# Slot Kinds

	str      string, optional default
	num      float64, optional default
	int      int, optional default
	bool     bool, optional default
	any      any value, optional default
	cond     bool -> then / else
	tuple    int index into values
	enum     int index into values, fallback when out of range (fallback required)
	record   string key into table
	lines    list of strings joined with newlines
	joined   list of strings joined with separator
	html     string sanitized with the strict HTML policy

Computed slots backed by Go functions cannot be declared; build those in
code with strtmpl.Computed.
*/
package definition
