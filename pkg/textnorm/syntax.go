package textnorm

func cBlock() BlockComment { return BlockComment{Open: "/*", Close: "*/"} }

// Python covers hash comments and single, double and tripled quotes.
func Python() Syntax {
	return Syntax{
		LineComments: []string{"#"},
		Quotes:       `"'`,
		TripleQuotes: true,
	}
}

// CLike covers C, C++, Objective-C, Java, C#, Kotlin and Scala. Tripled
// quotes handle Java text blocks and Kotlin/Scala raw strings.
func CLike() Syntax {
	return Syntax{
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{cBlock()},
		Quotes:        `"'`,
		TripleQuotes:  true,
	}
}

// JavaScript covers JS and TS; template literals span lines.
func JavaScript() Syntax {
	return Syntax{
		LineComments:    []string{"//"},
		BlockComments:   []BlockComment{cBlock()},
		Quotes:          `"'`,
		MultilineQuotes: "`",
	}
}

// Go treats back-quoted strings as raw.
func Go() Syntax {
	return Syntax{
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{cBlock()},
		Quotes:        `"'`,
		RawQuotes:     "`",
	}
}

// Rust tracks only double quotes because a single quote also starts a lifetime.
func Rust() Syntax {
	return Syntax{
		LineComments:    []string{"//"},
		BlockComments:   []BlockComment{cBlock()},
		NestedBlocks:    true,
		MultilineQuotes: `"`,
	}
}

// Swift has nesting block comments and tripled multi-line strings.
func Swift() Syntax {
	return Syntax{
		LineComments:  []string{"//"},
		BlockComments: []BlockComment{cBlock()},
		NestedBlocks:  true,
		Quotes:        `"`,
		TripleQuotes:  true,
	}
}

// Ruby uses hash comments and =begin/=end blocks.
func Ruby() Syntax {
	return Syntax{
		LineComments:  []string{"#"},
		BlockComments: []BlockComment{{Open: "=begin", Close: "=end", LineStart: true}},
		Quotes:        `"'`,
	}
}

// SQL uses double-dash comments; only single quotes delimit literals.
func SQL() Syntax {
	return Syntax{
		LineComments:  []string{"--"},
		BlockComments: []BlockComment{cBlock()},
		Quotes:        `'`,
	}
}

// CSS has block comments only.
func CSS() Syntax {
	return Syntax{
		BlockComments: []BlockComment{cBlock()},
		Quotes:        `"'`,
	}
}

// HTML strips markup comments. Quotes are not tracked because prose between
// tags routinely contains unbalanced apostrophes.
func HTML() Syntax {
	return Syntax{
		BlockComments: []BlockComment{{Open: "<!--", Close: "-->"}},
	}
}

// Markup covers HTML with inline stylesheets and standalone CSS: markup and
// block comments are stripped, quotes are not tracked.
func Markup() Syntax {
	return Syntax{
		BlockComments: []BlockComment{{Open: "<!--", Close: "-->"}, cBlock()},
	}
}
