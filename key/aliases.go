package key

// alias is a non-canonical key spelling. Spellings come from the OS and
// browser vocabularies hosts are likely to copy bindings from.
type alias struct {
	key Key
	r   rune
}

// keyAliases maps alternate spellings (lower-case) to canonical strokes.
var keyAliases = map[string]alias{
	"esc":        {key: KeyEscape},
	"return":     {key: KeyEnter},
	"cr":         {key: KeyEnter},
	"bs":         {key: KeyBackspace},
	"del":        {key: KeyDelete},
	"ins":        {key: KeyInsert},
	"pgup":       {key: KeyPageUp},
	"pgdn":       {key: KeyPageDown},
	"arrowup":    {key: KeyUp},
	"arrowdown":  {key: KeyDown},
	"arrowleft":  {key: KeyLeft},
	"arrowright": {key: KeyRight},
	"space":      {r: ' '},
	"spacebar":   {r: ' '},
	"plus":       {r: '+'},
}

// lookupAlias resolves an alias spelling. The bool reports whether the
// spelling was known.
func lookupAlias(name string) (alias, bool) {
	a, ok := keyAliases[name]
	return a, ok
}
